package mqtt

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ponytojas/go-roomalyzer/config"
	"github.com/ponytojas/go-roomalyzer/internal/analysis"
	"github.com/ponytojas/go-roomalyzer/internal/models"
)

const publishTimeout = 10 * time.Second

// Alert is the retained message describing the room's humidity state after a run
type Alert struct {
	Timestamp time.Time            `json:"timestamp"`
	Humidity  float64              `json:"humidity"`
	Level     models.HumidityLevel `json:"level"`
	High      float64              `json:"threshold_high"`
	Low       float64              `json:"threshold_low"`
	Counts    analysis.LevelCounts `json:"counts"`
}

// BuildAlert summarises classified readings into an alert. It returns false when
// there are no readings to report on.
func BuildAlert(rs []models.ClassifiedReading, th config.Thresholds) (Alert, bool) {
	if len(rs) == 0 {
		return Alert{}, false
	}
	latest := rs[len(rs)-1]
	return Alert{
		Timestamp: latest.Timestamp,
		Humidity:  latest.Humidity,
		Level:     latest.Level,
		High:      th.High,
		Low:       th.Low,
		Counts:    analysis.CountLevels(rs),
	}, true
}

// Publisher sends humidity alerts to an MQTT broker
type Publisher struct {
	client mqtt.Client
	config *config.Config
}

// NewPublisher creates a new MQTT publisher
func NewPublisher(cfg *config.Config) *Publisher {
	opts := mqtt.NewClientOptions()
	brokerURL := cfg.GetMQTTBrokerURL()
	opts.AddBroker(brokerURL)
	opts.SetClientID(cfg.MQTT.ClientID)
	opts.SetConnectTimeout(publishTimeout)

	// Configure TLS if using SSL or WSS
	if strings.HasPrefix(brokerURL, "ssl://") || strings.HasPrefix(brokerURL, "wss://") {
		log.Printf("Configuring TLS for secure connection to %s", brokerURL)
		opts.SetTLSConfig(&tls.Config{
			MinVersion: tls.VersionTLS12,
		})
	}

	if cfg.MQTT.Username != "" {
		opts.SetUsername(cfg.MQTT.Username)
		opts.SetPassword(cfg.MQTT.Password)
	}

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		log.Printf("Connection lost: %v", err)
	})

	return &Publisher{
		client: mqtt.NewClient(opts),
		config: cfg,
	}
}

// Connect connects to the MQTT broker
func (p *Publisher) Connect() error {
	token := p.client.Connect()
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timed out connecting to MQTT broker %s", p.config.GetMQTTBrokerURL())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	log.Printf("Connected to MQTT broker: %s", p.config.GetMQTTBrokerURL())
	return nil
}

// Publish sends the alert as a retained QoS 1 message on the configured topic
func (p *Publisher) Publish(alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}

	token := p.client.Publish(p.config.MQTT.Topic, 1, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timed out publishing to %s", p.config.MQTT.Topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.config.MQTT.Topic, err)
	}
	log.Printf("Published humidity alert to %s: level=%s humidity=%.2f", p.config.MQTT.Topic, alert.Level, alert.Humidity)
	return nil
}

// Disconnect disconnects from the MQTT broker
func (p *Publisher) Disconnect() {
	p.client.Disconnect(250)
	log.Println("Disconnected from MQTT broker")
}
