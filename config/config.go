package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Source kinds accepted in source.kind
const (
	SourceThingSpeak = "thingspeak"
	SourceTimescale  = "timescale"
)

// Config holds all configuration for the application
type Config struct {
	Source       SourceConfig       `mapstructure:"source"`
	ThingSpeak   ThingSpeakConfig   `mapstructure:"thingspeak"`
	Dehumidifier DehumidifierConfig `mapstructure:"dehumidifier"`
	Window       WindowConfig       `mapstructure:"window"`
	Constants    ConstantsConfig    `mapstructure:"constants"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Timescale    TimescaleConfig    `mapstructure:"timescale"`
	MQTT         MQTTConfig         `mapstructure:"mqtt"`
	Server       ServerConfig       `mapstructure:"server"`
	Dashboard    DashboardConfig    `mapstructure:"dashboard"`
}

// SourceConfig selects where readings come from
type SourceConfig struct {
	Kind string `mapstructure:"kind"`
}

// ThingSpeakConfig holds the channel feed endpoint
type ThingSpeakConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DehumidifierConfig points at the on/off state log
type DehumidifierConfig struct {
	LogPath   string `mapstructure:"log_path"`
	Separator string `mapstructure:"separator"`
}

// WindowConfig controls the rolling averages
type WindowConfig struct {
	Width  time.Duration `mapstructure:"width"`
	Offset time.Duration `mapstructure:"offset"`
}

// ConstantsConfig points at the humidity threshold document
type ConstantsConfig struct {
	Path string `mapstructure:"path"`
}

// DatabaseConfig holds Postgres connection configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// TimescaleConfig holds Timescale specific configuration
type TimescaleConfig struct {
	TableName string `mapstructure:"table_name"`
	Limit     int    `mapstructure:"limit"`
}

// MQTTConfig holds the alert publisher configuration. An empty broker disables alerts.
type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	Port     int    `mapstructure:"port"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ServerConfig holds the dashboard listener
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DashboardConfig holds display strings
type DashboardConfig struct {
	Title    string `mapstructure:"title"`
	Location string `mapstructure:"location"`
}

// LoadConfig loads configuration from file and/or environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values first (lowest precedence)
	d := GetDefaultConfig()
	v.SetDefault("source.kind", d.Source.Kind)
	v.SetDefault("thingspeak.url", d.ThingSpeak.URL)
	v.SetDefault("thingspeak.timeout", d.ThingSpeak.Timeout)
	v.SetDefault("dehumidifier.log_path", d.Dehumidifier.LogPath)
	v.SetDefault("dehumidifier.separator", d.Dehumidifier.Separator)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.offset", d.Window.Offset)
	v.SetDefault("constants.path", d.Constants.Path)

	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.dbname", d.Database.DBName)
	v.SetDefault("database.sslmode", d.Database.SSLMode)
	v.SetDefault("timescale.table_name", d.Timescale.TableName)
	v.SetDefault("timescale.limit", d.Timescale.Limit)

	v.SetDefault("mqtt.broker", d.MQTT.Broker)
	v.SetDefault("mqtt.port", d.MQTT.Port)
	v.SetDefault("mqtt.client_id", d.MQTT.ClientID)
	v.SetDefault("mqtt.topic", d.MQTT.Topic)
	v.SetDefault("mqtt.username", d.MQTT.Username)
	v.SetDefault("mqtt.password", d.MQTT.Password)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("dashboard.title", d.Dashboard.Title)
	v.SetDefault("dashboard.location", d.Dashboard.Location)

	// Try to load from config file (medium precedence)
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Environment variables have the highest precedence.
	// Example: thingspeak.url -> THINGSPEAK_URL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			log.Printf("Warning: error reading config file: %v", err)
		} else {
			log.Println("No config file found, using environment variables and defaults")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the pipeline cannot run with
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceThingSpeak, SourceTimescale:
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
	if c.Window.Width <= 0 {
		return fmt.Errorf("window width must be positive, got %s", c.Window.Width)
	}
	if c.Dehumidifier.Separator == "" {
		return errors.New("dehumidifier separator must not be empty")
	}
	return nil
}

// GetDefaultConfig returns default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Kind: SourceThingSpeak,
		},
		ThingSpeak: ThingSpeakConfig{
			URL:     "https://api.thingspeak.com/channels/2394445/feeds.json?results=8000",
			Timeout: 1000 * time.Second,
		},
		Dehumidifier: DehumidifierConfig{
			LogPath:   "dehumidifier_log.csv",
			Separator: ",",
		},
		Window: WindowConfig{
			Width:  24 * time.Hour,
			Offset: 15 * time.Hour,
		},
		Constants: ConstantsConfig{
			Path: "constants.toml",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "iot_data",
			SSLMode:  "disable",
		},
		Timescale: TimescaleConfig{
			TableName: "sensor_data",
			Limit:     8000,
		},
		MQTT: MQTTConfig{
			Broker:   "",
			Port:     1883,
			ClientID: "roomalyzer",
			Topic:    "roomalyzer/humidity",
		},
		Server: ServerConfig{
			Addr: ":8050",
		},
		Dashboard: DashboardConfig{
			Title:    "Temperatura i wilgotność",
			Location: "Wrocław, Sienkiewicza",
		},
	}
}

// GetDBConnString returns the database connection string
func (c *Config) GetDBConnString() string {
	log.Printf("Connecting to database at 'host=%s port=%d user=%s dbname=%s sslmode=%s'",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.DBName,
		c.Database.SSLMode,
	)
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// GetMQTTBrokerURL returns the MQTT broker URL
func (c *Config) GetMQTTBrokerURL() string {
	brokerURL := c.MQTT.Broker

	for _, scheme := range []string{"tcp://", "ssl://", "ws://", "wss://"} {
		if strings.HasPrefix(brokerURL, scheme) {
			if !strings.Contains(strings.TrimPrefix(brokerURL, scheme), ":") {
				brokerURL = fmt.Sprintf("%s:%d", brokerURL, c.MQTT.Port)
			}
			return brokerURL
		}
	}

	// http:// and https:// map onto the plain and TLS mqtt schemes
	if host, ok := strings.CutPrefix(brokerURL, "http://"); ok {
		if !strings.Contains(host, ":") {
			host = fmt.Sprintf("%s:%d", host, c.MQTT.Port)
		}
		return fmt.Sprintf("tcp://%s", host)
	}
	if host, ok := strings.CutPrefix(brokerURL, "https://"); ok {
		if !strings.Contains(host, ":") {
			host = fmt.Sprintf("%s:%d", host, c.MQTT.Port)
		}
		return fmt.Sprintf("ssl://%s", host)
	}

	log.Printf("No protocol specified in broker URL '%s', defaulting to tcp://", brokerURL)
	return fmt.Sprintf("tcp://%s:%d", brokerURL, c.MQTT.Port)
}
