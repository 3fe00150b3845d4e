package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/ponytojas/go-roomalyzer/config"
	"github.com/ponytojas/go-roomalyzer/internal/analysis"
	"github.com/ponytojas/go-roomalyzer/internal/dashboard"
	"github.com/ponytojas/go-roomalyzer/internal/database"
	"github.com/ponytojas/go-roomalyzer/internal/ingest"
	"github.com/ponytojas/go-roomalyzer/internal/mqtt"
	"github.com/ponytojas/go-roomalyzer/internal/pipeline"
)

func main() {
	log.Println("Starting roomalyzer...")

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	thresholds, err := config.LoadThresholds(cfg.Constants.Path)
	if err != nil {
		log.Fatalf("Error loading humidity thresholds: %v", err)
	}
	log.Printf("Humidity thresholds: high=%.1f low=%.1f", thresholds.High, thresholds.Low)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := newSource(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up reading source: %v", err)
	}

	p := &pipeline.Pipeline{
		Source:       source,
		LogPath:      cfg.Dehumidifier.LogPath,
		LogSeparator: cfg.Dehumidifier.Separator,
		Classifier:   analysis.NewClassifier(thresholds),
		Width:        cfg.Window.Width,
		Offset:       cfg.Window.Offset,
	}

	result, err := p.Run(ctx)
	closeSource()
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	if cfg.MQTT.Broker != "" {
		publishAlert(cfg, result, thresholds)
	}

	srv := dashboard.NewServer(result, dashboard.Options{
		Title:    cfg.Dashboard.Title,
		Location: cfg.Dashboard.Location,
	})
	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Dashboard stopped: %v", err)
	}

	log.Println("Shutting down...")
}

func newSource(ctx context.Context, cfg *config.Config) (ingest.ReadingSource, func(), error) {
	switch cfg.Source.Kind {
	case config.SourceTimescale:
		log.Println("Connecting to TimescaleDB...")
		db, err := database.NewTimescaleDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				log.Printf("Error closing database: %v", err)
			}
		}, nil
	default:
		return ingest.NewThingSpeakSource(cfg.ThingSpeak.URL, cfg.ThingSpeak.Timeout), func() {}, nil
	}
}

// publishAlert logs failures and never exits
func publishAlert(cfg *config.Config, result *pipeline.Context, thresholds config.Thresholds) {
	alert, ok := mqtt.BuildAlert(result.Classified, thresholds)
	if !ok {
		log.Println("No readings, skipping humidity alert")
		return
	}

	pub := mqtt.NewPublisher(cfg)
	if err := pub.Connect(); err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	defer pub.Disconnect()

	if err := pub.Publish(alert); err != nil {
		log.Printf("Warning: %v", err)
	}
}
