// Package pipeline runs the single fetch, clean, aggregate, classify and
// summarise pass that feeds the dashboard.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ponytojas/go-roomalyzer/internal/analysis"
	"github.com/ponytojas/go-roomalyzer/internal/ingest"
	"github.com/ponytojas/go-roomalyzer/internal/models"
)

// Pipeline holds everything one run needs
type Pipeline struct {
	Source       ingest.ReadingSource
	LogPath      string
	LogSeparator string
	Classifier   analysis.Classifier
	Width        time.Duration
	Offset       time.Duration
}

// Context owns the tables produced by a run. It is built once and read-only afterwards.
type Context struct {
	Readings   models.ReadingSet
	Classified []models.ClassifiedReading
	Averages   []models.AggregateWindow
	Events     []models.DehumidifierEvent
	Summary    models.Summary
	FinishedAt time.Time
}

// Run fetches both sources and derives every table. Errors from the reading
// source, the log parser and the aggregation are returned unchanged in kind.
func (p *Pipeline) Run(ctx context.Context) (*Context, error) {
	started := time.Now()

	readings, err := p.Source.Readings(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching readings: %w", err)
	}

	events, err := ingest.LoadDehumidifierLog(p.LogPath, p.LogSeparator)
	if err != nil {
		return nil, fmt.Errorf("loading dehumidifier log: %w", err)
	}

	averages, err := analysis.AverageByWindow(readings, p.Width, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("averaging readings: %w", err)
	}

	pc := &Context{
		Readings:   readings,
		Classified: p.Classifier.Classify(readings),
		Averages:   averages,
		Events:     events,
		Summary:    analysis.Summarize(readings),
		FinishedAt: time.Now(),
	}

	counts := analysis.CountLevels(pc.Classified)
	log.Printf("Pipeline finished in %s: %d readings (%d high, %d low), %d windows, %d dehumidifier events",
		pc.FinishedAt.Sub(started).Round(time.Millisecond),
		len(readings), counts.High, counts.Low, len(averages), len(events))
	return pc, nil
}

// Report exposes the run's tables to presentation code
func (c *Context) Report() models.Report {
	return models.Report{
		Readings: c.Classified,
		Averages: c.Averages,
		Events:   c.Events,
		Summary:  c.Summary,
	}
}
