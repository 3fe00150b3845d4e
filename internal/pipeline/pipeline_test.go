package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ponytojas/go-roomalyzer/config"
	"github.com/ponytojas/go-roomalyzer/internal/analysis"
	"github.com/ponytojas/go-roomalyzer/internal/models"
)

type stubSource struct {
	readings models.ReadingSet
	err      error
	calls    int
}

func (s *stubSource) Readings(context.Context) (models.ReadingSet, error) {
	s.calls++
	return s.readings, s.err
}

func newPipeline(src *stubSource, logPath string) *Pipeline {
	return &Pipeline{
		Source:       src,
		LogPath:      logPath,
		LogSeparator: ",",
		Classifier:   analysis.NewClassifier(config.Thresholds{High: 75, Low: 72}),
		Width:        24 * time.Hour,
		Offset:       0,
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "dehumidifier_log.csv")
	if err := os.WriteFile(logPath, []byte("Date,State\n2024-01-01T00:00,on\n2024-01-01T02:00,off\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := &stubSource{readings: models.ReadingSet{
		{Timestamp: time.Date(2024, 1, 3, 20, 0, 0, 0, time.UTC), Temperature: 20, Humidity: 70},
		{Timestamp: time.Date(2024, 1, 3, 21, 0, 0, 0, time.UTC), Temperature: 22, Humidity: 80},
	}}

	pc, err := newPipeline(src, logPath).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("source called %d times", src.calls)
	}

	report := pc.Report()
	if len(report.Readings) != 2 || report.Readings[0].Level != models.LevelLow || report.Readings[1].Level != models.LevelHigh {
		t.Fatalf("classified = %+v", report.Readings)
	}
	if len(report.Averages) != 1 || report.Averages[0].MeanTemperature != 21 || report.Averages[0].MeanHumidity != 75 {
		t.Fatalf("averages = %+v", report.Averages)
	}
	if len(report.Events) != 1 || report.Events[0].Duration() != 2*time.Hour {
		t.Fatalf("events = %+v", report.Events)
	}
	if mx, _ := report.Summary.Row(models.StatMax); mx.Temperature != 22 || mx.Humidity != 80 {
		t.Fatalf("summary max = %+v", mx)
	}
}

func TestRunWithoutLog(t *testing.T) {
	src := &stubSource{readings: models.ReadingSet{}}
	pc, err := newPipeline(src, filepath.Join(t.TempDir(), "absent.csv")).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(pc.Events) != 0 || len(pc.Averages) != 0 || len(pc.Classified) != 0 {
		t.Fatalf("expected empty tables, got %+v", pc)
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	src := &stubSource{err: fmt.Errorf("%w: boom", models.ErrRetrieval)}
	_, err := newPipeline(src, "unused.csv").Run(context.Background())
	if !errors.Is(err, models.ErrRetrieval) {
		t.Fatalf("expected ErrRetrieval, got %v", err)
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(bad, []byte("When,What\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = newPipeline(&stubSource{}, bad).Run(context.Background())
	if !errors.Is(err, models.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}
