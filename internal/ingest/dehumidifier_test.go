package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ponytojas/go-roomalyzer/internal/models"
)

func TestLoadDehumidifierLogPairsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dehumidifier_log.csv")
	body := "Date,State\n2024-01-01T00:00,on\n2024-01-01T02:00,off\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	events, err := LoadDehumidifierLog(path, ",")
	if err != nil {
		t.Fatalf("LoadDehumidifierLog: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	wantOn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	wantOff := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)
	if !events[0].On.Equal(wantOn) || !events[0].Off.Equal(wantOff) {
		t.Fatalf("event = %+v", events[0])
	}
	if events[0].Duration() != 2*time.Hour {
		t.Fatalf("duration = %s", events[0].Duration())
	}
}

func TestLoadDehumidifierLogMissingFile(t *testing.T) {
	events, err := LoadDehumidifierLog(filepath.Join(t.TempDir(), "absent.csv"), ",")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
}

func TestParseDehumidifierLogPositionalPairing(t *testing.T) {
	body := strings.Join([]string{
		"State;Date",
		"off;2024-01-01 01:00",
		"on;2024-01-01 02:00",
		"idle;2024-01-01 02:30",
		"off;2024-01-01 03:00",
		"on;2024-01-01 04:00",
		"on;2024-01-01 06:00",
	}, "\n")

	events, err := ParseDehumidifierLog(strings.NewReader(body), ";")
	if err != nil {
		t.Fatalf("ParseDehumidifierLog: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3: %+v", len(events), events)
	}

	at := func(h int) time.Time { return time.Date(2024, 1, 1, h, 0, 0, 0, time.UTC) }
	// The leading off row pairs with the first on row even though it precedes it.
	if !events[0].On.Equal(at(2)) || !events[0].Off.Equal(at(1)) {
		t.Errorf("event 0 = %+v", events[0])
	}
	if !events[1].On.Equal(at(4)) || !events[1].Off.Equal(at(3)) {
		t.Errorf("event 1 = %+v", events[1])
	}
	if !events[2].On.Equal(at(6)) || !events[2].Off.IsZero() {
		t.Errorf("event 2 = %+v", events[2])
	}
	if events[2].Complete() {
		t.Error("event 2 should be incomplete")
	}
}

func TestParseDehumidifierLogErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		sep  string
	}{
		{"empty", "", ","},
		{"missing column", "Date,Status\n2024-01-01,on\n", ","},
		{"bad date", "Date,State\nyesterday,on\n", ","},
		{"bad separator", "Date,State\n", ",,"},
		{"ragged row", "Date,State\n2024-01-01,on,extra\n", ","},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDehumidifierLog(strings.NewReader(tc.body), tc.sep)
			if !errors.Is(err, models.ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestParseDehumidifierLogHeaderOnly(t *testing.T) {
	events, err := ParseDehumidifierLog(strings.NewReader("Date,State\n"), ",")
	if err != nil {
		t.Fatalf("ParseDehumidifierLog: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
}
