package models

import (
	"fmt"
	"sort"
	"time"
)

// Reading is a single temperature/humidity sample from the room sensor
type Reading struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
}

// Valid reports whether the reading carries real sensor output.
// The sensor reports exactly zero when a measurement failed.
func (r Reading) Valid() bool {
	return r.Temperature != 0 && r.Humidity != 0
}

func (r Reading) String() string {
	return fmt.Sprintf("Timestamp: %s, Temperature: %.2f°C, Humidity: %.2f%%",
		r.Timestamp.Format(time.RFC3339),
		r.Temperature,
		r.Humidity)
}

// ReadingSet is a sequence of readings ordered by timestamp ascending.
// Duplicate timestamps are allowed.
type ReadingSet []Reading

// SortByTime orders the set in place, keeping the relative order of equal timestamps.
func (s ReadingSet) SortByTime() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Timestamp.Before(s[j].Timestamp)
	})
}

// Temperatures returns the temperature column
func (s ReadingSet) Temperatures() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = r.Temperature
	}
	return out
}

// Humidities returns the humidity column
func (s ReadingSet) Humidities() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = r.Humidity
	}
	return out
}
