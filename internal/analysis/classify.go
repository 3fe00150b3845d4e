package analysis

import (
	"github.com/ponytojas/go-roomalyzer/config"
	"github.com/ponytojas/go-roomalyzer/internal/models"
)

// Classifier flags humidity readings against fixed thresholds
type Classifier struct {
	high float64
	low  float64
}

// NewClassifier captures the thresholds; they cannot be changed afterwards
func NewClassifier(t config.Thresholds) Classifier {
	return Classifier{high: t.High, low: t.Low}
}

// Thresholds returns the values the classifier was built with
func (c Classifier) Thresholds() config.Thresholds {
	return config.Thresholds{High: c.high, Low: c.low}
}

// Level classifies a single humidity value. The high check runs first, so a
// value satisfying both bounds (possible when high <= low) is HIGH.
func (c Classifier) Level(humidity float64) models.HumidityLevel {
	if humidity >= c.high {
		return models.LevelHigh
	}
	if humidity <= c.low {
		return models.LevelLow
	}
	return models.LevelNormal
}

// Classify returns a copy of readings with a level attached to each
func (c Classifier) Classify(readings models.ReadingSet) []models.ClassifiedReading {
	out := make([]models.ClassifiedReading, len(readings))
	for i, r := range readings {
		out[i] = models.ClassifiedReading{Reading: r, Level: c.Level(r.Humidity)}
	}
	return out
}

// LevelCounts tallies classified readings per level
type LevelCounts struct {
	High   int `json:"high"`
	Low    int `json:"low"`
	Normal int `json:"normal"`
}

// CountLevels tallies the levels in rs
func CountLevels(rs []models.ClassifiedReading) LevelCounts {
	var c LevelCounts
	for _, r := range rs {
		switch r.Level {
		case models.LevelHigh:
			c.High++
		case models.LevelLow:
			c.Low++
		default:
			c.Normal++
		}
	}
	return c
}
