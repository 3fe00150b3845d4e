package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ponytojas/go-roomalyzer/internal/models"
)

// AverageByWindow buckets readings into fixed-width windows and returns the mean
// and sample standard deviation of both quantities per window.
//
// Windows are anchored at midnight UTC of the first reading's day shifted by
// offset, so a 24h width with a 15h offset yields windows running 15:00-15:00.
// Windows with fewer than two readings have no standard deviation and are left out.
func AverageByWindow(readings models.ReadingSet, width, offset time.Duration) ([]models.AggregateWindow, error) {
	if width <= 0 {
		return nil, fmt.Errorf("window width must be positive, got %s", width)
	}
	if len(readings) == 0 {
		return []models.AggregateWindow{}, nil
	}

	origin := firstDay(readings).Add(offset)

	buckets := make(map[time.Time]models.ReadingSet)
	for _, r := range readings {
		start := windowStart(r.Timestamp.UTC(), origin, width)
		buckets[start] = append(buckets[start], r)
	}

	out := make([]models.AggregateWindow, 0, len(buckets))
	for start, rs := range buckets {
		if len(rs) < 2 {
			continue
		}
		temps, hums := rs.Temperatures(), rs.Humidities()
		out = append(out, models.AggregateWindow{
			Start:           start,
			MeanTemperature: mean(temps),
			StdTemperature:  sampleStd(temps),
			MeanHumidity:    mean(hums),
			StdHumidity:     sampleStd(hums),
			Count:           len(rs),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// firstDay returns midnight UTC of the earliest reading
func firstDay(readings models.ReadingSet) time.Time {
	earliest := readings[0].Timestamp
	for _, r := range readings[1:] {
		if r.Timestamp.Before(earliest) {
			earliest = r.Timestamp
		}
	}
	return earliest.UTC().Truncate(24 * time.Hour)
}

// windowStart floors t onto the grid origin + k*width, k possibly negative
func windowStart(t, origin time.Time, width time.Duration) time.Time {
	k := math.Floor(float64(t.Sub(origin)) / float64(width))
	return origin.Add(time.Duration(k) * width)
}
