package dashboard

import (
	"math"
	"strconv"
	"time"

	"github.com/ponytojas/go-roomalyzer/internal/models"
)

type readingRow struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Level       string    `json:"level"`
}

type eventRow struct {
	On  *time.Time `json:"on"`
	Off *time.Time `json:"off"`
}

// summaryRow carries NaN as null, which encoding/json cannot do for float64
type summaryRow struct {
	Stat        string   `json:"stat"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
}

// Cell formats a value for the HTML table
func (r summaryRow) Cell(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func summaryRows(s models.Summary) []summaryRow {
	out := make([]summaryRow, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = summaryRow{
			Stat:        r.Stat,
			Temperature: finite(r.Temperature),
			Humidity:    finite(r.Humidity),
		}
	}
	return out
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
