package models

// Summary statistic names, in row order
const (
	StatMin  = "min"
	StatMax  = "max"
	StatMean = "mean"
)

// SummaryRow is one statistic computed for both measured quantities
type SummaryRow struct {
	Stat        string
	Temperature float64
	Humidity    float64
}

// Summary is the fixed-shape min/max/mean table.
// Cells are NaN when it was computed from an empty set.
type Summary struct {
	Rows [3]SummaryRow
}

// Row returns the row for the given statistic name
func (s Summary) Row(stat string) (SummaryRow, bool) {
	for _, r := range s.Rows {
		if r.Stat == stat {
			return r, true
		}
	}
	return SummaryRow{}, false
}

// Report bundles every table the pipeline produces.
// Presentation code only ever sees this value.
type Report struct {
	Readings []ClassifiedReading
	Averages []AggregateWindow
	Events   []DehumidifierEvent
	Summary  Summary
}
