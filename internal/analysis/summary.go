package analysis

import (
	"math"

	"github.com/ponytojas/go-roomalyzer/internal/models"
)

// Summarize computes the global min, max and mean of both quantities, rounded to
// two decimals. An empty set yields NaN in every cell.
func Summarize(readings models.ReadingSet) models.Summary {
	temps, hums := readings.Temperatures(), readings.Humidities()
	tMin, tMax := minMax(temps)
	hMin, hMax := minMax(hums)
	tMean := clamp(mean(temps), tMin, tMax)
	hMean := clamp(mean(hums), hMin, hMax)

	return models.Summary{Rows: [3]models.SummaryRow{
		{Stat: models.StatMin, Temperature: round2(tMin), Humidity: round2(hMin)},
		{Stat: models.StatMax, Temperature: round2(tMax), Humidity: round2(hMax)},
		{Stat: models.StatMean, Temperature: round2(tMean), Humidity: round2(hMean)},
	}}
}

// clamp keeps float error in the mean from pushing it past the extremes
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Max(lo, math.Min(hi, v))
}
