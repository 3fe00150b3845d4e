package models

import "time"

// AggregateWindow holds the statistics of the readings falling into one time bucket
type AggregateWindow struct {
	Start           time.Time `json:"start"`
	MeanTemperature float64   `json:"temperature"`
	StdTemperature  float64   `json:"temperature_std"`
	MeanHumidity    float64   `json:"humidity"`
	StdHumidity     float64   `json:"humidity_std"`
	Count           int       `json:"count"`
}
