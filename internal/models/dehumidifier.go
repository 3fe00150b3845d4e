package models

import "time"

// DehumidifierEvent is one on/off interval of the dehumidifier.
// A zero On or Off means the log had no counterpart row for this position.
type DehumidifierEvent struct {
	On  time.Time `json:"on"`
	Off time.Time `json:"off"`
}

// Complete reports whether both ends of the interval are known
func (e DehumidifierEvent) Complete() bool {
	return !e.On.IsZero() && !e.Off.IsZero()
}

// Duration returns the length of the interval, or zero when it is incomplete
func (e DehumidifierEvent) Duration() time.Duration {
	if !e.Complete() {
		return 0
	}
	return e.Off.Sub(e.On)
}
