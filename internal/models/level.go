package models

// HumidityLevel classifies a humidity value against the configured thresholds
type HumidityLevel int

const (
	LevelLow    HumidityLevel = -1
	LevelNormal HumidityLevel = 0
	LevelHigh   HumidityLevel = 1
)

func (l HumidityLevel) String() string {
	switch l {
	case LevelHigh:
		return "HIGH"
	case LevelLow:
		return "LOW"
	default:
		return "NORMAL"
	}
}

// MarshalText makes the level render as its name in JSON
func (l HumidityLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ClassifiedReading is a reading with its humidity level attached
type ClassifiedReading struct {
	Reading
	Level HumidityLevel `json:"level"`
}
