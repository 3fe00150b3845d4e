package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ponytojas/go-roomalyzer/internal/models"
)

// Thresholds are the humidity boundaries used to flag readings
type Thresholds struct {
	High float64 `mapstructure:"high"`
	Low  float64 `mapstructure:"low"`
}

// LoadThresholds reads humidity_levels.high and humidity_levels.low from a TOML
// document. Unlike LoadConfig, a missing file is an error.
func LoadThresholds(file string) (Thresholds, error) {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return Thresholds{}, fmt.Errorf("%w: reading %s: %v", models.ErrConfig, file, err)
	}

	for _, key := range []string{"humidity_levels.high", "humidity_levels.low"} {
		if !v.IsSet(key) {
			return Thresholds{}, fmt.Errorf("%w: %s is missing %s", models.ErrConfig, file, key)
		}
	}

	var t Thresholds
	if err := v.UnmarshalKey("humidity_levels", &t); err != nil {
		return Thresholds{}, fmt.Errorf("%w: decoding humidity_levels: %v", models.ErrConfig, err)
	}
	return t, nil
}
