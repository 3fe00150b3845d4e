package ingest

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// missingMarker is what the sensor firmware writes when a read fails
const missingMarker = "NAN"

// rawString extracts a non-empty string that is not the missing marker
func rawString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" || s == missingMarker {
		return "", false
	}
	return s, true
}

// rawFloat accepts either a JSON number or a numeric string
func rawFloat(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	s, ok := rawString(raw)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
