package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ponytojas/go-roomalyzer/internal/models"
)

const (
	columnDate  = "Date"
	columnState = "State"

	stateOn  = "on"
	stateOff = "off"
)

// LoadDehumidifierLog reads the on/off state log at path and pairs the rows into
// events. A missing file is not an error: a warning is logged and no events are returned.
func LoadDehumidifierLog(path string, sep string) ([]models.DehumidifierEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("Warning: %v (%s), omitting dehumidifier data", models.ErrMissingLog, path)
			return []models.DehumidifierEvent{}, nil
		}
		return nil, fmt.Errorf("opening dehumidifier log: %w", err)
	}
	defer f.Close()

	events, err := ParseDehumidifierLog(f, sep)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("Loaded %d dehumidifier events from %s", len(events), path)
	return events, nil
}

// ParseDehumidifierLog reads Date/State rows from r.
//
// "on" rows and "off" rows are collected separately in file order and paired by
// position: the n-th on with the n-th off. Nothing checks that an off follows its
// on, so a log that starts with "off" or has unequal counts is mis-paired. Extra
// rows on either side produce events with a zero counterpart.
func ParseDehumidifierLog(r io.Reader, sep string) ([]models.DehumidifierEvent, error) {
	comma, size := utf8.DecodeRuneInString(sep)
	if size == 0 || size != len(sep) {
		return nil, fmt.Errorf("%w: separator must be a single character, got %q", models.ErrParse, sep)
	}

	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty dehumidifier log", models.ErrParse)
		}
		return nil, fmt.Errorf("%w: reading header: %v", models.ErrParse, err)
	}
	dateIdx, stateIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case columnDate:
			dateIdx = i
		case columnState:
			stateIdx = i
		}
	}
	if dateIdx < 0 || stateIdx < 0 {
		return nil, fmt.Errorf("%w: header must contain %s and %s columns, got %v", models.ErrParse, columnDate, columnState, header)
	}

	var on, off []models.DehumidifierEvent
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", models.ErrParse, line, err)
		}

		ts, err := models.ParseTimestamp(rec[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", models.ErrParse, line, err)
		}

		switch strings.TrimSpace(rec[stateIdx]) {
		case stateOn:
			on = append(on, models.DehumidifierEvent{On: ts})
		case stateOff:
			off = append(off, models.DehumidifierEvent{Off: ts})
		}
	}

	return pairEvents(on, off), nil
}

func pairEvents(on, off []models.DehumidifierEvent) []models.DehumidifierEvent {
	if len(on) != len(off) {
		log.Printf("Warning: dehumidifier log has %d on rows and %d off rows, pairing by position", len(on), len(off))
	}

	n := max(len(on), len(off))
	events := make([]models.DehumidifierEvent, n)
	for i := range events {
		if i < len(on) {
			events[i].On = on[i].On
		}
		if i < len(off) {
			events[i].Off = off[i].Off
		}
	}

	if n > 0 && events[0].Complete() && events[0].Off.Before(events[0].On) {
		log.Printf("Warning: first dehumidifier event switches off before it switches on, log may start with an off row")
	}
	return events
}
