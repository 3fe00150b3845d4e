package models

import "errors"

var (
	// ErrRetrieval marks a failed or timed out fetch from a remote source
	ErrRetrieval = errors.New("retrieval error")
	// ErrParse marks a malformed response or log file
	ErrParse = errors.New("parse error")
	// ErrConfig marks a missing or malformed threshold configuration
	ErrConfig = errors.New("config error")
	// ErrMissingLog marks an absent dehumidifier log. It is never returned to
	// pipeline callers; the loader downgrades it to a warning.
	ErrMissingLog = errors.New("dehumidifier log not found")
)
