package repository

import "errors"

// Sentinel kinds for store errors. Callers translate these to HTTP status
// codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrMissingField = errors.New("missing required field")
)
