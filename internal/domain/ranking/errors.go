package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrMissingEvent = errors.New("event parameter required")
)
