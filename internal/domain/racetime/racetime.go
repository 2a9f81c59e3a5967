// Package racetime parses race-time strings into comparable seconds.
//
// Times arrive either as plain seconds ("25.50") or minutes and seconds
// separated by a single colon ("1:05.32"). Stored records always keep the
// original string; parsing is only used for comparison and ordering.
package racetime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFormat reports an unparseable race-time string.
var ErrFormat = errors.New("invalid race time")

// Parse converts a race-time string to seconds. "M:SS.ss" yields
// minutes*60 + seconds; a string without a colon parses directly as
// floating-point seconds. Sub-second precision and unpadded parts are
// both accepted.
func Parse(s string) (float64, error) {
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return 0, fmt.Errorf("%w: %q has %d colon-separated parts", ErrFormat, s, len(parts))
		}
		minutes, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("%w: minutes in %q: %w", ErrFormat, s, err)
		}
		seconds, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: seconds in %q: %w", ErrFormat, s, err)
		}
		return float64(minutes)*60 + seconds, nil
	}
	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrFormat, s, err)
	}
	return seconds, nil
}
