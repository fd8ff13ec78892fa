package eldlog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of the 24-hour log grid in minutes.
const MinutesPerDay = 24 * 60

// EndOfDaySentinel marks an interval that runs to midnight. Historical log
// data encodes "until end of day" as 23:59 rather than 24:00.
const EndOfDaySentinel = "23:59"

var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

// ParseClock converts an "HH:MM" string to a minute offset within the day.
// "24:00" is accepted and maps to 1440.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if hours < 0 || minutes < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return hours*60 + minutes, nil
}

// NormalizeEndOfDay parses a clock string, mapping the 23:59 sentinel to a
// full 1440 minutes. Only drawing code uses this: duration math keeps the
// literal value (see Duration).
func NormalizeEndOfDay(s string) (int, error) {
	if s == EndOfDaySentinel {
		return MinutesPerDay, nil
	}
	return ParseClock(s)
}

// Duration returns the minutes between two clock strings, clamped to zero
// when end precedes start. The 23:59 sentinel is taken literally here, so a
// runs-to-midnight interval is one minute short of the full day. Summaries
// everywhere carry that undercount; do not "fix" it.
func Duration(start, end string) (int, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if endMin < startMin {
		return 0, nil
	}
	return endMin - startMin, nil
}

// FormatClock is the inverse of ParseClock for offsets within a single day.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatDuration renders a minute count as "Xh Ym" for display labels.
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// DisplayClock echoes a valid clock string zero-padded, or "--:--" when the
// input cannot be parsed.
func DisplayClock(s string) string {
	minutes, err := ParseClock(s)
	if err != nil {
		return "--:--"
	}
	return FormatClock(minutes)
}
