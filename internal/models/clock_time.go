package models

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay bounds minute-of-day values.
const MinutesPerDay = 24 * 60

// SlotGranularity is the grid stored times must sit on.
const SlotGranularity = 15

// ParseClock converts "HH:mm" (or "HH:mm:ss" as returned by TIME columns) to minutes since midnight.
func ParseClock(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:mm", raw)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", raw)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", raw)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// OnGrid reports whether minutes sits on the 15-minute grid.
func OnGrid(minutes int) bool {
	return minutes%SlotGranularity == 0
}

// Overlaps is the strict half-open intersection test used by every constraint check.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
