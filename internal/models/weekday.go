package models

import (
	"strings"
	"time"
)

// WeekdayNames is indexed by time.Weekday (0 = Sunday).
var WeekdayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// DayBaseEfficiency is the study efficiency multiplier per weekday, peaking mid-week.
var DayBaseEfficiency = [7]float64{0.6, 0.9, 0.95, 0.9, 0.85, 0.8, 0.7}

// DefaultDayEfficiency applies to day labels outside the weekday table.
const DefaultDayEfficiency = 0.8

// WeekdayName returns the lowercase English name for wd.
func WeekdayName(wd time.Weekday) string {
	return WeekdayNames[int(wd)%7]
}

// ParseWeekday resolves a weekday name case-insensitively.
func ParseWeekday(name string) (time.Weekday, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i, n := range WeekdayNames {
		if n == needle {
			return time.Weekday(i), true
		}
	}
	return time.Sunday, false
}

// EfficiencyForDay looks up the multiplier for a day label such as "monday".
func EfficiencyForDay(name string) float64 {
	wd, ok := ParseWeekday(name)
	if !ok {
		return DefaultDayEfficiency
	}
	return DayBaseEfficiency[wd]
}
