package models

import (
	"fmt"
	"time"
)

// WorkHours bounds the daily study window.
type WorkHours struct {
	Start string `json:"start" validate:"required,hhmm"`
	End   string `json:"end" validate:"required,hhmm"`
}

// UserPreferences drives slot generation.
type UserPreferences struct {
	UserID           string    `json:"user_id,omitempty"`
	WorkHours        WorkHours `json:"work_hours"`
	StudyBlocks      []int     `json:"study_blocks"`
	BreakDuration    int       `json:"break_duration"`
	PreferredDays    []string  `json:"preferred_days"`
	PomodoroDuration int       `json:"pomodoro_duration"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}

// DefaultPreferences mirrors the seed row created for new users.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		WorkHours:        WorkHours{Start: "09:00", End: "17:00"},
		StudyBlocks:      []int{25, 50, 90},
		BreakDuration:    15,
		PreferredDays:    []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		PomodoroDuration: 25,
	}
}

// Window is the parsed work-hours interval in minutes since midnight.
type Window struct {
	Start int
	End   int
}

// ParsedWindow validates the work hours and returns them as minutes.
func (p UserPreferences) ParsedWindow() (Window, error) {
	start, err := ParseClock(p.WorkHours.Start)
	if err != nil {
		return Window{}, fmt.Errorf("work_hours.start: %w", err)
	}
	end, err := ParseClock(p.WorkHours.End)
	if err != nil {
		return Window{}, fmt.Errorf("work_hours.end: %w", err)
	}
	if start >= end {
		return Window{}, fmt.Errorf("work_hours.start must be before work_hours.end")
	}
	return Window{Start: start, End: end}, nil
}

// Check reports the first structural problem that prevents slot generation.
func (p UserPreferences) Check() error {
	if _, err := p.ParsedWindow(); err != nil {
		return err
	}
	if len(p.StudyBlocks) == 0 {
		return fmt.Errorf("study_blocks must not be empty")
	}
	for _, d := range p.StudyBlocks {
		if d <= 0 {
			return fmt.Errorf("study_blocks must be positive durations, got %d", d)
		}
	}
	if p.BreakDuration < 0 {
		return fmt.Errorf("break_duration must not be negative")
	}
	if p.PreferredDays == nil {
		return fmt.Errorf("preferred_days is required")
	}
	for _, day := range p.PreferredDays {
		if _, ok := ParseWeekday(day); !ok {
			return fmt.Errorf("unknown preferred day %q", day)
		}
	}
	return nil
}

// Prefers reports whether wd is a preferred study day.
func (p UserPreferences) Prefers(wd time.Weekday) bool {
	for _, day := range p.PreferredDays {
		if parsed, ok := ParseWeekday(day); ok && parsed == wd {
			return true
		}
	}
	return false
}
