package service

import (
	"fmt"
	"math"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
)

const (
	reasonInvalidDate       = "invalid date, expected YYYY-MM-DD"
	reasonInvalidTime       = "invalid time, expected HH:mm"
	reasonMisaligned        = "not aligned to 15-minute increments"
	reasonInverted          = "start must be before end"
	reasonBlockOverlap      = "overlaps with unavailable time block"
	reasonExceptionOverlap  = "overlaps with unavailable exception"
	dailyOvercommitMinutes  = 8 * 60
	overcommitReasonPattern = "Overcommitted: %dh scheduled"
)

var overcommitSuggestions = []string{"reduce daily load below 8 hours", "spread tasks across multiple days"}

// ConflictValidator checks candidate schedules against stored constraints. It never mutates
// the snapshot and returns identical output for identical input.
type ConflictValidator struct {
	resolver *ConstraintResolver
}

// NewConflictValidator builds a validator over resolver.
func NewConflictValidator(resolver *ConstraintResolver) *ConflictValidator {
	return &ConflictValidator{resolver: resolver}
}

// Validate reports one conflict per malformed item or per overlapping source, plus
// overcommit warnings for dates with more than eight scheduled hours.
func (v *ConflictValidator) Validate(items []dto.CandidateScheduleItem) dto.ValidationResult {
	result := dto.ValidationResult{
		Success:     true,
		Conflicts:   []dto.ScheduleConflict{},
		Warnings:    []dto.OvercommitWarning{},
		Suggestions: []string{},
	}

	totals := make(map[string]int)
	var order []string

	for _, item := range items {
		start, end, date, reason := parseCandidate(item)
		if reason == "" || reason == reasonMisaligned && start < end {
			if _, seen := totals[item.Date]; !seen {
				order = append(order, item.Date)
			}
			totals[item.Date] += end - start
		}
		if reason != "" {
			result.Conflicts = append(result.Conflicts, dto.ScheduleConflict{Item: item, Reason: reason})
			continue
		}

		for _, reason := range v.overlaps(date, start, end) {
			result.Conflicts = append(result.Conflicts, dto.ScheduleConflict{Item: item, Reason: reason})
		}
	}

	for _, d := range order {
		if minutes := totals[d]; minutes > dailyOvercommitMinutes {
			hours := int(math.Round(float64(minutes) / 60))
			result.Warnings = append(result.Warnings, dto.OvercommitWarning{
				Date:   d,
				Reason: fmt.Sprintf(overcommitReasonPattern, hours),
			})
		}
	}
	if len(result.Warnings) > 0 {
		result.Suggestions = append(result.Suggestions, overcommitSuggestions...)
	}

	return result
}

func (v *ConflictValidator) overlaps(date models.Date, start, end int) []string {
	var reasons []string
	for _, b := range v.resolver.BlocksOn(date) {
		if b.Unavailable() && models.Overlaps(b.Start, b.End, start, end) {
			reasons = append(reasons, reasonBlockOverlap)
		}
	}
	for _, c := range v.resolver.ClassesOn(date) {
		if models.Overlaps(c.Start, c.End, start, end) {
			reasons = append(reasons, "overlaps with class "+c.Label)
		}
	}
	for _, e := range v.resolver.ExceptionsOn(date) {
		if e.Unavailable() && models.Overlaps(e.Start, e.End, start, end) {
			reasons = append(reasons, reasonExceptionOverlap)
		}
	}
	return reasons
}

func parseCandidate(item dto.CandidateScheduleItem) (int, int, models.Date, string) {
	date, err := models.ParseDate(item.Date)
	if err != nil {
		return 0, 0, models.Date{}, reasonInvalidDate
	}
	start, err := models.ParseClock(item.Start)
	if err != nil {
		return 0, 0, date, reasonInvalidTime
	}
	end, err := models.ParseClock(item.End)
	if err != nil {
		return 0, 0, date, reasonInvalidTime
	}
	if !models.OnGrid(start) || !models.OnGrid(end) {
		return start, end, date, reasonMisaligned
	}
	if start >= end {
		return start, end, date, reasonInverted
	}
	return start, end, date, ""
}
