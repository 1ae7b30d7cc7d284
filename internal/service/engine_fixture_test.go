package service

import (
	"time"

	"github.com/berryseed/327project-group10/internal/models"
	"github.com/berryseed/327project-group10/pkg/clock"
)

// mondayMorning is 2025-01-06, a Monday.
var mondayMorning = time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)

func fixedClock() *clock.FakeClock {
	return clock.NewFakeClock(mondayMorning)
}

func strPtr(v string) *string { return &v }

func datePtr(raw string) *models.Date {
	d := models.MustDate(raw)
	return &d
}

func unavailableBlock(id string, day int, start, end string) models.TimeBlock {
	return models.TimeBlock{
		ID:          id,
		UserID:      "user-1",
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		BlockType:   models.BlockUnavailable,
		IsRecurring: true,
		Source:      models.SourceUser,
	}
}

func mondayOnlyPrefs() *models.UserPreferences {
	return &models.UserPreferences{
		WorkHours:     models.WorkHours{Start: "09:00", End: "17:00"},
		StudyBlocks:   []int{25, 50},
		BreakDuration: 15,
		PreferredDays: []string{"monday"},
	}
}

func deadlineIn(d time.Duration) *time.Time {
	t := mondayMorning.Add(d)
	return &t
}
