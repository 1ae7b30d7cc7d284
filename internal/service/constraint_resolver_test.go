package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berryseed/327project-group10/internal/models"
)

func TestResolveDayCollectsEverySource(t *testing.T) {
	mirroredID := "cls-mirrored"
	snapshot := ConstraintSnapshot{
		Blocks: []models.TimeBlock{
			unavailableBlock("blk-1", 1, "10:00", "10:30"),
			unavailableBlock("blk-2", 2, "10:00", "10:30"),
			{ID: "blk-3", DayOfWeek: 1, StartTime: "13:00", EndTime: "14:00", BlockType: models.BlockUnavailable, Source: models.SourceClass, ClassScheduleID: &mirroredID},
		},
		Exceptions: []models.AvailabilityException{
			{ID: "exc-1", Date: models.MustDate("2025-01-06"), StartTime: "15:00", EndTime: "16:00", BlockType: models.BlockUnavailable, Reason: strPtr("dentist")},
			{ID: "exc-2", Date: models.MustDate("2025-01-13"), StartTime: "15:00", EndTime: "16:00", BlockType: models.BlockUnavailable},
		},
		Classes: []models.ClassScheduleEntry{
			{ID: mirroredID, CourseCode: "CS327", DayOfWeek: 1, StartTime: "13:00", EndTime: "14:00"},
			{ID: "cls-raw", CourseCode: "MATH101", DayOfWeek: 1, StartTime: "11:00", EndTime: "11:45"},
		},
	}

	got := NewConstraintResolver(snapshot).ResolveDay(models.MustDate("2025-01-06"))
	require.Len(t, got, 4)

	assert.Equal(t, models.SourceException, got[0].Source)
	assert.Equal(t, "dentist", got[0].Label)
	assert.Equal(t, 900, got[0].Start)

	assert.Equal(t, "blk-1", got[1].RefID)
	assert.Equal(t, models.SourceClass, got[2].Source)
	assert.Equal(t, mirroredID, got[2].RefID)

	assert.Equal(t, "cls-raw", got[3].RefID)
	assert.Equal(t, "MATH101", got[3].Label)
	assert.Equal(t, 660, got[3].Start)
	assert.Equal(t, 705, got[3].End)
}

func TestResolveDayHonoursRecurrenceBounds(t *testing.T) {
	block := unavailableBlock("blk-1", 1, "10:00", "11:00")
	block.StartDate = datePtr("2025-01-13")
	class := models.ClassScheduleEntry{ID: "cls-1", CourseCode: "CS327", DayOfWeek: 1, StartTime: "12:00", EndTime: "13:00", RecurringEnd: datePtr("2025-01-06")}

	resolver := NewConstraintResolver(ConstraintSnapshot{Blocks: []models.TimeBlock{block}, Classes: []models.ClassScheduleEntry{class}})

	first := resolver.ResolveDay(models.MustDate("2025-01-06"))
	require.Len(t, first, 1)
	assert.Equal(t, "cls-1", first[0].RefID)

	later := resolver.ResolveDay(models.MustDate("2025-01-13"))
	require.Len(t, later, 1)
	assert.Equal(t, "blk-1", later[0].RefID)
}

func TestUnavailableAtIsHalfOpen(t *testing.T) {
	resolver := NewConstraintResolver(ConstraintSnapshot{Blocks: []models.TimeBlock{unavailableBlock("blk-1", 1, "10:00", "10:30")}})
	monday := models.MustDate("2025-01-06")

	assert.False(t, resolver.UnavailableAt(monday, 599))
	assert.True(t, resolver.UnavailableAt(monday, 600))
	assert.True(t, resolver.UnavailableAt(monday, 629))
	assert.False(t, resolver.UnavailableAt(monday, 630))
	assert.False(t, resolver.UnavailableAt(models.MustDate("2025-01-07"), 600))
}

func TestExceptionPrecedence(t *testing.T) {
	monday := models.MustDate("2025-01-06")
	snapshot := ConstraintSnapshot{
		Blocks: []models.TimeBlock{unavailableBlock("blk-1", 1, "10:00", "12:00")},
		Exceptions: []models.AvailabilityException{
			{ID: "exc-open", Date: monday, StartTime: "10:00", EndTime: "11:00", BlockType: models.BlockAvailable},
			{ID: "exc-busy", Date: monday, StartTime: "10:30", EndTime: "10:45", BlockType: models.BlockUnavailable},
		},
	}
	resolver := NewConstraintResolver(snapshot)

	assert.False(t, resolver.UnavailableAt(monday, 600), "available exception lifts the recurring block")
	assert.True(t, resolver.UnavailableAt(monday, 630), "unavailable exception always wins")
	assert.True(t, resolver.UnavailableAt(monday, 660), "outside the lifted window the block applies")

	end, blocked := resolver.UnavailableOverlap(monday, 600, 625)
	assert.False(t, blocked)
	assert.Zero(t, end)

	end, blocked = resolver.UnavailableOverlap(monday, 600, 700)
	assert.True(t, blocked)
	assert.Equal(t, 720, end)
}

func TestUnavailableOverlapReturnsLatestEnd(t *testing.T) {
	monday := models.MustDate("2025-01-06")
	resolver := NewConstraintResolver(ConstraintSnapshot{
		Blocks: []models.TimeBlock{
			unavailableBlock("blk-1", 1, "10:00", "10:30"),
			unavailableBlock("blk-2", 1, "10:15", "11:15"),
			{ID: "blk-3", DayOfWeek: 1, StartTime: "10:00", EndTime: "13:00", BlockType: models.BlockPreferred, Source: models.SourceUser},
		},
	})

	end, blocked := resolver.UnavailableOverlap(monday, 570, 620)
	require.True(t, blocked)
	assert.Equal(t, 675, end)

	_, blocked = resolver.UnavailableOverlap(monday, 540, 600)
	assert.False(t, blocked)
}
