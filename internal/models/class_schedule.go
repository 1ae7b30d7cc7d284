package models

import "time"

// ClassScheduleEntry is a recurring class meeting. Every entry is mirrored as an
// unavailable TimeBlock by DeriveBlocksFromClass.
type ClassScheduleEntry struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	CourseCode     string    `db:"course_code" json:"course_code"`
	DayOfWeek      int       `db:"day_of_week" json:"day_of_week"`
	StartTime      string    `db:"start_time" json:"start_time"`
	EndTime        string    `db:"end_time" json:"end_time"`
	Location       *string   `db:"location" json:"location,omitempty"`
	RecurringStart *Date     `db:"recurring_start" json:"recurring_start,omitempty"`
	RecurringEnd   *Date     `db:"recurring_end" json:"recurring_end,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// AppliesOn reports whether the class meets on date.
func (c ClassScheduleEntry) AppliesOn(date Date) bool {
	return int(date.Weekday()) == c.DayOfWeek && date.Within(c.RecurringStart, c.RecurringEnd)
}

// DeriveBlocksFromClass builds the unavailable blocks that mirror a class entry.
// The result carries no ID; the writer assigns one when persisting.
func DeriveBlocksFromClass(entry ClassScheduleEntry) []TimeBlock {
	id := entry.ID
	return []TimeBlock{{
		UserID:          entry.UserID,
		DayOfWeek:       entry.DayOfWeek,
		StartTime:       entry.StartTime,
		EndTime:         entry.EndTime,
		BlockType:       BlockUnavailable,
		IsRecurring:     true,
		Source:          SourceClass,
		StartDate:       entry.RecurringStart,
		EndDate:         entry.RecurringEnd,
		ClassScheduleID: &id,
	}}
}
