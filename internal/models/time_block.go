package models

import "time"

// BlockType classifies an availability window.
type BlockType string

const (
	BlockPreferred   BlockType = "preferred"
	BlockAvailable   BlockType = "available"
	BlockUnavailable BlockType = "unavailable"
)

// Valid reports whether t is a known block type.
func (t BlockType) Valid() bool {
	switch t {
	case BlockPreferred, BlockAvailable, BlockUnavailable:
		return true
	}
	return false
}

// BlockSource records who produced a constraint.
type BlockSource string

const (
	SourceUser      BlockSource = "user"
	SourceClass     BlockSource = "class"
	SourceException BlockSource = "exception"
)

// TimeBlock is a recurring weekly availability window.
type TimeBlock struct {
	ID              string      `db:"id" json:"id"`
	UserID          string      `db:"user_id" json:"user_id"`
	DayOfWeek       int         `db:"day_of_week" json:"day_of_week"`
	StartTime       string      `db:"start_time" json:"start_time"`
	EndTime         string      `db:"end_time" json:"end_time"`
	BlockType       BlockType   `db:"block_type" json:"block_type"`
	IsRecurring     bool        `db:"is_recurring" json:"is_recurring"`
	Source          BlockSource `db:"source" json:"source"`
	StartDate       *Date       `db:"start_date" json:"start_date,omitempty"`
	EndDate         *Date       `db:"end_date" json:"end_date,omitempty"`
	ClassScheduleID *string     `db:"class_schedule_id" json:"class_schedule_id,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// AppliesOn reports whether the block constrains the given date.
func (b TimeBlock) AppliesOn(date Date) bool {
	return int(date.Weekday()) == b.DayOfWeek && date.Within(b.StartDate, b.EndDate)
}

// TimeBlockUpdate carries the optional fields a block update may change.
type TimeBlockUpdate struct {
	DayOfWeek   *int
	StartTime   *string
	EndTime     *string
	BlockType   *BlockType
	IsRecurring *bool
	StartDate   *Date
	EndDate     *Date

	// ClearStartDate and ClearEndDate remove the bound entirely.
	ClearStartDate bool
	ClearEndDate   bool
}

// Empty reports whether the update changes nothing.
func (u TimeBlockUpdate) Empty() bool {
	return u.DayOfWeek == nil && u.StartTime == nil && u.EndTime == nil && u.BlockType == nil &&
		u.IsRecurring == nil && u.StartDate == nil && u.EndDate == nil && !u.ClearStartDate && !u.ClearEndDate
}
