package models

import "time"

// AvailabilityException overrides recurring availability for a single date.
type AvailabilityException struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Date      Date      `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	BlockType BlockType `db:"block_type" json:"block_type"`
	Reason    *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DateRange is an optional inclusive date window.
type DateRange struct {
	Start *Date
	End   *Date
}

// Contains reports whether d lies in the range.
func (r DateRange) Contains(d Date) bool {
	return d.Within(r.Start, r.End)
}
