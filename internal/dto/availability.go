package dto

import "github.com/berryseed/327project-group10/internal/models"

// CreateTimeBlockRequest creates a user-owned availability window.
type CreateTimeBlockRequest struct {
	DayOfWeek   *int             `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime   string           `json:"start_time" validate:"required,hhmm15"`
	EndTime     string           `json:"end_time" validate:"required,hhmm15"`
	BlockType   models.BlockType `json:"block_type" validate:"omitempty,oneof=preferred available unavailable"`
	IsRecurring *bool            `json:"is_recurring"`
	StartDate   *models.Date     `json:"start_date"`
	EndDate     *models.Date     `json:"end_date"`
}

// UpdateTimeBlockRequest changes any subset of a block's fields.
type UpdateTimeBlockRequest struct {
	DayOfWeek   *int              `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartTime   *string           `json:"start_time" validate:"omitempty,hhmm15"`
	EndTime     *string           `json:"end_time" validate:"omitempty,hhmm15"`
	BlockType   *models.BlockType `json:"block_type" validate:"omitempty,oneof=preferred available unavailable"`
	IsRecurring *bool             `json:"is_recurring"`
	StartDate   *models.Date      `json:"start_date"`
	EndDate     *models.Date      `json:"end_date"`

	ClearStartDate bool `json:"clear_start_date" validate:"excluded_with=StartDate"`
	ClearEndDate   bool `json:"clear_end_date" validate:"excluded_with=EndDate"`
}

// ToUpdate converts the request into a repository update.
func (r UpdateTimeBlockRequest) ToUpdate() models.TimeBlockUpdate {
	return models.TimeBlockUpdate{
		DayOfWeek:   r.DayOfWeek,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		BlockType:   r.BlockType,
		IsRecurring: r.IsRecurring,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,

		ClearStartDate: r.ClearStartDate,
		ClearEndDate:   r.ClearEndDate,
	}
}

// CreateExceptionRequest adds a one-off override.
type CreateExceptionRequest struct {
	Date      *models.Date     `json:"date" validate:"required"`
	StartTime string           `json:"start_time" validate:"required,hhmm15"`
	EndTime   string           `json:"end_time" validate:"required,hhmm15"`
	BlockType models.BlockType `json:"block_type" validate:"omitempty,oneof=preferred available unavailable"`
	Reason    *string          `json:"reason" validate:"omitempty,max=255"`
}

// ExceptionQuery filters exceptions by an inclusive date range.
type ExceptionQuery struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

// ClassScheduleRequest creates or replaces a class entry.
type ClassScheduleRequest struct {
	CourseCode     string       `json:"course_code" validate:"required,max=20"`
	DayOfWeek      *int         `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime      string       `json:"start_time" validate:"required,hhmm15"`
	EndTime        string       `json:"end_time" validate:"required,hhmm15"`
	Location       *string      `json:"location" validate:"omitempty,max=100"`
	RecurringStart *models.Date `json:"recurring_start"`
	RecurringEnd   *models.Date `json:"recurring_end"`
}

// UpdatePreferencesRequest replaces the stored scheduling preferences.
type UpdatePreferencesRequest struct {
	WorkHours        models.WorkHours `json:"work_hours"`
	StudyBlocks      []int            `json:"study_blocks" validate:"required,min=1,dive,min=5,max=240"`
	BreakDuration    int              `json:"break_duration" validate:"min=0,max=120"`
	PreferredDays    []string         `json:"preferred_days" validate:"required,dive,weekday"`
	PomodoroDuration int              `json:"pomodoro_duration" validate:"omitempty,min=5,max=120"`
}
