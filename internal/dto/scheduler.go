package dto

import (
	"sort"

	"github.com/berryseed/327project-group10/internal/models"
)

// CandidateScheduleItem is one proposed interval submitted for conflict checking.
type CandidateScheduleItem struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label,omitempty"`
}

// ValidateScheduleRequest wraps a candidate schedule.
type ValidateScheduleRequest struct {
	CandidateSchedule []CandidateScheduleItem `json:"candidateSchedule"`
}

// ScheduleConflict reports one overlap or malformed item.
type ScheduleConflict struct {
	Item   CandidateScheduleItem `json:"item"`
	Reason string                `json:"reason"`
}

// OvercommitWarning flags a date with more than eight scheduled hours.
type OvercommitWarning struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// ValidationResult is returned by the conflict validator.
type ValidationResult struct {
	Success     bool                `json:"success"`
	Conflicts   []ScheduleConflict  `json:"conflicts"`
	Warnings    []OvercommitWarning `json:"warnings"`
	Suggestions []string            `json:"suggestions"`
}

// SlotType distinguishes study from break slots.
type SlotType string

const (
	SlotStudy SlotType = "study"
	SlotBreak SlotType = "break"
)

// TimeSlot is a generated interval on a specific day.
type TimeSlot struct {
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Duration  int      `json:"duration"`
	Type      SlotType `json:"type,omitempty"`
	Available bool     `json:"available"`
}

// DaySlots groups a day's generated slots.
type DaySlots struct {
	Date  string     `json:"date"`
	Day   string     `json:"day"`
	Slots []TimeSlot `json:"slots"`
}

// AvailabilityWindow is a caller-supplied "HH:mm" interval to keep free.
type AvailabilityWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityOverride maps a weekday name to extra unavailable windows.
type AvailabilityOverride map[string][]AvailabilityWindow

// HighPriorityRecommendation pairs a top task with an early study slot.
type HighPriorityRecommendation struct {
	Task            string   `json:"task"`
	TaskID          string   `json:"taskId,omitempty"`
	Date            string   `json:"date"`
	RecommendedSlot TimeSlot `json:"recommendedSlot"`
	Reasoning       string   `json:"reasoning"`
}

// DayWorkload summarises one day's study capacity.
type DayWorkload struct {
	AvailableSlots int `json:"availableSlots"`
	TotalStudyTime int `json:"totalStudyTime"`
	Efficiency     int `json:"efficiency"`
}

// Recommendations are derived once over the generated week.
type Recommendations struct {
	HighPriorityTasks    []HighPriorityRecommendation `json:"highPriorityTasks"`
	OptimalStudyTimes    []string                     `json:"optimalStudyTimes"`
	WorkloadDistribution map[string]DayWorkload       `json:"workloadDistribution"`
	StudyTips            []string                     `json:"studyTips"`
}

// TimeSlotsRequest asks for a week of study slots. Omitted tasks or preferences are loaded
// for the authenticated user.
type TimeSlotsRequest struct {
	Tasks           []models.Task           `json:"tasks"`
	UserPreferences *models.UserPreferences `json:"userPreferences"`
	AvailableTime   AvailabilityOverride    `json:"availableTime"`
}

// TimeSlotResult carries either the generated plan or a fallback.
type TimeSlotResult struct {
	Success         bool             `json:"success"`
	TimeSlots       []DaySlots       `json:"timeSlots,omitempty"`
	Recommendations *Recommendations `json:"recommendations,omitempty"`
	Error           string           `json:"error,omitempty"`
	Fallback        *TimeSlotResult  `json:"fallback,omitempty"`
}

// ScheduleConstraints adjusts optimal schedule generation.
type ScheduleConstraints struct {
	UnavailableTime AvailabilityOverride `json:"unavailableTime"`
}

// OptimalScheduleRequest asks for a task-to-slot plan.
type OptimalScheduleRequest struct {
	Tasks           []models.Task           `json:"tasks"`
	UserPreferences *models.UserPreferences `json:"userPreferences"`
	Constraints     *ScheduleConstraints    `json:"constraints"`
}

// ScheduledTask is a task placed on a slot.
type ScheduledTask struct {
	Task              models.Task `json:"task"`
	TimeSlot          TimeSlot    `json:"timeSlot"`
	EstimatedDuration int         `json:"estimatedDuration"`
}

// StudySession is the compact view of a placed task.
type StudySession struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  int    `json:"duration"`
	TaskID    string `json:"taskId"`
	TaskTitle string `json:"taskTitle"`
}

// DailyPlan lists a day's assignments.
type DailyPlan struct {
	Day           string          `json:"day"`
	Tasks         []ScheduledTask `json:"tasks"`
	StudySessions []StudySession  `json:"studySessions"`
}

// WeeklySummary aggregates the plan.
type WeeklySummary struct {
	TotalTasks      int            `json:"totalTasks"`
	TotalStudyTime  int            `json:"totalStudyTime"`
	TasksByPriority map[string]int `json:"tasksByPriority,omitempty"`
	TasksByType     map[string]int `json:"tasksByType,omitempty"`
	Efficiency      int            `json:"efficiency"`
}

// OptimalSchedule is keyed by "YYYY-MM-DD".
type OptimalSchedule struct {
	Daily           map[string]DailyPlan `json:"daily"`
	Weekly          WeeklySummary        `json:"weekly"`
	Recommendations Recommendations      `json:"recommendations"`
}

// OptimalScheduleResult carries either the plan or a fallback.
type OptimalScheduleResult struct {
	Success  bool                   `json:"success"`
	Schedule *OptimalSchedule       `json:"schedule,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Fallback *OptimalScheduleResult `json:"fallback,omitempty"`
}

// Dates returns the plan's dates in ascending order.
func (s OptimalSchedule) Dates() []string {
	dates := make([]string, 0, len(s.Daily))
	for d := range s.Daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Effective resolves the schedule to render, falling back when generation failed.
func (r OptimalScheduleResult) Effective() *OptimalSchedule {
	if r.Schedule != nil {
		return r.Schedule
	}
	if r.Fallback != nil {
		return r.Fallback.Schedule
	}
	return nil
}
