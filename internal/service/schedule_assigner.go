package service

import (
	"math"
	"sort"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
)

const (
	fallbackTaskCount     = 4
	fallbackStudyTime     = 240
	fallbackEfficiency    = 75
	failedOptimalSchedule = "failed to create optimal schedule"
)

// SortTasksByPriority orders by priority rank descending, then deadline ascending with
// undated tasks last. The sort is stable and does not modify tasks.
func SortTasksByPriority(tasks []models.Task) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra > rb
		}
		switch {
		case a.Deadline != nil && b.Deadline != nil:
			return a.Deadline.Before(*b.Deadline)
		case a.Deadline != nil:
			return true
		default:
			return false
		}
	})
	return sorted
}

// ScheduleAssigner places sorted tasks onto generated study slots one per slot.
type ScheduleAssigner struct {
	generator *SlotGenerator
}

// NewScheduleAssigner builds an assigner.
func NewScheduleAssigner(generator *SlotGenerator) *ScheduleAssigner {
	return &ScheduleAssigner{generator: generator}
}

// CreateOptimalSchedule walks days then slots in order; each available study slot takes the
// next task regardless of its estimate. Tasks beyond slot supply are left out. It never fails:
// slot generation problems produce the fixed fallback schedule.
func (a *ScheduleAssigner) CreateOptimalSchedule(tasks []models.Task, prefs *models.UserPreferences, constraints *dto.ScheduleConstraints) dto.OptimalScheduleResult {
	var override dto.AvailabilityOverride
	if constraints != nil {
		override = constraints.UnavailableTime
	}

	sorted := SortTasksByPriority(tasks)
	slots := a.generator.GenerateTimeSlots(tasks, prefs, override)
	if !slots.Success {
		fallback := FallbackSchedule(models.NewDate(a.generator.clock.Now()), sorted)
		return dto.OptimalScheduleResult{
			Success:  false,
			Error:    failedOptimalSchedule + ": " + slots.Error,
			Fallback: &fallback,
		}
	}

	schedule := dto.OptimalSchedule{Daily: make(map[string]dto.DailyPlan, len(slots.TimeSlots))}
	next := 0
	for _, day := range slots.TimeSlots {
		plan := dto.DailyPlan{Day: day.Day, Tasks: []dto.ScheduledTask{}, StudySessions: []dto.StudySession{}}
		for _, slot := range day.Slots {
			if slot.Type != dto.SlotStudy || !slot.Available || next >= len(sorted) {
				continue
			}
			task := sorted[next]
			next++
			plan.Tasks = append(plan.Tasks, dto.ScheduledTask{Task: task, TimeSlot: slot, EstimatedDuration: task.Estimate()})
			plan.StudySessions = append(plan.StudySessions, dto.StudySession{
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				Duration:  slot.Duration,
				TaskID:    task.ID,
				TaskTitle: task.Title,
			})
		}
		schedule.Daily[day.Date] = plan
	}

	schedule.Weekly = weeklySummary(schedule.Daily)
	if slots.Recommendations != nil {
		schedule.Recommendations = *slots.Recommendations
	}
	return dto.OptimalScheduleResult{Success: true, Schedule: &schedule}
}

func weeklySummary(daily map[string]dto.DailyPlan) dto.WeeklySummary {
	summary := dto.WeeklySummary{
		TasksByPriority: map[string]int{
			string(models.PriorityUrgent): 0,
			string(models.PriorityHigh):   0,
			string(models.PriorityMedium): 0,
			string(models.PriorityLow):    0,
		},
		TasksByType: map[string]int{},
	}
	for _, plan := range daily {
		summary.TotalTasks += len(plan.Tasks)
		for _, st := range plan.Tasks {
			summary.TotalStudyTime += st.EstimatedDuration
			summary.TasksByPriority[priorityBucket(st.Task.Priority)]++
			taskType := string(st.Task.TaskType)
			if taskType == "" {
				taskType = string(models.TaskOther)
			}
			summary.TasksByType[taskType]++
		}
	}
	hours := math.Max(float64(summary.TotalStudyTime)/60, 1)
	summary.Efficiency = int(math.Round(float64(summary.TotalTasks) / hours * 100))
	return summary
}

// priorityBucket folds unknown priorities into medium, matching their sort rank.
func priorityBucket(p models.TaskPriority) string {
	switch p {
	case models.PriorityUrgent, models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		return string(p)
	}
	return string(models.PriorityMedium)
}

// FallbackSchedule maps the first four sorted tasks onto a placeholder morning slot.
func FallbackSchedule(today models.Date, sorted []models.Task) dto.OptimalScheduleResult {
	n := len(sorted)
	if n > fallbackTaskCount {
		n = fallbackTaskCount
	}
	tasks := make([]dto.ScheduledTask, 0, n)
	for _, t := range sorted[:n] {
		tasks = append(tasks, dto.ScheduledTask{
			Task:              t,
			TimeSlot:          dto.TimeSlot{StartTime: "09:00", EndTime: "10:00", Duration: 60},
			EstimatedDuration: t.Estimate(),
		})
	}
	return dto.OptimalScheduleResult{
		Success: false,
		Schedule: &dto.OptimalSchedule{
			Daily: map[string]dto.DailyPlan{
				today.String(): {Day: "today", Tasks: tasks, StudySessions: []dto.StudySession{}},
			},
			Weekly: dto.WeeklySummary{TotalTasks: n, TotalStudyTime: fallbackStudyTime, Efficiency: fallbackEfficiency},
			Recommendations: dto.Recommendations{
				HighPriorityTasks:    []dto.HighPriorityRecommendation{},
				OptimalStudyTimes:    []string{"09:00-10:00"},
				WorkloadDistribution: map[string]dto.DayWorkload{},
				StudyTips:            []string{"Manual scheduling used - consider using AI features for better optimization"},
			},
		},
	}
}
