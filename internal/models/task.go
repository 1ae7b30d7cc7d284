package models

import "time"

// TaskPriority ranks tasks for assignment.
type TaskPriority string

const (
	PriorityUrgent TaskPriority = "urgent"
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// Rank maps priority to its sort weight. Unknown values rank as medium.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 2
}

// TaskType categorises academic work.
type TaskType string

const (
	TaskAssignment TaskType = "assignment"
	TaskExam       TaskType = "exam"
	TaskClass      TaskType = "class"
	TaskStudy      TaskType = "study"
	TaskProject    TaskType = "project"
	TaskOther      TaskType = "other"
)

// TaskStatus tracks progress.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusOverdue    TaskStatus = "overdue"
)

// DefaultEstimatedDuration is used when a task carries no estimate.
const DefaultEstimatedDuration = 60

// Task is owned by the task store and read-only to the planner.
type Task struct {
	ID                string       `db:"id" json:"id"`
	UserID            string       `db:"user_id" json:"user_id,omitempty"`
	Title             string       `db:"title" json:"title"`
	TaskType          TaskType     `db:"task_type" json:"task_type,omitempty"`
	CourseCode        *string      `db:"course_code" json:"course_code,omitempty"`
	Priority          TaskPriority `db:"priority" json:"priority"`
	Deadline          *time.Time   `db:"deadline" json:"deadline,omitempty"`
	EstimatedDuration int          `db:"estimated_duration" json:"estimated_duration,omitempty"`
	Status            TaskStatus   `db:"status" json:"status,omitempty"`
}

// Estimate returns the estimated duration, defaulting to an hour.
func (t Task) Estimate() int {
	if t.EstimatedDuration > 0 {
		return t.EstimatedDuration
	}
	return DefaultEstimatedDuration
}
