package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/berryseed/327project-group10/internal/models"
)

// TaskRepository reads tasks owned by the task service. The planner never writes them.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository constructs the repository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListOpen returns tasks that still need study time.
func (r *TaskRepository) ListOpen(ctx context.Context, userID string) ([]models.Task, error) {
	const query = `SELECT id, user_id, title, task_type, course_code, priority, deadline, COALESCE(estimated_duration, 60) AS estimated_duration, status
FROM tasks WHERE user_id = $1 AND status <> 'completed' ORDER BY deadline ASC NULLS LAST, id ASC`
	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("list open tasks: %w", err)
	}
	return tasks, nil
}
