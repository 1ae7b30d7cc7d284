package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/berryseed/327project-group10/internal/models"
)

const classScheduleColumns = `id, user_id, course_code, day_of_week, to_char(start_time, 'HH24:MI') AS start_time, to_char(end_time, 'HH24:MI') AS end_time,
location, recurring_start, recurring_end, created_at, updated_at`

// ClassScheduleRepository persists recurring class meetings.
type ClassScheduleRepository struct {
	db *sqlx.DB
}

// NewClassScheduleRepository constructs the repository.
func NewClassScheduleRepository(db *sqlx.DB) *ClassScheduleRepository {
	return &ClassScheduleRepository{db: db}
}

func (r *ClassScheduleRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// List returns a user's classes ordered by weekday and start.
func (r *ClassScheduleRepository) List(ctx context.Context, userID string) ([]models.ClassScheduleEntry, error) {
	query := `SELECT ` + classScheduleColumns + ` FROM class_schedule WHERE user_id = $1 ORDER BY day_of_week ASC, start_time ASC`
	var entries []models.ClassScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list class schedule: %w", err)
	}
	return entries, nil
}

// FindByID loads a class entry owned by userID.
func (r *ClassScheduleRepository) FindByID(ctx context.Context, userID, id string) (*models.ClassScheduleEntry, error) {
	query := `SELECT ` + classScheduleColumns + ` FROM class_schedule WHERE id = $1 AND user_id = $2`
	var entry models.ClassScheduleEntry
	if err := r.db.GetContext(ctx, &entry, query, id, userID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create inserts a class entry.
func (r *ClassScheduleRepository) Create(ctx context.Context, exec sqlx.ExtContext, entry *models.ClassScheduleEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	const query = `INSERT INTO class_schedule (id, user_id, course_code, day_of_week, start_time, end_time, location, recurring_start, recurring_end, created_at, updated_at)
VALUES (:id, :user_id, :course_code, :day_of_week, :start_time, :end_time, :location, :recurring_start, :recurring_end, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, entry); err != nil {
		return fmt.Errorf("create class schedule: %w", err)
	}
	return nil
}

// Update replaces a class entry's fields.
func (r *ClassScheduleRepository) Update(ctx context.Context, exec sqlx.ExtContext, entry *models.ClassScheduleEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE class_schedule SET course_code = :course_code, day_of_week = :day_of_week, start_time = :start_time,
end_time = :end_time, location = :location, recurring_start = :recurring_start, recurring_end = :recurring_end, updated_at = :updated_at
WHERE id = :id AND user_id = :user_id`
	result, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, entry)
	if err != nil {
		return fmt.Errorf("update class schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("class schedule rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a class entry owned by userID.
func (r *ClassScheduleRepository) Delete(ctx context.Context, exec sqlx.ExtContext, userID, id string) error {
	const query = `DELETE FROM class_schedule WHERE id = $1 AND user_id = $2`
	result, err := r.exec(exec).ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete class schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("class schedule rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
