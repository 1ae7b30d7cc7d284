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

// ExceptionRepository persists date-specific availability overrides.
type ExceptionRepository struct {
	db *sqlx.DB
}

// NewExceptionRepository constructs the repository.
func NewExceptionRepository(db *sqlx.DB) *ExceptionRepository {
	return &ExceptionRepository{db: db}
}

// List returns exceptions for userID within the optional inclusive range.
func (r *ExceptionRepository) List(ctx context.Context, userID string, rng models.DateRange) ([]models.AvailabilityException, error) {
	query := `SELECT id, user_id, date, to_char(start_time, 'HH24:MI') AS start_time, to_char(end_time, 'HH24:MI') AS end_time,
block_type, reason, created_at, updated_at FROM availability_exceptions WHERE user_id = $1`
	args := []interface{}{userID}
	if rng.Start != nil {
		args = append(args, *rng.Start)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if rng.End != nil {
		args = append(args, *rng.End)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date ASC, start_time ASC"

	var items []models.AvailabilityException
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list availability exceptions: %w", err)
	}
	return items, nil
}

// Create inserts an exception. Block type defaults to unavailable.
func (r *ExceptionRepository) Create(ctx context.Context, exc *models.AvailabilityException) error {
	if exc.ID == "" {
		exc.ID = uuid.NewString()
	}
	if exc.BlockType == "" {
		exc.BlockType = models.BlockUnavailable
	}
	now := time.Now().UTC()
	exc.CreatedAt = now
	exc.UpdatedAt = now

	const query = `INSERT INTO availability_exceptions (id, user_id, date, start_time, end_time, block_type, reason, created_at, updated_at)
VALUES (:id, :user_id, :date, :start_time, :end_time, :block_type, :reason, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, exc); err != nil {
		return fmt.Errorf("create availability exception: %w", err)
	}
	return nil
}

// Delete removes an exception owned by userID.
func (r *ExceptionRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM availability_exceptions WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete availability exception: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("availability exception rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
