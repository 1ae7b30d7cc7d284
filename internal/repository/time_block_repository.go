package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/berryseed/327project-group10/internal/models"
)

const timeBlockColumns = `id, user_id, day_of_week, to_char(start_time, 'HH24:MI') AS start_time, to_char(end_time, 'HH24:MI') AS end_time,
block_type, is_recurring, source, start_date, end_date, class_schedule_id, created_at, updated_at`

// TimeBlockRepository persists recurring availability windows.
type TimeBlockRepository struct {
	db *sqlx.DB
}

// NewTimeBlockRepository constructs the repository.
func NewTimeBlockRepository(db *sqlx.DB) *TimeBlockRepository {
	return &TimeBlockRepository{db: db}
}

func (r *TimeBlockRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// List returns a user's blocks ordered by weekday and start.
func (r *TimeBlockRepository) List(ctx context.Context, userID string) ([]models.TimeBlock, error) {
	query := `SELECT ` + timeBlockColumns + ` FROM time_blocks WHERE user_id = $1 ORDER BY day_of_week ASC, start_time ASC`
	var blocks []models.TimeBlock
	if err := r.db.SelectContext(ctx, &blocks, query, userID); err != nil {
		return nil, fmt.Errorf("list time blocks: %w", err)
	}
	return blocks, nil
}

// FindByID loads one block owned by userID.
func (r *TimeBlockRepository) FindByID(ctx context.Context, userID, id string) (*models.TimeBlock, error) {
	query := `SELECT ` + timeBlockColumns + ` FROM time_blocks WHERE id = $1 AND user_id = $2`
	var block models.TimeBlock
	if err := r.db.GetContext(ctx, &block, query, id, userID); err != nil {
		return nil, err
	}
	return &block, nil
}

// Create inserts a block, assigning ID and timestamps.
func (r *TimeBlockRepository) Create(ctx context.Context, exec sqlx.ExtContext, block *models.TimeBlock) error {
	if block.ID == "" {
		block.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	block.CreatedAt = now
	block.UpdatedAt = now
	if block.Source == "" {
		block.Source = models.SourceUser
	}
	if block.BlockType == "" {
		block.BlockType = models.BlockAvailable
	}

	const query = `INSERT INTO time_blocks (id, user_id, day_of_week, start_time, end_time, block_type, is_recurring, source, start_date, end_date, class_schedule_id, created_at, updated_at)
VALUES (:id, :user_id, :day_of_week, :start_time, :end_time, :block_type, :is_recurring, :source, :start_date, :end_date, :class_schedule_id, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, block); err != nil {
		return fmt.Errorf("create time block: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of upd to a user-owned block. Class-mirrored blocks are
// not editable here. Returns sql.ErrNoRows when nothing matched.
func (r *TimeBlockRepository) Update(ctx context.Context, userID, id string, upd models.TimeBlockUpdate) error {
	if upd.Empty() {
		return sql.ErrNoRows
	}

	var (
		sets []string
		args []interface{}
	)
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.DayOfWeek != nil {
		add("day_of_week", *upd.DayOfWeek)
	}
	if upd.StartTime != nil {
		add("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		add("end_time", *upd.EndTime)
	}
	if upd.BlockType != nil {
		add("block_type", *upd.BlockType)
	}
	if upd.IsRecurring != nil {
		add("is_recurring", *upd.IsRecurring)
	}
	if upd.StartDate != nil {
		add("start_date", *upd.StartDate)
	}
	if upd.EndDate != nil {
		add("end_date", *upd.EndDate)
	}
	if upd.ClearStartDate {
		sets = append(sets, "start_date = NULL")
	}
	if upd.ClearEndDate {
		sets = append(sets, "end_date = NULL")
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE time_blocks SET %s WHERE id = $%d AND user_id = $%d AND source <> 'class'`,
		strings.Join(sets, ", "), len(args)-1, len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update time block: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("time block rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a user-owned block.
func (r *TimeBlockRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM time_blocks WHERE id = $1 AND user_id = $2 AND source <> 'class'`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete time block: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("time block rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByClass removes every block mirrored from a class entry.
func (r *TimeBlockRepository) DeleteByClass(ctx context.Context, exec sqlx.ExtContext, classID string) error {
	const query = `DELETE FROM time_blocks WHERE class_schedule_id = $1 AND source = 'class'`
	if _, err := r.exec(exec).ExecContext(ctx, query, classID); err != nil {
		return fmt.Errorf("delete mirrored time blocks: %w", err)
	}
	return nil
}
