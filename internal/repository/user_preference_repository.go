package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/berryseed/327project-group10/internal/models"
)

type userPreferenceRow struct {
	UserID           string         `db:"user_id"`
	WorkHours        types.JSONText `db:"work_hours"`
	StudyBlocks      types.JSONText `db:"study_blocks"`
	BreakDuration    int            `db:"break_duration"`
	PreferredDays    types.JSONText `db:"preferred_days"`
	PomodoroDuration int            `db:"pomodoro_duration"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

// UserPreferenceRepository persists scheduling preferences as JSON columns.
type UserPreferenceRepository struct {
	db *sqlx.DB
}

// NewUserPreferenceRepository constructs the repository.
func NewUserPreferenceRepository(db *sqlx.DB) *UserPreferenceRepository {
	return &UserPreferenceRepository{db: db}
}

// Get returns the stored preferences or sql.ErrNoRows.
func (r *UserPreferenceRepository) Get(ctx context.Context, userID string) (*models.UserPreferences, error) {
	const query = `SELECT user_id, work_hours, study_blocks, break_duration, preferred_days, pomodoro_duration, updated_at
FROM user_preferences WHERE user_id = $1`
	var row userPreferenceRow
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		return nil, err
	}

	prefs := models.UserPreferences{
		UserID:           row.UserID,
		BreakDuration:    row.BreakDuration,
		PomodoroDuration: row.PomodoroDuration,
		UpdatedAt:        row.UpdatedAt,
	}
	if err := row.WorkHours.Unmarshal(&prefs.WorkHours); err != nil {
		return nil, fmt.Errorf("decode work_hours: %w", err)
	}
	if err := row.StudyBlocks.Unmarshal(&prefs.StudyBlocks); err != nil {
		return nil, fmt.Errorf("decode study_blocks: %w", err)
	}
	if err := row.PreferredDays.Unmarshal(&prefs.PreferredDays); err != nil {
		return nil, fmt.Errorf("decode preferred_days: %w", err)
	}
	return &prefs, nil
}

// Upsert stores prefs for prefs.UserID.
func (r *UserPreferenceRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	workHours, err := json.Marshal(prefs.WorkHours)
	if err != nil {
		return fmt.Errorf("encode work_hours: %w", err)
	}
	studyBlocks, err := json.Marshal(prefs.StudyBlocks)
	if err != nil {
		return fmt.Errorf("encode study_blocks: %w", err)
	}
	days, err := json.Marshal(prefs.PreferredDays)
	if err != nil {
		return fmt.Errorf("encode preferred_days: %w", err)
	}
	prefs.UpdatedAt = time.Now().UTC()

	row := userPreferenceRow{
		UserID:           prefs.UserID,
		WorkHours:        types.JSONText(workHours),
		StudyBlocks:      types.JSONText(studyBlocks),
		BreakDuration:    prefs.BreakDuration,
		PreferredDays:    types.JSONText(days),
		PomodoroDuration: prefs.PomodoroDuration,
		UpdatedAt:        prefs.UpdatedAt,
	}
	const query = `INSERT INTO user_preferences (user_id, work_hours, study_blocks, break_duration, preferred_days, pomodoro_duration, updated_at)
VALUES (:user_id, :work_hours, :study_blocks, :break_duration, :preferred_days, :pomodoro_duration, :updated_at)
ON CONFLICT (user_id) DO UPDATE
SET work_hours = EXCLUDED.work_hours,
    study_blocks = EXCLUDED.study_blocks,
    break_duration = EXCLUDED.break_duration,
    preferred_days = EXCLUDED.preferred_days,
    pomodoro_duration = EXCLUDED.pomodoro_duration,
    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("upsert user preferences: %w", err)
	}
	return nil
}
