package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berryseed/327project-group10/internal/models"
)

func TestUserPreferenceRepositoryGet(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserPreferenceRepository(db)

	rows := sqlmock.NewRows([]string{"user_id", "work_hours", "study_blocks", "break_duration", "preferred_days", "pomodoro_duration", "updated_at"}).
		AddRow("user-1", `{"start":"08:00","end":"16:00"}`, `[50,25]`, 10, `["monday","friday"]`, 30, time.Now())
	mock.ExpectQuery("FROM user_preferences WHERE user_id = \\$1").
		WithArgs("user-1").
		WillReturnRows(rows)

	prefs, err := repo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.WorkHours{Start: "08:00", End: "16:00"}, prefs.WorkHours)
	assert.Equal(t, []int{50, 25}, prefs.StudyBlocks)
	assert.Equal(t, []string{"monday", "friday"}, prefs.PreferredDays)
	assert.Equal(t, 30, prefs.PomodoroDuration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPreferenceRepositoryGetMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserPreferenceRepository(db)

	mock.ExpectQuery("FROM user_preferences").WillReturnError(sql.ErrNoRows)
	_, err := repo.Get(context.Background(), "user-2")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserPreferenceRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserPreferenceRepository(db)

	prefs := models.DefaultPreferences()
	prefs.UserID = "user-1"

	mock.ExpectExec("INSERT INTO user_preferences").
		WithArgs("user-1", []byte(`{"start":"09:00","end":"17:00"}`), []byte(`[25,50,90]`), 15,
			[]byte(`["monday","tuesday","wednesday","thursday","friday"]`), 25, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Upsert(context.Background(), &prefs))
	assert.False(t, prefs.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
