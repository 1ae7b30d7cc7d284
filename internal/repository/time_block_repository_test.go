package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berryseed/327project-group10/internal/models"
)

var timeBlockRowColumns = []string{"id", "user_id", "day_of_week", "start_time", "end_time", "block_type", "is_recurring", "source", "start_date", "end_date", "class_schedule_id", "created_at", "updated_at"}

func TestTimeBlockRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTimeBlockRepository(db)

	now := time.Now()
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(timeBlockRowColumns).
		AddRow("blk-1", "user-1", 1, "10:00", "10:30", "unavailable", true, "user", start, nil, nil, now, now).
		AddRow("blk-2", "user-1", 3, "13:00", "14:00", "unavailable", true, "class", nil, nil, "cls-1", now, now)
	mock.ExpectQuery("FROM time_blocks WHERE user_id = \\$1 ORDER BY day_of_week").
		WithArgs("user-1").
		WillReturnRows(rows)

	blocks, err := repo.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, models.BlockUnavailable, blocks[0].BlockType)
	require.NotNil(t, blocks[0].StartDate)
	assert.Equal(t, "2025-01-06", blocks[0].StartDate.String())
	assert.Nil(t, blocks[0].EndDate)
	require.NotNil(t, blocks[1].ClassScheduleID)
	assert.Equal(t, "cls-1", *blocks[1].ClassScheduleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeBlockRepositoryCreateDefaults(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTimeBlockRepository(db)

	mock.ExpectExec("INSERT INTO time_blocks").
		WithArgs(sqlmock.AnyArg(), "user-1", 2, "09:00", "10:00", models.BlockAvailable, false, models.SourceUser,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	block := &models.TimeBlock{UserID: "user-1", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00"}
	require.NoError(t, repo.Create(context.Background(), nil, block))
	assert.NotEmpty(t, block.ID)
	assert.False(t, block.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeBlockRepositoryUpdateBuildsPartialSet(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTimeBlockRepository(db)

	day := 4
	start := "08:15"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE time_blocks SET day_of_week = $1, start_time = $2, updated_at = $3 WHERE id = $4 AND user_id = $5 AND source <> 'class'")).
		WithArgs(4, "08:15", sqlmock.AnyArg(), "blk-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), "user-1", "blk-1", models.TimeBlockUpdate{DayOfWeek: &day, StartTime: &start})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeBlockRepositoryUpdateClearsDateBounds(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTimeBlockRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE time_blocks SET start_date = NULL, end_date = NULL, updated_at = $1 WHERE id = $2 AND user_id = $3 AND source <> 'class'")).
		WithArgs(sqlmock.AnyArg(), "blk-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), "user-1", "blk-1", models.TimeBlockUpdate{ClearStartDate: true, ClearEndDate: true})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeBlockRepositoryUpdateNotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTimeBlockRepository(db)

	assert.ErrorIs(t, repo.Update(context.Background(), "user-1", "blk-1", models.TimeBlockUpdate{}), sql.ErrNoRows)

	recurring := false
	mock.ExpectExec("UPDATE time_blocks SET is_recurring").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Update(context.Background(), "user-1", "missing", models.TimeBlockUpdate{IsRecurring: &recurring})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeBlockRepositoryDeletes(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTimeBlockRepository(db)

	mock.ExpectExec("DELETE FROM time_blocks WHERE id = \\$1 AND user_id = \\$2").
		WithArgs("blk-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "user-1", "blk-1"), sql.ErrNoRows)

	mock.ExpectExec("DELETE FROM time_blocks WHERE class_schedule_id = \\$1").
		WithArgs("cls-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	assert.NoError(t, repo.DeleteByClass(context.Background(), nil, "cls-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
