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

func TestExceptionRepositoryListWithRange(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewExceptionRepository(db)

	from := models.MustDate("2025-01-01")
	to := models.MustDate("2025-01-31")
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "date", "start_time", "end_time", "block_type", "reason", "created_at", "updated_at"}).
		AddRow("exc-1", "user-1", time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), "15:00", "16:00", "unavailable", "dentist", now, now)
	mock.ExpectQuery("FROM availability_exceptions WHERE user_id = \\$1 AND date >= \\$2 AND date <= \\$3 ORDER BY date").
		WithArgs("user-1", "2025-01-01", "2025-01-31").
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), "user-1", models.DateRange{Start: &from, End: &to})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2025-01-06", items[0].Date.String())
	require.NotNil(t, items[0].Reason)
	assert.Equal(t, "dentist", *items[0].Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExceptionRepositoryListUnbounded(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewExceptionRepository(db)

	mock.ExpectQuery("FROM availability_exceptions WHERE user_id = \\$1 ORDER BY date").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	items, err := repo.List(context.Background(), "user-1", models.DateRange{})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExceptionRepositoryCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewExceptionRepository(db)

	mock.ExpectExec("INSERT INTO availability_exceptions").
		WithArgs(sqlmock.AnyArg(), "user-1", "2025-01-06", "15:00", "16:00", models.BlockUnavailable, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	exc := &models.AvailabilityException{UserID: "user-1", Date: models.MustDate("2025-01-06"), StartTime: "15:00", EndTime: "16:00"}
	require.NoError(t, repo.Create(context.Background(), exc))
	assert.Equal(t, models.BlockUnavailable, exc.BlockType)

	mock.ExpectExec("DELETE FROM availability_exceptions").
		WithArgs("exc-9", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "user-1", "exc-9"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
