package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"path"
	"sync"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/berryseed/327project-group10/internal/models"
	appErrors "github.com/berryseed/327project-group10/pkg/errors"
)

func intPtr(v int) *int { return &v }

type blockRepoStub struct {
	items        []models.TimeBlock
	listErr      error
	created      []models.TimeBlock
	createdInTx  []bool
	updated      []models.TimeBlockUpdate
	deleted      []string
	deletedClass []string
	updateErr    error
}

func (s *blockRepoStub) List(ctx context.Context, userID string) ([]models.TimeBlock, error) {
	return s.items, s.listErr
}

func (s *blockRepoStub) FindByID(ctx context.Context, userID, id string) (*models.TimeBlock, error) {
	for _, b := range s.items {
		if b.ID == id && b.UserID == userID {
			cp := b
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *blockRepoStub) Create(ctx context.Context, exec sqlx.ExtContext, block *models.TimeBlock) error {
	block.ID = "blk-new"
	s.created = append(s.created, *block)
	s.createdInTx = append(s.createdInTx, exec != nil)
	return nil
}

func (s *blockRepoStub) Update(ctx context.Context, userID, id string, upd models.TimeBlockUpdate) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = append(s.updated, upd)
	return nil
}

func (s *blockRepoStub) Delete(ctx context.Context, userID, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *blockRepoStub) DeleteByClass(ctx context.Context, exec sqlx.ExtContext, classID string) error {
	s.deletedClass = append(s.deletedClass, classID)
	return nil
}

type exceptionRepoStub struct {
	items   []models.AvailabilityException
	listErr error
	lastRng models.DateRange
	created []models.AvailabilityException
	delErr  error
}

func (s *exceptionRepoStub) List(ctx context.Context, userID string, rng models.DateRange) ([]models.AvailabilityException, error) {
	s.lastRng = rng
	return s.items, s.listErr
}

func (s *exceptionRepoStub) Create(ctx context.Context, exc *models.AvailabilityException) error {
	exc.ID = "exc-new"
	s.created = append(s.created, *exc)
	return nil
}

func (s *exceptionRepoStub) Delete(ctx context.Context, userID, id string) error {
	return s.delErr
}

type classRepoStub struct {
	items   []models.ClassScheduleEntry
	listErr error
	created []models.ClassScheduleEntry
	updated []models.ClassScheduleEntry
	delErr  error
}

func (s *classRepoStub) List(ctx context.Context, userID string) ([]models.ClassScheduleEntry, error) {
	return s.items, s.listErr
}

func (s *classRepoStub) FindByID(ctx context.Context, userID, id string) (*models.ClassScheduleEntry, error) {
	for _, c := range s.items {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *classRepoStub) Create(ctx context.Context, exec sqlx.ExtContext, entry *models.ClassScheduleEntry) error {
	entry.ID = "cls-new"
	s.created = append(s.created, *entry)
	return nil
}

func (s *classRepoStub) Update(ctx context.Context, exec sqlx.ExtContext, entry *models.ClassScheduleEntry) error {
	s.updated = append(s.updated, *entry)
	return nil
}

func (s *classRepoStub) Delete(ctx context.Context, exec sqlx.ExtContext, userID, id string) error {
	return s.delErr
}

type taskRepoStub struct {
	items []models.Task
	err   error
	calls int
}

func (s *taskRepoStub) ListOpen(ctx context.Context, userID string) ([]models.Task, error) {
	s.calls++
	return s.items, s.err
}

type prefRepoStub struct {
	stored *models.UserPreferences
	err    error
}

func (s *prefRepoStub) Get(ctx context.Context, userID string) (*models.UserPreferences, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.stored == nil {
		return nil, sql.ErrNoRows
	}
	cp := *s.stored
	return &cp, nil
}

func (s *prefRepoStub) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	prefs.UpdatedAt = mondayMorning
	cp := *prefs
	s.stored = &cp
	return nil
}

type invalidatorStub struct {
	users []string
}

func (s *invalidatorStub) InvalidateUser(ctx context.Context, userID string) error {
	s.users = append(s.users, userID)
	return nil
}

type warmerStub struct {
	users []string
}

func (s *warmerStub) Warm(userID string) {
	s.users = append(s.users, userID)
}

// kvStub is an in-memory CacheRepository storing JSON like the real backends.
type kvStub struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func newKVStub() *kvStub {
	return &kvStub{entries: map[string][]byte{}}
}

func (s *kvStub) Get(ctx context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *kvStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = raw
	s.sets++
	return nil
}

func (s *kvStub) DeleteByPattern(ctx context.Context, pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(s.entries, key)
		}
	}
	return nil
}

type txProviderMock struct {
	db *sqlx.DB
}

func newTxProviderMock(t *testing.T) (txProvider, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &txProviderMock{db: sqlx.NewDb(db, "sqlmock")}, mock
}

func (t *txProviderMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return t.db.BeginTxx(ctx, opts)
}

func errNoRows() error { return sql.ErrNoRows }
