package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
	appErrors "github.com/berryseed/327project-group10/pkg/errors"
)

type plannerFixture struct {
	blocks     *blockRepoStub
	exceptions *exceptionRepoStub
	classes    *classRepoStub
	tasks      *taskRepoStub
	prefs      *prefRepoStub
	kv         *kvStub
	metrics    *MetricsService
}

func newPlannerFixture(enabled bool) (*PlannerService, *plannerFixture) {
	f := &plannerFixture{
		blocks:     &blockRepoStub{},
		exceptions: &exceptionRepoStub{},
		classes:    &classRepoStub{},
		tasks:      &taskRepoStub{},
		prefs:      &prefRepoStub{},
		kv:         newKVStub(),
		metrics:    NewMetricsService(),
	}
	cache := NewCacheService(f.kv, f.metrics, time.Minute, zap.NewNop(), true)
	prefs := NewPreferenceService(f.prefs, nil, nil, nil, zap.NewNop())
	svc := NewPlannerService(f.blocks, f.exceptions, f.classes, f.tasks, prefs, cache, f.metrics, fixedClock(), zap.NewNop(),
		PlannerConfig{Enabled: enabled, CacheTTL: time.Minute})
	return svc, f
}

func TestPlannerServiceDisabled(t *testing.T) {
	svc, _ := newPlannerFixture(false)

	_, err := svc.Validate(context.Background(), "user-1", dto.ValidateScheduleRequest{})
	assert.True(t, errors.Is(err, appErrors.ErrFeatureDisabled))
	_, _, err = svc.TimeSlots(context.Background(), "user-1", dto.TimeSlotsRequest{})
	assert.True(t, errors.Is(err, appErrors.ErrFeatureDisabled))
	_, _, err = svc.OptimalSchedule(context.Background(), "user-1", dto.OptimalScheduleRequest{})
	assert.True(t, errors.Is(err, appErrors.ErrFeatureDisabled))
}

func TestPlannerServiceValidateUsesStoredConstraints(t *testing.T) {
	svc, f := newPlannerFixture(true)
	f.blocks.items = []models.TimeBlock{unavailableBlock("blk-1", 1, "10:00", "10:30")}

	result, err := svc.Validate(context.Background(), "user-1", dto.ValidateScheduleRequest{
		CandidateSchedule: []dto.CandidateScheduleItem{
			{Date: "2025-01-06", Start: "10:00", End: "10:30", Label: "Essay"},
			{Date: "2025-01-06", Start: "10:30", End: "11:00", Label: "Reading"},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "Essay", result.Conflicts[0].Item.Label)
	assert.Equal(t, uint64(1), f.metrics.Snapshot().ValidationConflicts)
}

func TestPlannerServiceSnapshotErrors(t *testing.T) {
	svc, f := newPlannerFixture(true)
	f.classes.listErr = errors.New("connection refused")

	_, err := svc.Validate(context.Background(), "user-1", dto.ValidateScheduleRequest{})
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
	assert.Contains(t, err.Error(), "class schedule")
}

func TestPlannerServiceTimeSlotsLoadsInputsAndCaches(t *testing.T) {
	svc, f := newPlannerFixture(true)
	f.tasks.items = []models.Task{{ID: "t1", Title: "Essay", Priority: models.PriorityHigh, EstimatedDuration: 60}}

	first, hit, err := svc.TimeSlots(context.Background(), "user-1", dto.TimeSlotsRequest{})
	require.NoError(t, err)
	assert.False(t, hit)
	require.True(t, first.Success)
	// defaults prefer monday..friday, and the week starts on a monday
	assert.Len(t, first.TimeSlots, 5)
	assert.Equal(t, "2025-01-06", first.TimeSlots[0].Date)
	assert.Equal(t, 1, f.tasks.calls)

	second, hit, err := svc.TimeSlots(context.Background(), "user-1", dto.TimeSlotsRequest{})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.TimeSlots, second.TimeSlots)
	assert.Equal(t, 1, f.kv.sets)
}

func TestPlannerServiceTimeSlotsFallbackIsNotCached(t *testing.T) {
	svc, f := newPlannerFixture(true)
	bad := mondayOnlyPrefs()
	bad.StudyBlocks = nil

	result, hit, err := svc.TimeSlots(context.Background(), "user-1", dto.TimeSlotsRequest{Tasks: []models.Task{}, UserPreferences: bad})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, result.Success)
	require.NotNil(t, result.Fallback)
	assert.Zero(t, f.kv.sets)
	assert.Equal(t, uint64(1), f.metrics.Snapshot().GenerationFallbacks)
}

func TestPlannerServiceOptimalScheduleWithRequestInputs(t *testing.T) {
	svc, f := newPlannerFixture(true)
	tasks := []models.Task{
		{ID: "t1", Title: "Reading", Priority: models.PriorityLow},
		{ID: "t2", Title: "Midterm", Priority: models.PriorityUrgent, Deadline: deadlineIn(48 * time.Hour)},
	}

	result, hit, err := svc.OptimalSchedule(context.Background(), "user-1", dto.OptimalScheduleRequest{Tasks: tasks, UserPreferences: mondayOnlyPrefs()})
	require.NoError(t, err)
	assert.False(t, hit)
	require.True(t, result.Success)
	monday := result.Schedule.Daily["2025-01-06"]
	require.Len(t, monday.Tasks, 2)
	assert.Equal(t, "t2", monday.Tasks[0].Task.ID)
	assert.Zero(t, f.tasks.calls)
}

func TestPlannerServiceWarmFillsCache(t *testing.T) {
	svc, f := newPlannerFixture(true)

	require.NoError(t, svc.Warm(context.Background(), "user-1"))
	assert.Equal(t, 2, f.kv.sets)

	_, hit, err := svc.OptimalSchedule(context.Background(), "user-1", dto.OptimalScheduleRequest{})
	require.NoError(t, err)
	assert.True(t, hit)
}

func newRawPrefsPlanner(f *plannerFixture) *PlannerService {
	cache := NewCacheService(f.kv, f.metrics, time.Minute, zap.NewNop(), true)
	return NewPlannerService(f.blocks, f.exceptions, f.classes, f.tasks, f.prefs, cache, f.metrics, fixedClock(), zap.NewNop(),
		PlannerConfig{Enabled: true, CacheTTL: time.Minute})
}

func TestPlannerServiceUsesDefaultsWhenNoPreferencesStored(t *testing.T) {
	_, f := newPlannerFixture(true)
	svc := newRawPrefsPlanner(f)

	slots, _, err := svc.TimeSlots(context.Background(), "new-user", dto.TimeSlotsRequest{})
	require.NoError(t, err)
	require.True(t, slots.Success)
	assert.Len(t, slots.TimeSlots, 5)

	plan, _, err := svc.OptimalSchedule(context.Background(), "new-user", dto.OptimalScheduleRequest{})
	require.NoError(t, err)
	assert.True(t, plan.Success)

	require.NoError(t, svc.Warm(context.Background(), "new-user"))
}

func TestPlannerServicePreferenceLoadFailureIsInternal(t *testing.T) {
	_, f := newPlannerFixture(true)
	f.prefs.err = errors.New("connection reset")
	svc := newRawPrefsPlanner(f)

	_, _, err := svc.TimeSlots(context.Background(), "user-1", dto.TimeSlotsRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
	assert.Error(t, svc.Warm(context.Background(), "user-1"))
}
