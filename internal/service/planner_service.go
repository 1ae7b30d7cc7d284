package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
	"github.com/berryseed/327project-group10/pkg/clock"
	appErrors "github.com/berryseed/327project-group10/pkg/errors"
)

const (
	planKindTimeSlots = "slots"
	planKindSchedule  = "schedule"

	fallbackTimeSlots = "time_slots"
	fallbackSchedule  = "optimal_schedule"
)

type blockLister interface {
	List(ctx context.Context, userID string) ([]models.TimeBlock, error)
}

type exceptionLister interface {
	List(ctx context.Context, userID string, rng models.DateRange) ([]models.AvailabilityException, error)
}

type classLister interface {
	List(ctx context.Context, userID string) ([]models.ClassScheduleEntry, error)
}

type openTaskLister interface {
	ListOpen(ctx context.Context, userID string) ([]models.Task, error)
}

type preferenceReader interface {
	Get(ctx context.Context, userID string) (*models.UserPreferences, error)
}

type planCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// PlannerConfig toggles the scheduling endpoints.
type PlannerConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

// PlannerService loads a user's constraints and runs the planning engine over them.
type PlannerService struct {
	blocks     blockLister
	exceptions exceptionLister
	classes    classLister
	tasks      openTaskLister
	prefs      preferenceReader
	cache      planCache
	metrics    *MetricsService
	clock      clock.Clock
	logger     *zap.Logger
	cfg        PlannerConfig
}

// NewPlannerService wires the planner. cache and metrics may be nil.
func NewPlannerService(
	blocks blockLister,
	exceptions exceptionLister,
	classes classLister,
	tasks openTaskLister,
	prefs preferenceReader,
	cache planCache,
	metrics *MetricsService,
	clk clock.Clock,
	logger *zap.Logger,
	cfg PlannerConfig,
) *PlannerService {
	if clk == nil {
		clk = clock.NewReal(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{
		blocks:     blocks,
		exceptions: exceptions,
		classes:    classes,
		tasks:      tasks,
		prefs:      prefs,
		cache:      cache,
		metrics:    metrics,
		clock:      clk,
		logger:     logger,
		cfg:        cfg,
	}
}

// Validate checks a candidate schedule against the user's constraints.
func (s *PlannerService) Validate(ctx context.Context, userID string, req dto.ValidateScheduleRequest) (dto.ValidationResult, error) {
	if !s.cfg.Enabled {
		return dto.ValidationResult{}, appErrors.Clone(appErrors.ErrFeatureDisabled, "scheduler is disabled")
	}
	engine, err := s.engine(ctx, userID)
	if err != nil {
		return dto.ValidationResult{}, err
	}
	result := engine.Validator.Validate(req.CandidateSchedule)
	s.metrics.RecordValidation(result)
	return result, nil
}

// TimeSlots generates a week of study slots. The boolean reports a plan cache hit.
func (s *PlannerService) TimeSlots(ctx context.Context, userID string, req dto.TimeSlotsRequest) (dto.TimeSlotResult, bool, error) {
	if !s.cfg.Enabled {
		return dto.TimeSlotResult{}, false, appErrors.Clone(appErrors.ErrFeatureDisabled, "scheduler is disabled")
	}
	tasks, prefs, err := s.inputs(ctx, userID, req.Tasks, req.UserPreferences)
	if err != nil {
		return dto.TimeSlotResult{}, false, err
	}

	key := s.cacheKey(userID, planKindTimeSlots, tasks, prefs, req.AvailableTime)
	var cached dto.TimeSlotResult
	if s.lookup(ctx, key, &cached) {
		return cached, true, nil
	}

	engine, err := s.engine(ctx, userID)
	if err != nil {
		return dto.TimeSlotResult{}, false, err
	}
	result := engine.Generator.GenerateTimeSlots(tasks, prefs, req.AvailableTime)
	if !result.Success {
		s.metrics.RecordFallback(fallbackTimeSlots)
		s.logger.Warn("time slot generation fell back", zap.String("user_id", userID), zap.String("error", result.Error))
		return result, false, nil
	}
	s.metrics.RecordSlots(result.TimeSlots)
	s.store(ctx, key, result)
	return result, false, nil
}

// OptimalSchedule assigns tasks to the generated slots. The boolean reports a plan cache hit.
func (s *PlannerService) OptimalSchedule(ctx context.Context, userID string, req dto.OptimalScheduleRequest) (dto.OptimalScheduleResult, bool, error) {
	if !s.cfg.Enabled {
		return dto.OptimalScheduleResult{}, false, appErrors.Clone(appErrors.ErrFeatureDisabled, "scheduler is disabled")
	}
	tasks, prefs, err := s.inputs(ctx, userID, req.Tasks, req.UserPreferences)
	if err != nil {
		return dto.OptimalScheduleResult{}, false, err
	}

	key := s.cacheKey(userID, planKindSchedule, tasks, prefs, req.Constraints)
	var cached dto.OptimalScheduleResult
	if s.lookup(ctx, key, &cached) {
		return cached, true, nil
	}

	engine, err := s.engine(ctx, userID)
	if err != nil {
		return dto.OptimalScheduleResult{}, false, err
	}
	result := engine.Assigner.CreateOptimalSchedule(tasks, prefs, req.Constraints)
	if !result.Success {
		s.metrics.RecordFallback(fallbackSchedule)
		s.logger.Warn("optimal schedule fell back", zap.String("user_id", userID), zap.String("error", result.Error))
		return result, false, nil
	}
	s.store(ctx, key, result)
	return result, false, nil
}

// Warm rebuilds the cached default plans for userID.
func (s *PlannerService) Warm(ctx context.Context, userID string) error {
	if !s.cfg.Enabled || s.cache == nil {
		return nil
	}
	if _, _, err := s.TimeSlots(ctx, userID, dto.TimeSlotsRequest{}); err != nil {
		return err
	}
	_, _, err := s.OptimalSchedule(ctx, userID, dto.OptimalScheduleRequest{})
	return err
}

// Snapshot loads blocks, exceptions and classes concurrently.
func (s *PlannerService) Snapshot(ctx context.Context, userID string) (ConstraintSnapshot, error) {
	var (
		wg       sync.WaitGroup
		snapshot ConstraintSnapshot

		blocksErr, exceptionsErr, clsErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		snapshot.Blocks, blocksErr = s.blocks.List(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		snapshot.Exceptions, exceptionsErr = s.exceptions.List(ctx, userID, models.DateRange{})
	}()
	go func() {
		defer wg.Done()
		snapshot.Classes, clsErr = s.classes.List(ctx, userID)
	}()
	wg.Wait()

	switch {
	case blocksErr != nil:
		return ConstraintSnapshot{}, appErrors.Internal(blocksErr, "failed to load time blocks")
	case exceptionsErr != nil:
		return ConstraintSnapshot{}, appErrors.Internal(exceptionsErr, "failed to load exceptions")
	case clsErr != nil:
		return ConstraintSnapshot{}, appErrors.Internal(clsErr, "failed to load class schedule")
	}
	if err := ctx.Err(); err != nil {
		return ConstraintSnapshot{}, appErrors.Internal(err, "constraint load cancelled")
	}
	return snapshot, nil
}

func (s *PlannerService) engine(ctx context.Context, userID string) (*PlanningEngine, error) {
	snapshot, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewPlanningEngine(snapshot, s.clock), nil
}

// inputs fills in whatever the request omitted from storage.
func (s *PlannerService) inputs(ctx context.Context, userID string, tasks []models.Task, prefs *models.UserPreferences) ([]models.Task, *models.UserPreferences, error) {
	if tasks == nil && s.tasks != nil {
		loaded, err := s.tasks.ListOpen(ctx, userID)
		if err != nil {
			return nil, nil, appErrors.Internal(err, "failed to load tasks")
		}
		tasks = loaded
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	if prefs == nil && s.prefs != nil {
		loaded, err := s.prefs.Get(ctx, userID)
		var appErr *appErrors.Error
		switch {
		case errors.Is(err, sql.ErrNoRows):
			defaults := models.DefaultPreferences()
			defaults.UserID = userID
			loaded = &defaults
		case errors.As(err, &appErr):
			return nil, nil, appErr
		case err != nil:
			return nil, nil, appErrors.Internal(err, "failed to load preferences")
		}
		prefs = loaded
	}
	return tasks, prefs, nil
}

func (s *PlannerService) cacheKey(userID, kind string, tasks []models.Task, prefs *models.UserPreferences, extra interface{}) string {
	if s.cache == nil {
		return ""
	}
	key, err := PlanKey(userID, kind, struct {
		Today string                  `json:"today"`
		Tasks []models.Task           `json:"tasks"`
		Prefs *models.UserPreferences `json:"prefs"`
		Extra interface{}             `json:"extra"`
	}{models.NewDate(s.clock.Now()).String(), tasks, prefs, extra})
	if err != nil {
		s.logger.Warn("plan cache key failed", zap.String("user_id", userID), zap.Error(err))
		return ""
	}
	return key
}

func (s *PlannerService) lookup(ctx context.Context, key string, dest interface{}) bool {
	if key == "" {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	return err == nil && hit
}

func (s *PlannerService) store(ctx context.Context, key string, value interface{}) {
	if key == "" {
		return
	}
	_ = s.cache.Set(ctx, key, value, s.cfg.CacheTTL)
}
