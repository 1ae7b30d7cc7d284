package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
	appErrors "github.com/berryseed/327project-group10/pkg/errors"
)

type userPreferenceRepository interface {
	Get(ctx context.Context, userID string) (*models.UserPreferences, error)
	Upsert(ctx context.Context, prefs *models.UserPreferences) error
}

// PreferenceService reads and replaces scheduling preferences.
type PreferenceService struct {
	repo      userPreferenceRepository
	cache     planInvalidator
	warmer    planWarmer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPreferenceService constructs a PreferenceService.
func NewPreferenceService(repo userPreferenceRepository, cache planInvalidator, warmer planWarmer, validate *validator.Validate, logger *zap.Logger) *PreferenceService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{repo: repo, cache: cache, warmer: warmer, validator: validate, logger: logger}
}

// Get returns the stored preferences, or the defaults when none were saved.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*models.UserPreferences, error) {
	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			defaults := models.DefaultPreferences()
			defaults.UserID = userID
			return &defaults, nil
		}
		return nil, appErrors.Internal(err, "failed to load preferences")
	}
	return prefs, nil
}

// Update validates and stores the preferences.
func (s *PreferenceService) Update(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preferences payload")
	}

	prefs := &models.UserPreferences{
		UserID:           userID,
		WorkHours:        req.WorkHours,
		StudyBlocks:      req.StudyBlocks,
		BreakDuration:    req.BreakDuration,
		PreferredDays:    normaliseDays(req.PreferredDays),
		PomodoroDuration: req.PomodoroDuration,
	}
	if prefs.PomodoroDuration == 0 {
		prefs.PomodoroDuration = models.DefaultPreferences().PomodoroDuration
	}
	if err := prefs.Check(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidPreferences.Code, appErrors.ErrInvalidPreferences.Status, appErrors.ErrInvalidPreferences.Message)
	}

	if err := s.repo.Upsert(ctx, prefs); err != nil {
		return nil, appErrors.Internal(err, "failed to save preferences")
	}

	if s.cache != nil {
		if err := s.cache.InvalidateUser(ctx, userID); err != nil {
			s.logger.Warn("plan cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	if s.warmer != nil {
		s.warmer.Warm(userID)
	}
	return prefs, nil
}

func normaliseDays(days []string) []string {
	out := make([]string, 0, len(days))
	seen := make(map[string]bool, len(days))
	for _, day := range days {
		wd, ok := models.ParseWeekday(day)
		if !ok {
			out = append(out, day)
			continue
		}
		name := models.WeekdayName(wd)
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
