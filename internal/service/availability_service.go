package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
	appErrors "github.com/berryseed/327project-group10/pkg/errors"
)

type timeBlockRepository interface {
	List(ctx context.Context, userID string) ([]models.TimeBlock, error)
	FindByID(ctx context.Context, userID, id string) (*models.TimeBlock, error)
	Create(ctx context.Context, exec sqlx.ExtContext, block *models.TimeBlock) error
	Update(ctx context.Context, userID, id string, upd models.TimeBlockUpdate) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByClass(ctx context.Context, exec sqlx.ExtContext, classID string) error
}

type exceptionRepository interface {
	List(ctx context.Context, userID string, rng models.DateRange) ([]models.AvailabilityException, error)
	Create(ctx context.Context, exc *models.AvailabilityException) error
	Delete(ctx context.Context, userID, id string) error
}

type classScheduleRepository interface {
	List(ctx context.Context, userID string) ([]models.ClassScheduleEntry, error)
	FindByID(ctx context.Context, userID, id string) (*models.ClassScheduleEntry, error)
	Create(ctx context.Context, exec sqlx.ExtContext, entry *models.ClassScheduleEntry) error
	Update(ctx context.Context, exec sqlx.ExtContext, entry *models.ClassScheduleEntry) error
	Delete(ctx context.Context, exec sqlx.ExtContext, userID, id string) error
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type planInvalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
}

type planWarmer interface {
	Warm(userID string)
}

// AvailabilityService owns every write to time blocks, exceptions and the class schedule.
// It is the only place mirrored class blocks are created or removed.
type AvailabilityService struct {
	blocks     timeBlockRepository
	exceptions exceptionRepository
	classes    classScheduleRepository
	tx         txProvider
	cache      planInvalidator
	warmer     planWarmer
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewAvailabilityService wires availability dependencies. cache and warmer may be nil.
func NewAvailabilityService(
	blocks timeBlockRepository,
	exceptions exceptionRepository,
	classes classScheduleRepository,
	tx txProvider,
	cache planInvalidator,
	warmer planWarmer,
	validate *validator.Validate,
	logger *zap.Logger,
) *AvailabilityService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		blocks:     blocks,
		exceptions: exceptions,
		classes:    classes,
		tx:         tx,
		cache:      cache,
		warmer:     warmer,
		validator:  validate,
		logger:     logger,
	}
}

// --- Time blocks ---

// ListBlocks returns every block of the user, class mirrors included.
func (s *AvailabilityService) ListBlocks(ctx context.Context, userID string) ([]models.TimeBlock, error) {
	blocks, err := s.blocks.List(ctx, userID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load time blocks")
	}
	if blocks == nil {
		blocks = []models.TimeBlock{}
	}
	return blocks, nil
}

// CreateBlock stores a user-owned block.
func (s *AvailabilityService) CreateBlock(ctx context.Context, userID string, req dto.CreateTimeBlockRequest) (*models.TimeBlock, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time block payload")
	}
	if err := checkWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if err := checkDateBounds(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	block := &models.TimeBlock{
		UserID:      userID,
		DayOfWeek:   *req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		BlockType:   req.BlockType,
		IsRecurring: true,
		Source:      models.SourceUser,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.IsRecurring != nil {
		block.IsRecurring = *req.IsRecurring
	}
	if err := s.blocks.Create(ctx, nil, block); err != nil {
		return nil, appErrors.Internal(err, "failed to create time block")
	}
	s.changed(ctx, userID)
	return block, nil
}

// UpdateBlock applies a partial update. Class-derived blocks are managed through the class schedule.
func (s *AvailabilityService) UpdateBlock(ctx context.Context, userID, id string, req dto.UpdateTimeBlockRequest) (*models.TimeBlock, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time block payload")
	}
	upd := req.ToUpdate()
	if upd.Empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}

	current, err := s.findBlock(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if current.Source == models.SourceClass {
		return nil, appErrors.Clone(appErrors.ErrConflict, "class blocks are managed through the class schedule")
	}

	merged := *current
	applyBlockUpdate(&merged, upd)
	if err := checkWindow(merged.StartTime, merged.EndTime); err != nil {
		return nil, err
	}
	if err := checkDateBounds(merged.StartDate, merged.EndDate); err != nil {
		return nil, err
	}

	if err := s.blocks.Update(ctx, userID, id, upd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "time block not found")
		}
		return nil, appErrors.Internal(err, "failed to update time block")
	}
	s.changed(ctx, userID)
	return &merged, nil
}

// DeleteBlock removes a user-owned block.
func (s *AvailabilityService) DeleteBlock(ctx context.Context, userID, id string) error {
	current, err := s.findBlock(ctx, userID, id)
	if err != nil {
		return err
	}
	if current.Source == models.SourceClass {
		return appErrors.Clone(appErrors.ErrConflict, "class blocks are managed through the class schedule")
	}
	if err := s.blocks.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "time block not found")
		}
		return appErrors.Internal(err, "failed to delete time block")
	}
	s.changed(ctx, userID)
	return nil
}

func (s *AvailabilityService) findBlock(ctx context.Context, userID, id string) (*models.TimeBlock, error) {
	block, err := s.blocks.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "time block not found")
		}
		return nil, appErrors.Internal(err, "failed to load time block")
	}
	return block, nil
}

func applyBlockUpdate(b *models.TimeBlock, upd models.TimeBlockUpdate) {
	if upd.DayOfWeek != nil {
		b.DayOfWeek = *upd.DayOfWeek
	}
	if upd.StartTime != nil {
		b.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		b.EndTime = *upd.EndTime
	}
	if upd.BlockType != nil {
		b.BlockType = *upd.BlockType
	}
	if upd.IsRecurring != nil {
		b.IsRecurring = *upd.IsRecurring
	}
	if upd.StartDate != nil {
		b.StartDate = upd.StartDate
	}
	if upd.EndDate != nil {
		b.EndDate = upd.EndDate
	}
	if upd.ClearStartDate {
		b.StartDate = nil
	}
	if upd.ClearEndDate {
		b.EndDate = nil
	}
}

// --- Exceptions ---

// ListExceptions returns exceptions within the inclusive range. Empty bounds are open.
func (s *AvailabilityService) ListExceptions(ctx context.Context, userID string, query dto.ExceptionQuery) ([]models.AvailabilityException, error) {
	var rng models.DateRange
	if query.Start != "" {
		d, err := models.ParseDate(query.Start)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start date")
		}
		rng.Start = &d
	}
	if query.End != "" {
		d, err := models.ParseDate(query.End)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end date")
		}
		rng.End = &d
	}
	if err := checkDateBounds(rng.Start, rng.End); err != nil {
		return nil, err
	}

	items, err := s.exceptions.List(ctx, userID, rng)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load exceptions")
	}
	if items == nil {
		items = []models.AvailabilityException{}
	}
	return items, nil
}

// CreateException stores a one-off override.
func (s *AvailabilityService) CreateException(ctx context.Context, userID string, req dto.CreateExceptionRequest) (*models.AvailabilityException, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exception payload")
	}
	if err := checkWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	exc := &models.AvailabilityException{
		UserID:    userID,
		Date:      *req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		BlockType: req.BlockType,
		Reason:    req.Reason,
	}
	if err := s.exceptions.Create(ctx, exc); err != nil {
		return nil, appErrors.Internal(err, "failed to create exception")
	}
	s.changed(ctx, userID)
	return exc, nil
}

// DeleteException removes an exception.
func (s *AvailabilityService) DeleteException(ctx context.Context, userID, id string) error {
	if err := s.exceptions.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "exception not found")
		}
		return appErrors.Internal(err, "failed to delete exception")
	}
	s.changed(ctx, userID)
	return nil
}

// --- Class schedule ---

// ListClasses returns the user's class schedule.
func (s *AvailabilityService) ListClasses(ctx context.Context, userID string) ([]models.ClassScheduleEntry, error) {
	entries, err := s.classes.List(ctx, userID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load class schedule")
	}
	if entries == nil {
		entries = []models.ClassScheduleEntry{}
	}
	return entries, nil
}

// CreateClass stores the entry and its mirrored unavailable block in one transaction.
func (s *AvailabilityService) CreateClass(ctx context.Context, userID string, req dto.ClassScheduleRequest) (*models.ClassScheduleEntry, error) {
	entry, err := s.classFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	err = s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.classes.Create(ctx, tx, entry); err != nil {
			return appErrors.Internal(err, "failed to create class entry")
		}
		return s.mirrorClass(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx, userID)
	return entry, nil
}

// UpdateClass replaces the entry and regenerates its mirrored blocks.
func (s *AvailabilityService) UpdateClass(ctx context.Context, userID, id string, req dto.ClassScheduleRequest) (*models.ClassScheduleEntry, error) {
	entry, err := s.classFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	existing, err := s.classes.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class entry not found")
		}
		return nil, appErrors.Internal(err, "failed to load class entry")
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt

	err = s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.classes.Update(ctx, tx, entry); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "class entry not found")
			}
			return appErrors.Internal(err, "failed to update class entry")
		}
		if err := s.blocks.DeleteByClass(ctx, tx, entry.ID); err != nil {
			return appErrors.Internal(err, "failed to remove class blocks")
		}
		return s.mirrorClass(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx, userID)
	return entry, nil
}

// DeleteClass removes the entry together with its mirrored blocks.
func (s *AvailabilityService) DeleteClass(ctx context.Context, userID, id string) error {
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.blocks.DeleteByClass(ctx, tx, id); err != nil {
			return appErrors.Internal(err, "failed to remove class blocks")
		}
		if err := s.classes.Delete(ctx, tx, userID, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "class entry not found")
			}
			return appErrors.Internal(err, "failed to delete class entry")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.changed(ctx, userID)
	return nil
}

func (s *AvailabilityService) classFromRequest(userID string, req dto.ClassScheduleRequest) (*models.ClassScheduleEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class schedule payload")
	}
	if err := checkWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if err := checkDateBounds(req.RecurringStart, req.RecurringEnd); err != nil {
		return nil, err
	}
	return &models.ClassScheduleEntry{
		UserID:         userID,
		CourseCode:     req.CourseCode,
		DayOfWeek:      *req.DayOfWeek,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Location:       req.Location,
		RecurringStart: req.RecurringStart,
		RecurringEnd:   req.RecurringEnd,
	}, nil
}

func (s *AvailabilityService) mirrorClass(ctx context.Context, tx *sqlx.Tx, entry *models.ClassScheduleEntry) error {
	for _, block := range models.DeriveBlocksFromClass(*entry) {
		b := block
		if err := s.blocks.Create(ctx, tx, &b); err != nil {
			return appErrors.Internal(err, "failed to create class block")
		}
	}
	return nil
}

func (s *AvailabilityService) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	if s.tx == nil {
		return appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Internal(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return appErrors.Internal(err, "failed to commit transaction")
	}
	return nil
}

// changed drops cached plans and schedules a rebuild. Cache failures never fail the write.
func (s *AvailabilityService) changed(ctx context.Context, userID string) {
	if s.cache != nil {
		if err := s.cache.InvalidateUser(ctx, userID); err != nil {
			s.logger.Warn("plan cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	if s.warmer != nil {
		s.warmer.Warm(userID)
	}
}

func checkWindow(start, end string) error {
	s, err := models.ParseClock(start)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start_time")
	}
	e, err := models.ParseClock(end)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end_time")
	}
	if s >= e {
		return appErrors.Clone(appErrors.ErrValidation, "start_time must be before end_time")
	}
	return nil
}

func checkDateBounds(start, end *models.Date) error {
	if start != nil && end != nil && end.Before(start.Time) {
		return appErrors.Clone(appErrors.ErrValidation, "end date must not precede start date")
	}
	return nil
}
