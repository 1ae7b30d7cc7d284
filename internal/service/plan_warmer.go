package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/berryseed/327project-group10/pkg/jobs"
)

// JobTypePlanWarm identifies plan cache rebuild jobs.
const JobTypePlanWarm = "planner.warm"

type warmTarget interface {
	Warm(ctx context.Context, userID string) error
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// PlanWarmer rebuilds a user's cached plans in the background after their constraints change.
type PlanWarmer struct {
	queue  jobEnqueuer
	logger *zap.Logger
}

// NewPlanWarmer constructs a warmer feeding queue.
func NewPlanWarmer(queue jobEnqueuer, logger *zap.Logger) *PlanWarmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanWarmer{queue: queue, logger: logger}
}

// Warm schedules a rebuild for userID. Pending rebuilds for the same user are coalesced.
func (w *PlanWarmer) Warm(userID string) {
	if w == nil || w.queue == nil {
		return
	}
	job := jobs.Job{ID: uuid.NewString(), Type: JobTypePlanWarm, Key: userID, Payload: userID}
	if err := w.queue.Enqueue(job); err != nil {
		w.logger.Warn("plan warm not scheduled", zap.String("user_id", userID), zap.Error(err))
	}
}

// PlanWarmHandler adapts target to a jobs.Handler.
func PlanWarmHandler(target warmTarget, logger *zap.Logger) jobs.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, job jobs.Job) error {
		userID, ok := job.Payload.(string)
		if !ok || userID == "" {
			return fmt.Errorf("plan warm job %s has no user id", job.ID)
		}
		if err := target.Warm(ctx, userID); err != nil {
			return fmt.Errorf("warm plans for %s: %w", userID, err)
		}
		logger.Debug("plans warmed", zap.String("user_id", userID), zap.String("job_id", job.ID))
		return nil
	}
}
