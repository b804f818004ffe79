package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"scrapemyuni.backend/internal/domain/entities"
	"scrapemyuni.backend/pkg/logger"
)

type admissionRefresher interface {
	RefreshAdmissionStatus(ctx context.Context, now time.Time) (*entities.AdmissionRefreshResult, error)
}

// AdmissionStatusJob recomputes universities' admissionOpen flag from their
// application deadlines on a cron schedule (seconds field included).
type AdmissionStatusJob struct {
	svc      admissionRefresher
	schedule string
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewAdmissionStatusJob(svc admissionRefresher, schedule string) *AdmissionStatusJob {
	return &AdmissionStatusJob{
		svc:      svc,
		schedule: schedule,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Start runs the schedule until ctx is cancelled or Stop is called. It
// returns early only when the schedule cannot be parsed.
func (j *AdmissionStatusJob) Start(ctx context.Context) error {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(j.schedule, func() { j.RunOnce(ctx) }); err != nil {
		logger.Error(ctx, "Invalid admission status schedule", zap.String("schedule", j.schedule), zap.Error(err))
		return fmt.Errorf("invalid admission status schedule %q: %w", j.schedule, err)
	}

	logger.Info(ctx, "Starting admission status job", zap.String("schedule", j.schedule))
	c.Start()

	select {
	case <-ctx.Done():
		logger.Info(ctx, "Admission status job stopped (context cancelled)")
	case <-j.stop:
		logger.Info(ctx, "Admission status job stopped")
	}

	// wait for a run in flight
	<-c.Stop().Done()
	return nil
}

func (j *AdmissionStatusJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

// RunOnce performs a single refresh pass and logs the outcome
func (j *AdmissionStatusJob) RunOnce(ctx context.Context) *entities.AdmissionRefreshResult {
	result, err := j.svc.RefreshAdmissionStatus(ctx, j.now())
	if err != nil {
		logger.Error(ctx, "Admission status refresh failed", zap.Error(err))
		return nil
	}

	logger.Info(ctx, "Admission status refreshed",
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.Errors),
	)
	return result
}
