package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sofiakaramia/Data-Storm/internal/domain/ports"
	"github.com/sofiakaramia/Data-Storm/internal/pkg/logger"
)

type CronScheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	logger  logger.Logger
}

func NewCronScheduler(timeout time.Duration) ports.Scheduler {
	return &CronScheduler{
		cron:    cron.New(cron.WithSeconds()),
		timeout: timeout,
		logger:  logger.New("info", "development").WithField("component", "cron_scheduler"),
	}
}

func (s *CronScheduler) Schedule(ctx context.Context, interval time.Duration, task ports.Task) error {
	spec := intervalToSpec(interval)
	s.logger.Infof("Scheduling task with interval %v (spec: %s)", interval, spec)

	_, err := s.cron.AddFunc(spec, s.wrapTask(ctx, task))
	if err != nil {
		return fmt.Errorf("failed to add cron entry: %w", err)
	}

	if len(s.cron.Entries()) == 1 {
		s.cron.Start()
		s.logger.Info("Cron scheduler started")
	}

	return nil
}

func (s *CronScheduler) wrapTask(ctx context.Context, task ports.Task) func() {
	return func() {
		startTime := time.Now()

		taskCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		if err := task(taskCtx); err != nil {
			s.logger.Errorf("Scheduled task failed: %v", err)
			return
		}

		s.logger.Debugf("Scheduled task completed in %v", time.Since(startTime))
	}
}

func (s *CronScheduler) Stop() {
	s.logger.Info("Stopping cron scheduler")

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("Cron scheduler stopped")
}

// intervalToSpec translates an interval into an @every descriptor. A
// step in the seconds field would not work here: cron field steps are
// offsets within the field's range, so anything over a minute would
// fire every minute instead.
func intervalToSpec(interval time.Duration) string {
	if interval == 0 {
		interval = 5 * time.Minute
	}
	if interval < 10*time.Second {
		interval = 10 * time.Second
	}

	return fmt.Sprintf("@every %s", interval)
}
