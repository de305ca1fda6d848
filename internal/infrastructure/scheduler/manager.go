// Package scheduler runs the notification worker's periodic jobs on gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// BatchJob processes one batch and returns the number of items handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// BatchJobFunc adapts a function to BatchJob.
type BatchJobFunc func(ctx context.Context) (int, error)

func (f BatchJobFunc) Execute(ctx context.Context) (int, error) { return f(ctx) }

type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log.With("component", "scheduler"),
	}, nil
}

// RegisterNotificationJobs runs markExpired (when non-nil) and then the
// expiring-notification cycle every interval, starting immediately. A run that
// is still going when the next tick fires is rescheduled, never overlapped.
func (m *SchedulerManager) RegisterNotificationJobs(interval, timeout time.Duration, markExpiredJob, sendExpiringJob BatchJob) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			m.processNotificationTasks(ctx, markExpiredJob, sendExpiringJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("notification", "mark-expired", "send-expiring"),
		gocron.WithName("notification-cycle"),
	)
	if err != nil {
		return err
	}
	m.logger.Infow("registered notification jobs", "interval", interval, "mark_expired", markExpiredJob != nil)
	return nil
}

func (m *SchedulerManager) processNotificationTasks(ctx context.Context, markExpiredJob, sendExpiringJob BatchJob) {
	startTime := biztime.NowUTC()

	if markExpiredJob != nil {
		count, err := markExpiredJob.Execute(ctx)
		if err != nil {
			m.logger.Errorw("failed to mark expired customers", "error", err, "duration", time.Since(startTime))
		} else if count > 0 {
			m.logger.Infow("expired customers marked", "count", count)
		}
	}

	sent, err := sendExpiringJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("notification cycle failed", "error", err, "duration", time.Since(startTime))
		return
	}
	m.logger.Infow("notification cycle finished", "sent", sent, "duration", time.Since(startTime))
}

func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to finish.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	err := m.scheduler.Shutdown()
	m.started = false
	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
