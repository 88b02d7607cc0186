// Package scheduler runs periodic maintenance jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/goroutine"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// BatchJobFunc adapts a function to BatchJob.
type BatchJobFunc func(ctx context.Context) (int, error)

func (f BatchJobFunc) Execute(ctx context.Context) (int, error) {
	return f(ctx)
}

const sessionPurgeTimeout = 5 * time.Minute

// SchedulerManager owns a single gocron scheduler shared by all jobs.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	// onPurged, when set, receives the count of every successful purge run.
	onPurged func(count int)

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// OnSessionsPurged registers a callback invoked after each purge run.
func (m *SchedulerManager) OnSessionsPurged(fn func(count int)) {
	m.onPurged = fn
}

// RegisterSessionPurgeJob removes expired sessions every interval, starting
// immediately. Overlapping runs are rescheduled rather than stacked.
func (m *SchedulerManager) RegisterSessionPurgeJob(purgeJob BatchJob, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			defer goroutine.Recover(m.logger, "session-purge")
			ctx, cancel := context.WithTimeout(context.Background(), sessionPurgeTimeout)
			defer cancel()
			m.purgeExpiredSessions(ctx, purgeJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("session", "purge"),
		gocron.WithName("session-purge"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered session purge job", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) purgeExpiredSessions(ctx context.Context, purgeJob BatchJob) {
	startTime := biztime.NowUTC()

	count, err := purgeJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("failed to purge expired sessions",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if m.onPurged != nil {
		m.onPurged(count)
	}
	if count > 0 {
		m.logger.Infow("expired sessions purged",
			"count", count,
			"duration", time.Since(startTime),
		)
	}
}

// RunOnce executes purgeJob synchronously, as used by the worker's --once mode.
func (m *SchedulerManager) RunOnce(ctx context.Context, purgeJob BatchJob) {
	m.purgeExpiredSessions(ctx, purgeJob)
}

// Start starts the scheduler and all registered jobs.
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

// Stop gracefully stops the scheduler.
// It waits for all running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
