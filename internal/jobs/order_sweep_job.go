package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"workshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	DefaultSweepSchedule = "@every 1h"
	DefaultStartupDelay  = time.Minute
)

// SweepReport collects the results of one tick. Err joins the failures of
// the individual sweeps; a failed sweep never prevents the others.
type SweepReport struct {
	Feedback  commands.SweepResult
	Stuck     commands.SweepResult
	Reminders commands.SweepResult
	Err       error
}

// OrderSweepJob runs the feedback, stuck-accepted and stale-new sweeps on a
// cron schedule, the first time after a startup delay. Ticks never overlap:
// a tick that fires while the previous one still runs is skipped.
type OrderSweepJob struct {
	feedback  commands.SendFeedbackRequestsCommandHandler
	stuck     commands.ReportStuckOrdersCommandHandler
	reminders commands.RemindStaleOrdersCommandHandler

	schedule     string
	startupDelay time.Duration

	cron    *cron.Cron
	timerMu sync.Mutex
	timer   *time.Timer
	running sync.Mutex
	stopped bool // guarded by running
	logger  *slog.Logger
}

func NewOrderSweepJob(
	feedback commands.SendFeedbackRequestsCommandHandler,
	stuck commands.ReportStuckOrdersCommandHandler,
	reminders commands.RemindStaleOrdersCommandHandler,
	schedule string,
	startupDelay time.Duration,
	logger *slog.Logger,
) *OrderSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &OrderSweepJob{
		feedback:     feedback,
		stuck:        stuck,
		reminders:    reminders,
		schedule:     schedule,
		startupDelay: startupDelay,
		cron:         cron.New(),
		logger:       logger.With("component", "order_sweep_job"),
	}
}

// Start registers the schedule and arms the startup timer.
func (j *OrderSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", j.schedule, err)
	}
	j.cron.Start()

	j.timerMu.Lock()
	j.timer = time.AfterFunc(j.startupDelay, j.tick)
	j.timerMu.Unlock()

	j.logger.InfoContext(context.Background(), "Order sweep job started",
		"schedule", j.schedule,
		"startup_delay", j.startupDelay.String(),
	)
	return nil
}

// Stop disarms the timer and waits for a running tick to finish. A tick
// whose timer already fired but has not started yet becomes a no-op.
func (j *OrderSweepJob) Stop() {
	j.timerMu.Lock()
	if j.timer != nil {
		j.timer.Stop()
	}
	j.timerMu.Unlock()

	<-j.cron.Stop().Done()
	j.running.Lock()
	j.stopped = true
	j.running.Unlock()
	j.logger.InfoContext(context.Background(), "Order sweep job stopped")
}

func (j *OrderSweepJob) tick() {
	if !j.running.TryLock() {
		j.logger.WarnContext(context.Background(), "previous sweep still running, skipping tick")
		return
	}
	defer j.running.Unlock()
	if j.stopped {
		return
	}

	report := j.RunOnce(context.Background())
	if report.Err != nil {
		j.logger.ErrorContext(context.Background(), "Order sweep failed", "error", report.Err)
	}
}

// RunOnce performs one pass of all three sweeps in order.
func (j *OrderSweepJob) RunOnce(ctx context.Context) SweepReport {
	var report SweepReport
	var failures []error

	var err error
	report.Feedback, err = j.feedback.Handle(ctx, commands.NewSendFeedbackRequestsCommand())
	failures = j.record(ctx, report.Feedback, err, failures)

	report.Stuck, err = j.stuck.Handle(ctx, commands.NewReportStuckOrdersCommand())
	failures = j.record(ctx, report.Stuck, err, failures)

	report.Reminders, err = j.reminders.Handle(ctx, commands.NewRemindStaleOrdersCommand())
	failures = j.record(ctx, report.Reminders, err, failures)

	report.Err = errors.Join(failures...)
	return report
}

func (j *OrderSweepJob) record(ctx context.Context, result commands.SweepResult, err error, failures []error) []error {
	if err != nil {
		return append(failures, fmt.Errorf("%s sweep: %w", result.Sweep, err))
	}
	j.logger.InfoContext(ctx, "sweep finished",
		"sweep", result.Sweep,
		"candidates", result.Candidates,
		"sent", result.Sent,
		"failed", result.Failed,
	)
	return failures
}
