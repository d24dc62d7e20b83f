package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderSweepJob *OrderSweepJob
}

func NewJobManager(orderSweepJob *OrderSweepJob) *JobManager {
	return &JobManager{orderSweepJob: orderSweepJob}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start order sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks.
func (jm *JobManager) StopAll() {
	jm.orderSweepJob.Stop()
}
