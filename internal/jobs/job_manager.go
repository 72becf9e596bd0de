package jobs

import (
	"fmt"
)

// JobManager starts and stops the background work of the service.
type JobManager struct {
	retentionJob *RetentionJob
	scheduler    *OptimizationScheduler
}

// NewJobManager takes an already built scheduler so the same instance can
// be handed to the add-package handlers as their trigger. scheduler may be
// nil when automatic optimization is off.
func NewJobManager(retentionJob *RetentionJob, scheduler *OptimizationScheduler) *JobManager {
	return &JobManager{
		retentionJob: retentionJob,
		scheduler:    scheduler,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.retentionJob.Start(); err != nil {
		return fmt.Errorf("failed to start retention job: %w", err)
	}
	return nil
}

// StopAll cancels pending optimizations, waits for in-flight work and stops
// the cron schedule.
func (jm *JobManager) StopAll() {
	if jm.scheduler != nil {
		jm.scheduler.Stop()
	}
	jm.retentionJob.Stop()
}
