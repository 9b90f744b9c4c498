package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	trackingFlushJob *TrackingFlushJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(flusher Flusher, flushInterval time.Duration, logger *slog.Logger) *JobManager {
	return &JobManager{
		trackingFlushJob: NewTrackingFlushJob(flusher, flushInterval, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.trackingFlushJob.Start(); err != nil {
		return fmt.Errorf("failed to start tracking flush job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.trackingFlushJob.Stop()
}
