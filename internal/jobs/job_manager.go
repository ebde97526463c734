package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	snapshotRefreshJob *SnapshotRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(logger *slog.Logger, views ...Rehydrater) *JobManager {
	return &JobManager{
		snapshotRefreshJob: NewSnapshotRefreshJob(logger, views...),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.snapshotRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start snapshot refresh job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.snapshotRefreshJob.Stop()
}
