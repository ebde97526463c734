package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Rehydrater is a view that can drop its converged state and reload from a
// fresh snapshot. Both listener kinds implement it.
type Rehydrater interface {
	Rehydrate(ctx context.Context) error
}

// SnapshotRefreshJob rolls the board over to the new business day. The "today"
// snapshot endpoint changes meaning at midnight, so every view drops its state
// and rehydrates from scratch.
type SnapshotRefreshJob struct {
	views  []Rehydrater
	cron   *cron.Cron
	logger *slog.Logger
}

// NewSnapshotRefreshJob creates a job rehydrating the given views at midnight.
func NewSnapshotRefreshJob(logger *slog.Logger, views ...Rehydrater) *SnapshotRefreshJob {
	return &SnapshotRefreshJob{
		views:  views,
		cron:   cron.New(),
		logger: logger.With("component", "snapshot_refresh_job"),
	}
}

// Start schedules the midnight rollover.
func (j *SnapshotRefreshJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * *", j.Run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job started (running at midnight)")
	return nil
}

// Run rehydrates every view once. Exposed so an operator endpoint or a
// reconnect can force a rollover outside the schedule.
func (j *SnapshotRefreshJob) Run() {
	ctx := context.Background()
	for _, view := range j.views {
		if err := view.Rehydrate(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Snapshot rehydration failed", "error", err)
		}
	}
}

// Stop stops the job.
func (j *SnapshotRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job stopped")
}
