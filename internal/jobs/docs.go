// Package jobs provides scheduled background tasks for the order board.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SnapshotRefreshJob - Runs at midnight to drop yesterday's converged state
// and rehydrate every registered view from a fresh "today" snapshot
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(logger, dashboardListener, stationListener)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed rehydration is logged and retried on the next tick; the stale view
// keeps serving until a snapshot lands.
package jobs
