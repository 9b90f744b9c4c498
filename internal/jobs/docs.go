// Package jobs provides scheduled background tasks for the tracking service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. TrackingFlushJob - Periodically flushes the location update coalescer so
// buffered rider positions reach the store and the live channels.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(coalescer, flushInterval, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The flush job uses an "@every Ns" cron spec derived from the configured
// flush interval. A short interval keeps buffered samples fresh; the trade-off
// against write volume belongs to configuration, not code.
//
// # Error Handling
//
// Flush failures are handled inside the coalescer per sample: a sample that
// cannot be applied is logged and dropped, the job itself never fails.
package jobs
