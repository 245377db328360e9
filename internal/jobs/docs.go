// Package jobs provides scheduled background tasks for the dispatch engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SearchRefreshJob - Runs every five seconds to push overdue SEARCHING
// requests through radius escalation and, eventually, timeout.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(refreshHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Escalation is evaluated lazily on every read path, so the sweep is a
// staleness bound rather than the primary mechanism: a request nobody looks
// at still times out within a few seconds of its deadline.
//
// # Error Handling
//
// The sweep skips requests whose refresh loses an optimistic-concurrency
// race; the handler treats those as successes of the concurrent writer.
// Remaining errors are logged and retried on the next tick.
package jobs
