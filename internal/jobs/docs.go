// Package jobs provides scheduled background tasks for the freight service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. WeightAuditJob - lists products shipped during the lookback window that
// have no curated weight, resolves them and logs the source summary, the
// suspiciously light results and the fallback guesses for manual review.
//
// # Usage
//
//	audit, err := jobs.NewWeightAuditJob(handler, jobs.WeightAuditSettings{
//		Schedule: "0 0 3 * * *",
//		Lookback: 30 * 24 * time.Hour,
//		Limit:    500,
//	}, logger)
//	if err != nil {
//		return err
//	}
//
//	manager := jobs.NewJobManager()
//	manager.Register("weight audit", audit)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions with a leading seconds field.
//
// # Error Handling
//
// A failed run is logged and the next tick runs normally. Failed job starts
// stop any already running jobs.
package jobs
