// Package jobs runs the background work of the route service.
//
// # Available Jobs
//
//  1. OptimizationScheduler - debounced optimization pass after packages are added
//     (default delay 800 ms). Implements commands.OptimizationTrigger.
//  2. RetentionJob - cron sweep dropping delivered packages older than 12 hours
//     (default "@every 15m").
//
// # Usage
//
//	scheduler := jobs.NewOptimizationScheduler(optimizeHandler, cfg.OptimizeDebounce, logger)
//	addHandler := commands.NewAddPackageCommandHandler(store, scheduler, clock)
//
//	jobManager := jobs.NewJobManager(jobs.NewRetentionJob(pruneHandler, cfg.RetentionSchedule, logger), scheduler)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Optimization failures from the collaborator never reach the scheduler; the
// handler keeps the current order. Store failures and sweep failures are logged.
package jobs
