// Package jobs provides scheduled background tasks for the fleet.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the drone coordination service.
//
// # Available Jobs
//
// 1. DroneReturnJob - Runs every second to land drones whose simulated
// flight home has elapsed, moving them Returning -> Idle.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(returnToBaseHandler, scheduler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The return job uses the cron expression "* * * * * *" which means it runs
// every second. The schedule itself holds the per-drone due times; the job
// only drains what is due, so a long transit delay costs nothing per tick.
//
// # Error Handling
//
// A drone that left the Returning state before its due time (re-reserved,
// grounded, or removed) is dropped from the schedule silently; all other
// failures are logged and the drone is not retried.
package jobs
