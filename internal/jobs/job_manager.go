package jobs

import (
	"fmt"
	"log/slog"

	"dronefleet/internal/core/application/usecases/commands"
	"dronefleet/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	droneReturnJob *DroneReturnJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	returnToBaseHandler commands.ReturnToBaseCommandHandler,
	scheduler ports.ReturnScheduler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		droneReturnJob: NewDroneReturnJob(returnToBaseHandler, scheduler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.droneReturnJob.Start(); err != nil {
		return fmt.Errorf("failed to start drone return job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.droneReturnJob.Stop()
}
