package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"dronefleet/internal/core/application/usecases/commands"
	"dronefleet/internal/core/ports"
	"dronefleet/internal/pkg/errs"
)

// DroneReturnJob lands drones whose simulated flight home has elapsed.
// Runs every second, drains the return schedule, and performs the
// Returning -> Idle transition for each due drone.
type DroneReturnJob struct {
	handler   commands.ReturnToBaseCommandHandler
	scheduler ports.ReturnScheduler
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewDroneReturnJob creates a new job for landing returning drones.
func NewDroneReturnJob(
	handler commands.ReturnToBaseCommandHandler,
	scheduler ports.ReturnScheduler,
	logger *slog.Logger,
) *DroneReturnJob {
	return &DroneReturnJob{
		handler:   handler,
		scheduler: scheduler,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "drone_return_job"),
	}
}

// Start begins the drone return job to run every second.
func (j *DroneReturnJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.landDueDrones(context.Background(), time.Now())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Drone return job started (running every second)")
	return nil
}

// Stop stops the drone return job.
func (j *DroneReturnJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Drone return job stopped")
}

// landDueDrones performs one tick of the schedule.
// A drone that left the Returning state in the meantime (re-reserved,
// grounded, or deleted) just drops off the schedule; its landing is no
// longer this job's business.
func (j *DroneReturnJob) landDueDrones(ctx context.Context, now time.Time) {
	for _, droneID := range j.scheduler.PopDue(now) {
		cmd, err := commands.NewReturnToBaseCommand(droneID)
		if err != nil {
			j.logger.ErrorContext(ctx, "Invalid drone in return schedule", "droneId", droneID.String(), "error", err)
			continue
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			if errors.Is(err, errs.ErrStateConflict) || errors.Is(err, commands.ErrNoDroneFound) {
				j.logger.DebugContext(ctx, "Drone no longer returning, dropping landing", "droneId", droneID.String())
				continue
			}
			j.logger.ErrorContext(ctx, "Drone landing failed", "droneId", droneID.String(), "error", err)
		}
	}
}
