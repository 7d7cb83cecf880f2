package tracking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dronefleet/internal/adapters/out/tracking"
	"dronefleet/internal/core/domain/model/kernel"
)

func TestScheduler_PopDueReturnsOnlyElapsedDrones(t *testing.T) {
	scheduler := tracking.NewInMemoryReturnScheduler()
	now := time.Now()
	landedID := kernel.NewUUID()
	inFlightID := kernel.NewUUID()

	scheduler.Schedule(landedID, now.Add(-time.Second))
	scheduler.Schedule(inFlightID, now.Add(time.Minute))

	due := scheduler.PopDue(now)
	assert.Equal(t, []kernel.UUID{landedID}, due)
}

func TestScheduler_PopDueRemovesReturnedEntries(t *testing.T) {
	scheduler := tracking.NewInMemoryReturnScheduler()
	now := time.Now()
	droneID := kernel.NewUUID()

	scheduler.Schedule(droneID, now.Add(-time.Second))

	assert.Len(t, scheduler.PopDue(now), 1)
	assert.Empty(t, scheduler.PopDue(now))
}

func TestScheduler_ScheduleAgainMovesDueTime(t *testing.T) {
	scheduler := tracking.NewInMemoryReturnScheduler()
	now := time.Now()
	droneID := kernel.NewUUID()

	scheduler.Schedule(droneID, now.Add(-time.Second))
	scheduler.Schedule(droneID, now.Add(time.Minute))

	assert.Empty(t, scheduler.PopDue(now))
	assert.Equal(t, []kernel.UUID{droneID}, scheduler.PopDue(now.Add(2*time.Minute)))
}

func TestScheduler_DueExactlyNowIsReturned(t *testing.T) {
	scheduler := tracking.NewInMemoryReturnScheduler()
	now := time.Now()
	droneID := kernel.NewUUID()

	scheduler.Schedule(droneID, now)

	assert.Equal(t, []kernel.UUID{droneID}, scheduler.PopDue(now))
}
