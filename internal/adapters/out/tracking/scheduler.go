package tracking

import (
	"sync"
	"time"

	"dronefleet/internal/core/domain/model/kernel"
)

// InMemoryReturnScheduler keeps the return-to-base due times in process
// memory. Losing the schedule on restart leaves drones in Returning until
// an operator intervenes; durable scheduling is a deliberate non-feature
// while the fleet fits one process.
type InMemoryReturnScheduler struct {
	mu  sync.Mutex
	due map[kernel.UUID]time.Time
}

// NewInMemoryReturnScheduler creates an empty scheduler.
func NewInMemoryReturnScheduler() *InMemoryReturnScheduler {
	return &InMemoryReturnScheduler{due: make(map[kernel.UUID]time.Time)}
}

// Schedule records that the drone should land at the given time. Scheduling
// a drone that is already pending moves its due time.
func (s *InMemoryReturnScheduler) Schedule(droneID kernel.UUID, due time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.due[droneID] = due
}

// PopDue removes and returns the drones whose due time has passed.
func (s *InMemoryReturnScheduler) PopDue(now time.Time) []kernel.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	var landed []kernel.UUID
	for droneID, due := range s.due {
		if due.After(now) {
			continue
		}
		landed = append(landed, droneID)
		delete(s.due, droneID)
	}
	return landed
}
