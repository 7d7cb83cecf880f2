// Package tracking provides the in-process live-tracking hub. Telemetry and
// order progress fan out to per-entity subscriber channels; sends never
// block, so a slow subscriber loses messages instead of applying
// backpressure to the telemetry path.
package tracking

import (
	"sync"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/ports"
)

const (
	// DefaultReplayBuffer is how many recent messages a new subscriber
	// receives on attach.
	DefaultReplayBuffer = 50
	// DefaultSubscriberBuffer is the channel capacity per subscriber.
	DefaultSubscriberBuffer = 16
)

// Hub implements the tracking publisher port. Drone positions fan out per
// drone, order status changes per order.
type Hub struct {
	positions *topic[ports.DronePositionUpdate]
	statuses  *topic[ports.OrderStatusUpdate]
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		positions: newTopic[ports.DronePositionUpdate](),
		statuses:  newTopic[ports.OrderStatusUpdate](),
	}
}

// PublishDronePosition broadcasts a position update to the drone's subscribers.
func (h *Hub) PublishDronePosition(update ports.DronePositionUpdate) {
	h.positions.publish(update.DroneID.String(), update)
}

// PublishOrderStatus broadcasts a progress update to the order's subscribers.
func (h *Hub) PublishOrderStatus(update ports.OrderStatusUpdate) {
	h.statuses.publish(update.OrderID.String(), update)
}

// SubscribeDrone attaches to a drone's position stream. The returned slice
// replays the most recent updates; the subscription must be closed when the
// listener goes away.
func (h *Hub) SubscribeDrone(droneID kernel.UUID) (*Subscription[ports.DronePositionUpdate], []ports.DronePositionUpdate) {
	return h.positions.subscribe(droneID.String())
}

// SubscribeOrder attaches to an order's progress stream.
func (h *Hub) SubscribeOrder(orderID kernel.UUID) (*Subscription[ports.OrderStatusUpdate], []ports.OrderStatusUpdate) {
	return h.statuses.subscribe(orderID.String())
}

// topic is one keyed fan-out space within the hub.
type topic[T any] struct {
	mu      sync.RWMutex
	streams map[string]*stream[T]
}

type stream[T any] struct {
	mu     sync.Mutex
	buffer []T
	subs   map[uint64]chan T
	nextID uint64
}

func newTopic[T any]() *topic[T] {
	return &topic[T]{streams: make(map[string]*stream[T])}
}

func (t *topic[T]) publish(key string, message T) {
	t.mu.RLock()
	current := t.streams[key]
	t.mu.RUnlock()
	if current == nil {
		return
	}

	current.mu.Lock()
	current.buffer = append(current.buffer, message)
	if len(current.buffer) > DefaultReplayBuffer {
		current.buffer = current.buffer[len(current.buffer)-DefaultReplayBuffer:]
	}
	subs := make([]chan T, 0, len(current.subs))
	for _, ch := range current.subs {
		subs = append(subs, ch)
	}
	current.mu.Unlock()

	// Non-blocking send; a full subscriber channel drops the message.
	for _, ch := range subs {
		select {
		case ch <- message:
		default:
		}
	}
}

func (t *topic[T]) subscribe(key string) (*Subscription[T], []T) {
	current := t.ensureStream(key)

	current.mu.Lock()
	id := current.nextID
	current.nextID++
	ch := make(chan T, DefaultSubscriberBuffer)
	current.subs[id] = ch
	replay := append([]T(nil), current.buffer...)
	current.mu.Unlock()

	return &Subscription[T]{
		topic: t,
		key:   key,
		id:    id,
		ch:    ch,
	}, replay
}

func (t *topic[T]) ensureStream(key string) *stream[T] {
	t.mu.RLock()
	current := t.streams[key]
	t.mu.RUnlock()
	if current != nil {
		return current
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	current = t.streams[key]
	if current == nil {
		current = &stream[T]{subs: make(map[uint64]chan T)}
		t.streams[key] = current
	}
	return current
}

func (t *topic[T]) unsubscribe(key string, id uint64) {
	t.mu.RLock()
	current := t.streams[key]
	t.mu.RUnlock()
	if current == nil {
		return
	}

	current.mu.Lock()
	delete(current.subs, id)
	remaining := len(current.subs)
	current.mu.Unlock()
	if remaining != 0 {
		return
	}

	// Drop the whole stream once the last subscriber detaches so idle
	// entities do not accumulate replay buffers.
	t.mu.Lock()
	if t.streams[key] == current {
		current.mu.Lock()
		if len(current.subs) == 0 {
			delete(t.streams, key)
		}
		current.mu.Unlock()
	}
	t.mu.Unlock()
}

// Subscription is one listener's attachment to a stream.
type Subscription[T any] struct {
	topic *topic[T]
	key   string
	id    uint64
	ch    chan T
	once  sync.Once
}

// Updates returns the channel the stream's messages arrive on.
func (s *Subscription[T]) Updates() <-chan T {
	return s.ch
}

// Close detaches the subscription from its stream. Safe to call twice.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		s.topic.unsubscribe(s.key, s.id)
	})
}
