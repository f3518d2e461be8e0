// Package event carries outbound notifications from the simulation core to
// presentation layers (UI, animation, audio). The core publishes
// fire-and-forget events into a bounded queue; presentation drains the
// queue once per tick. There are no subscription lists and no return
// values, so presentation lifetime never leaks into the core.
package event

import "sync"

// Kind identifies the notification type.
type Kind string

const (
	KindHealthChanged  Kind = "health_changed"
	KindEnergyChanged  Kind = "energy_changed"
	KindDied           Kind = "died"
	KindAttackStarted  Kind = "attack_started"
	KindAttackResolved Kind = "attack_resolved"
)

// Event is a single outbound notification.
type Event struct {
	// Kind is the notification type.
	Kind Kind
	// Actor is the ID of the combatant the event is about.
	Actor string
	// Targets lists the IDs hit by an attack_resolved event.
	Targets []string
	// Current and Max carry pool values for health/energy changes.
	Current int
	Max     int
	// Special is true when an attack event refers to a special attack.
	Special bool
}

// Queue is a bounded fire-and-forget notification buffer.
// Publish never blocks; when the buffer is full the new event is dropped
// and counted. Safe for concurrent use: the driver publishes, a
// presentation goroutine may drain.
type Queue struct {
	mu      sync.Mutex
	buf     []Event
	cap     int
	dropped uint64
}

// NewQueue creates a Queue holding at most capacity events between drains.
//
// Precondition: capacity > 0 (values <= 0 fall back to 256).
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 256
	}
	return &Queue{cap: capacity}
}

// Publish appends e to the buffer. When the buffer is at capacity the
// event is dropped and the drop counter incremented; Publish never blocks
// and never fails the caller.
func (q *Queue) Publish(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buf) >= q.cap {
		q.dropped++
		return
	}
	q.buf = append(q.buf, e)
}

// Drain returns all buffered events and resets the buffer.
//
// Postcondition: a subsequent Drain with no intervening Publish returns nil.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.buf
	q.buf = nil
	return out
}

// Dropped returns the number of events discarded because the buffer was full.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
