// Package vitals implements the clamped numeric resources (health and
// energy) owned by every combatant. A Pool is mutated only through Apply
// and is never observable outside [0, max].
package vitals

import "github.com/cory-johannsen/arena/internal/game/event"

// Kind distinguishes the two pool flavors a combatant can own.
type Kind int

const (
	Health Kind = iota
	Energy
)

// Pool is a clamped integer resource with change notification.
//
// Invariant: 0 <= current <= max at every observation point.
// A Pool is exclusively owned by one combatant and mutated only from the
// driver goroutine; it needs no locking.
type Pool struct {
	ownerID string
	kind    Kind
	current int
	max     int
	events  *event.Queue
}

// NewPool creates a full Pool for ownerID. events may be nil, in which
// case change notifications are discarded.
//
// Precondition: max >= 1.
// Postcondition: Current() == Max() == max.
func NewPool(ownerID string, kind Kind, max int, events *event.Queue) *Pool {
	if max < 1 {
		max = 1
	}
	return &Pool{
		ownerID: ownerID,
		kind:    kind,
		current: max,
		max:     max,
		events:  events,
	}
}

// Current returns the current value.
func (p *Pool) Current() int { return p.current }

// Max returns the maximum value.
func (p *Pool) Max() int { return p.max }

// IsEmpty reports whether the pool has been exhausted.
func (p *Pool) IsEmpty() bool { return p.current == 0 }

// Apply adds delta (positive = heal/restore, negative = damage/spend),
// clamps the result to [0, max], and publishes a change notification iff
// the clamped value differs from the prior value. Once the pool reaches
// zero, further negative deltas are no-ops until Reset — a dead entity
// cannot be damaged again.
//
// Postcondition: 0 <= Current() <= Max(); returns the new current value.
func (p *Pool) Apply(delta int) int {
	if p.current == 0 && delta < 0 {
		return 0
	}
	next := p.current + delta
	if next < 0 {
		next = 0
	} else if next > p.max {
		next = p.max
	}
	if next == p.current {
		return p.current
	}
	p.current = next
	p.notify()
	return p.current
}

// Reset refills the pool to max and re-arms damage acceptance. A change
// notification fires iff the value actually changed.
//
// Postcondition: Current() == Max().
func (p *Pool) Reset() {
	if p.current == p.max {
		return
	}
	p.current = p.max
	p.notify()
}

func (p *Pool) notify() {
	if p.events == nil {
		return
	}
	kind := event.KindHealthChanged
	if p.kind == Energy {
		kind = event.KindEnergyChanged
	}
	p.events.Publish(event.Event{
		Kind:    kind,
		Actor:   p.ownerID,
		Current: p.current,
		Max:     p.max,
	})
}
