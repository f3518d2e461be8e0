package agent

import (
	"sync"
	"time"
)

// reapEntry is a single scheduled removal.
type reapEntry struct {
	id      string
	readyAt time.Time
}

// Reaper schedules the removal of dead agents after a fixed grace period,
// during which presentation layers play the death sequence while the
// agent no longer participates in perception, targeting, or damage.
//
// Invariant: each id is pending at most once.
type Reaper struct {
	mu      sync.Mutex
	grace   time.Duration
	pending []reapEntry
	queued  map[string]bool
}

// NewReaper creates a Reaper with the given grace period.
//
// Precondition: grace >= 0.
func NewReaper(grace time.Duration) *Reaper {
	return &Reaper{
		grace:  grace,
		queued: make(map[string]bool),
	}
}

// Schedule enqueues id for removal at now + grace. Scheduling an
// already-pending id is a no-op, so the driver may call this every tick
// for every dead agent.
func (r *Reaper) Schedule(id string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.queued[id] {
		return
	}
	r.queued[id] = true
	r.pending = append(r.pending, reapEntry{id: id, readyAt: now.Add(r.grace)})
}

// Pending reports whether id has a scheduled removal.
func (r *Reaper) Pending(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queued[id]
}

// Due drains and returns every id whose grace period has elapsed.
//
// Postcondition: returned ids are no longer pending; an id is returned
// at most once across all Due calls.
func (r *Reaper) Due(now time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var due []string
	var future []reapEntry
	for _, e := range r.pending {
		if !e.readyAt.After(now) {
			due = append(due, e.id)
			delete(r.queued, e.id)
		} else {
			future = append(future, e)
		}
	}
	r.pending = future
	return due
}
