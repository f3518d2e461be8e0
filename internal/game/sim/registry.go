// Package sim ties the combat core together: a spatial registry of all
// combatants and the single-threaded driver that steps the simulation.
package sim

import (
	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/geo"
)

// Registry tracks every combatant on the plane and answers the spatial
// queries attack resolution runs on. Mutated only by the driver
// goroutine; a linear scan over the arena's population is the entire
// query cost.
type Registry struct {
	byID  map[string]combat.Combatant
	order []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]combat.Combatant)}
}

// Add registers c. Re-adding an ID replaces the previous entry in place.
func (r *Registry) Add(c combat.Combatant) {
	id := c.ID()
	if _, ok := r.byID[id]; !ok {
		r.order = append(r.order, id)
	}
	r.byID[id] = c
}

// Remove deregisters the combatant with the given id; unknown ids are a
// no-op.
func (r *Registry) Remove(id string) {
	if _, ok := r.byID[id]; !ok {
		return
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the combatant with the given id.
func (r *Registry) Get(id string) (combat.Combatant, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Len returns the number of registered combatants.
func (r *Registry) Len() int { return len(r.byID) }

// Nearby returns every registered combatant of the given team within
// radius of origin (closed interval), in registration order.
//
// Postcondition: every returned combatant satisfies
// Distance(origin, c.Position()) <= radius and c.Team() == team.
func (r *Registry) Nearby(origin geo.Vec2, radius float64, team combat.Team) []combat.Combatant {
	var out []combat.Combatant
	for _, id := range r.order {
		c := r.byID[id]
		if c.Team() != team {
			continue
		}
		if geo.Distance(origin, c.Position()) <= radius {
			out = append(out, c)
		}
	}
	return out
}
