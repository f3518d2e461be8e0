// Package combat implements the shared combat protocol for the arena core:
// the Combatant contract used identically by the player and by agents, the
// timed attack action with its commit/resolve/cooldown phases, and the
// arc-swept damage resolver.
package combat

import (
	"time"

	"github.com/cory-johannsen/arena/internal/game/geo"
	"github.com/cory-johannsen/arena/internal/game/vitals"
)

// Team distinguishes player-side combatants from agent-side combatants.
// Attacks only ever resolve against the opposing team.
type Team int

const (
	TeamPlayer Team = iota
	TeamAgent
)

// Opposing returns the team an attack from t resolves against.
func (t Team) Opposing() Team {
	if t == TeamPlayer {
		return TeamAgent
	}
	return TeamPlayer
}

// String returns a human-readable team label.
func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// AttackSpec defines one attack an actor can perform.
type AttackSpec struct {
	// Damage is the amount removed from each hit target's health pool.
	Damage int
	// Range is the sweep radius from the attacker's position.
	Range float64
	// ArcHalfAngleDeg is the half-angle of the frontal hit arc in degrees.
	// A target exactly on the boundary is NOT hit (strict comparison).
	ArcHalfAngleDeg float64
	// StartupDelay is the wind-up between commit and resolve. Zero means
	// the attack resolves synchronously on commit.
	StartupDelay time.Duration
	// RecoveryDelay is the cooldown after resolve before the actor may act
	// again.
	RecoveryDelay time.Duration
}

// Combatant is any entity participating in health/damage exchange. The
// player controller and agent instances both implement it; the resolver
// treats them identically.
type Combatant interface {
	// ID uniquely identifies the combatant within the simulation.
	ID() string
	// Team reports which side the combatant fights for.
	Team() Team
	// Position is the combatant's current world position.
	Position() geo.Vec2
	// Facing is the combatant's forward direction (unit vector).
	Facing() geo.Vec2
	// Health is the combatant's exclusively-owned health pool.
	Health() *vitals.Pool
	// Alive reports whether the combatant can still participate in
	// perception, targeting, and damage.
	Alive() bool
	// TakeDamage applies amount points of damage through the health pool.
	// It is a no-op on a dead combatant and fires the death transition
	// exactly once when health reaches zero.
	TakeDamage(amount int)
}

// SpatialQuery finds combatants near a point. The simulation registry
// provides the implementation; results are typed handles, never probed at
// runtime.
type SpatialQuery interface {
	// Nearby returns all combatants of the given team whose distance from
	// origin is at most radius (closed interval).
	Nearby(origin geo.Vec2, radius float64, team Team) []Combatant
}
