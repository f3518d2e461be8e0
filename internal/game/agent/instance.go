package agent

import (
	"time"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/event"
	"github.com/cory-johannsen/arena/internal/game/geo"
	"github.com/cory-johannsen/arena/internal/game/nav"
	"github.com/cory-johannsen/arena/internal/game/vitals"
)

// State is the behavior state of a live agent.
type State int

const (
	// StateWandering is the initial state: drift around the home position.
	StateWandering State = iota
	// StateChasing pursues the player after perception triggered.
	StateChasing
	// StateAttacking holds position and swings within attack range.
	StateAttacking
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateWandering:
		return "wandering"
	case StateChasing:
		return "chasing"
	case StateAttacking:
		return "attacking"
	default:
		return "unknown"
	}
}

// Instance is one live agent: the combat-protocol side of the entity plus
// the behavior record the Controller drives.
//
// Invariants: attackInFlight implies state == StateAttacking; once dead
// the state is frozen and no transition or action ever runs again.
type Instance struct {
	id       string
	template *Template
	health   *vitals.Pool
	nav      nav.Navigator
	events   *event.Queue

	facing geo.Vec2
	home   geo.Vec2
	attack combat.AttackSpec

	state             State
	wanderTimer       time.Duration
	cooldownRemaining time.Duration
	attackInFlight    bool
	dead              bool
	action            combat.TimedAction
}

// newInstance builds a live agent at home. Spawning goes through
// Manager.Spawn, which supplies the unique id and navigator.
func newInstance(id string, tmpl *Template, home geo.Vec2, navigator nav.Navigator, events *event.Queue) *Instance {
	return &Instance{
		id:       id,
		template: tmpl,
		health:   vitals.NewPool(id, vitals.Health, tmpl.MaxHP, events),
		nav:      navigator,
		events:   events,
		facing:   geo.Vec2{X: 1},
		home:     home,
		attack:   tmpl.AttackSpec(),
		state:    StateWandering,
	}
}

// ID returns the instance's unique identifier.
func (i *Instance) ID() string { return i.id }

// Team reports the agent side of the combat protocol.
func (i *Instance) Team() combat.Team { return combat.TeamAgent }

// Position returns the agent's current world position.
func (i *Instance) Position() geo.Vec2 { return i.nav.Position() }

// Facing returns the agent's forward direction.
func (i *Instance) Facing() geo.Vec2 { return i.facing }

// Health returns the agent's health pool.
func (i *Instance) Health() *vitals.Pool { return i.health }

// Alive reports whether the agent still participates in the simulation.
func (i *Instance) Alive() bool { return !i.dead }

// State returns the current behavior state.
func (i *Instance) State() State { return i.state }

// AttackInFlight reports whether a committed attack has not yet finished.
func (i *Instance) AttackInFlight() bool { return i.attackInFlight }

// Template returns the archetype this instance was spawned from.
func (i *Instance) Template() *Template { return i.template }

// Navigator returns the agent's movement capability for the fixed-rate
// integration pass.
func (i *Instance) Navigator() nav.Navigator { return i.nav }

// TakeDamage applies damage through the health pool and fires the death
// transition exactly once when it empties. Damage to a dead agent is a
// no-op.
func (i *Instance) TakeDamage(amount int) {
	if i.dead {
		return
	}
	i.health.Apply(-amount)
	if i.health.IsEmpty() {
		i.die()
	}
}

// die freezes the agent: navigation halts, the in-flight action is
// abandoned, and no further transitions occur. Fires at most once.
func (i *Instance) die() {
	i.dead = true
	i.attackInFlight = false
	i.action.Cancel()
	i.nav.Halt()
	if i.events != nil {
		i.events.Publish(event.Event{Kind: event.KindDied, Actor: i.id})
	}
}

// AdvanceAction moves the in-flight attack forward and, when it fully
// completes (resolve plus recovery), clears the in-flight flag and starts
// the attack cooldown. Called after the state machine evaluation within
// the same tick, so a transition never races a same-tick resolve.
func (i *Instance) AdvanceAction(dt time.Duration) {
	if i.dead {
		return
	}
	i.action.Advance(dt)
	if i.attackInFlight && !i.action.Live() {
		i.attackInFlight = false
		i.cooldownRemaining = i.template.Cooldown()
	}
}
