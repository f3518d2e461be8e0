package combat

import (
	"errors"
	"time"
)

// ErrActionInFlight is returned by Begin while a previous action has not
// finished its cooldown. The request is rejected with no state change.
var ErrActionInFlight = errors.New("combat: timed action already in flight")

// Phase identifies where a TimedAction is in its lifecycle.
type Phase int

const (
	// PhaseIdle means no action is live; the actor may act.
	PhaseIdle Phase = iota
	// PhaseCommitted covers the startup wind-up before the hit lands.
	PhaseCommitted
	// PhaseResolving is the instant the resolve callback runs. It is
	// never observable across ticks; Advance passes through it.
	PhaseResolving
	// PhaseCoolingDown covers the recovery window after resolve.
	PhaseCoolingDown
)

// String returns a human-readable phase label.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCommitted:
		return "committed"
	case PhaseResolving:
		return "resolving"
	case PhaseCoolingDown:
		return "cooling_down"
	default:
		return "unknown"
	}
}

// TimedAction models one attack as a polled phase/elapsed record: commit,
// startup delay, resolve, cooldown. It is deliberately not a goroutine or
// a blocking wait — the owning actor calls Advance every tick and the
// record carries all suspension state.
//
// At most one action is live per actor; Begin rejects re-entrant requests.
// Cancellation exists only for actor death and permanently abandons the
// action without returning to PhaseIdle — a dead actor never acts again.
type TimedAction struct {
	phase     Phase
	elapsed   time.Duration
	startup   time.Duration
	recovery  time.Duration
	onResolve func()
	cancelled bool
}

// Phase returns the action's current phase.
func (a *TimedAction) Phase() Phase { return a.phase }

// Live reports whether an action is occupying the actor's action slot.
// It gates canAct: a live action (including a cancelled one) blocks new
// requests.
func (a *TimedAction) Live() bool { return a.phase != PhaseIdle }

// Begin commits a new action. canAct drops synchronously with the request:
// Live() is true as soon as Begin returns nil. A zero startup resolves
// immediately inside Begin (the player's basic attack lands on commit);
// otherwise the resolve runs from Advance once startup has elapsed.
//
// Precondition: onResolve must not be nil.
// Postcondition: on success the action is live; on ErrActionInFlight no
// state changed.
func (a *TimedAction) Begin(startup, recovery time.Duration, onResolve func()) error {
	if a.Live() {
		return ErrActionInFlight
	}
	a.phase = PhaseCommitted
	a.elapsed = 0
	a.startup = startup
	a.recovery = recovery
	a.onResolve = onResolve
	a.cancelled = false
	if a.startup <= 0 {
		a.resolve()
	}
	return nil
}

// Advance moves the action forward by dt. Committed transitions through
// Resolving (running the resolve callback exactly once) into CoolingDown;
// CoolingDown returns to Idle when recovery has elapsed. A cancelled
// action never advances.
func (a *TimedAction) Advance(dt time.Duration) {
	if a.cancelled || a.phase == PhaseIdle {
		return
	}
	a.elapsed += dt
	if a.phase == PhaseCommitted {
		if a.elapsed < a.startup {
			return
		}
		a.elapsed -= a.startup
		a.resolve()
		if a.cancelled {
			// The resolve killed our owner (mutual exchange); the death
			// handler already cancelled us.
			return
		}
	}
	if a.phase == PhaseCoolingDown && a.elapsed >= a.recovery {
		a.finish()
	}
}

// Cancel abandons the remaining phases. The action stays live so the
// owner's canAct is never restored. Used only on actor death.
func (a *TimedAction) Cancel() {
	if a.phase == PhaseIdle {
		return
	}
	a.cancelled = true
	a.onResolve = nil
}

func (a *TimedAction) resolve() {
	a.phase = PhaseResolving
	if a.onResolve != nil {
		a.onResolve()
	}
	if a.cancelled {
		return
	}
	a.phase = PhaseCoolingDown
	if a.recovery <= 0 {
		a.finish()
	}
}

func (a *TimedAction) finish() {
	a.phase = PhaseIdle
	a.elapsed = 0
	a.onResolve = nil
}
