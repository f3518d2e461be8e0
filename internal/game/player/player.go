// Package player implements the player-controlled combatant: movement
// from input axes, edge-triggered basic and special attacks, and the
// health/energy pools behind them.
package player

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/event"
	"github.com/cory-johannsen/arena/internal/game/geo"
	"github.com/cory-johannsen/arena/internal/game/input"
	"github.com/cory-johannsen/arena/internal/game/nav"
	"github.com/cory-johannsen/arena/internal/game/vitals"
)

// actorID identifies the player in events and combat logs. There is one
// player per simulation.
const actorID = "player"

// Spec is the player's balance sheet.
type Spec struct {
	MaxHP     int
	MaxEnergy int
	// MoveSpeed is the travel rate in units per second.
	MoveSpeed float64
	// SpecialEnergyCost is the energy price of one special attack.
	SpecialEnergyCost int
	// Attack is the basic attack: zero startup, recovery acts as the
	// post-swing cooldown.
	Attack combat.AttackSpec
	// Special attack scaling over the basic attack.
	SpecialRadiusMult   float64
	SpecialDamageMult   float64
	SpecialCooldownMult float64
}

// Controller is the player combatant. The driver calls HandleInput once
// per variable-rate tick, Move once per fixed-rate step, and Advance for
// action progression. All methods run on the driver goroutine.
type Controller struct {
	spec     Spec
	health   *vitals.Pool
	energy   *vitals.Pool
	bounds   nav.Rect
	pos      geo.Vec2
	facing   geo.Vec2
	input    input.Reader
	resolver *combat.Resolver
	events   *event.Queue
	logger   *zap.Logger

	action combat.TimedAction
	dead   bool
}

// NewController creates a live player at start with full pools.
//
// Precondition: reader and resolver must not be nil; events and logger
// may be nil.
func NewController(spec Spec, bounds nav.Rect, start geo.Vec2, reader input.Reader, resolver *combat.Resolver, events *event.Queue, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		spec:     spec,
		health:   vitals.NewPool(actorID, vitals.Health, spec.MaxHP, events),
		energy:   vitals.NewPool(actorID, vitals.Energy, spec.MaxEnergy, events),
		bounds:   bounds,
		pos:      start,
		facing:   geo.Vec2{X: 1},
		input:    reader,
		resolver: resolver,
		events:   events,
		logger:   logger,
	}
}

// ID returns the player actor identifier.
func (c *Controller) ID() string { return actorID }

// Team reports the player side of the combat protocol.
func (c *Controller) Team() combat.Team { return combat.TeamPlayer }

// Position returns the player's current world position.
func (c *Controller) Position() geo.Vec2 { return c.pos }

// Facing returns the player's forward direction.
func (c *Controller) Facing() geo.Vec2 { return c.facing }

// Health returns the player's health pool.
func (c *Controller) Health() *vitals.Pool { return c.health }

// Energy returns the player's energy pool.
func (c *Controller) Energy() *vitals.Pool { return c.energy }

// Alive reports whether the player still acts.
func (c *Controller) Alive() bool { return !c.dead }

// Acting reports whether an attack is committed, resolving, or cooling
// down. Movement is never gated by this.
func (c *Controller) Acting() bool { return c.action.Live() }

// TakeDamage applies damage through the health pool. Damage to a dead
// player is a no-op.
func (c *Controller) TakeDamage(amount int) {
	if c.dead {
		return
	}
	c.health.Apply(-amount)
	if c.health.IsEmpty() {
		c.die()
	}
}

// die fires the death transition exactly once: the in-flight action is
// abandoned and input is ignored from here on.
func (c *Controller) die() {
	c.dead = true
	c.action.Cancel()
	if c.events != nil {
		c.events.Publish(event.Event{Kind: event.KindDied, Actor: actorID})
	}
	c.logger.Info("player died")
}

// HandleInput consumes this tick's edge-triggered action requests. A
// request while another action is live, or while dead, is silently
// rejected with zero state change.
func (c *Controller) HandleInput() {
	if c.dead {
		return
	}
	if c.input.WasPressed(input.ActionAttack) {
		c.tryBasic()
	}
	if c.input.WasPressed(input.ActionSpecial) {
		c.trySpecial()
	}
}

// tryBasic commits the basic attack. Zero startup: damage resolves
// inside the commit, then the recovery window acts as the cooldown.
func (c *Controller) tryBasic() {
	if c.action.Live() {
		c.logger.Debug("basic attack rejected, action in progress")
		return
	}
	spec := c.spec.Attack
	if c.events != nil {
		c.events.Publish(event.Event{Kind: event.KindAttackStarted, Actor: actorID})
	}
	_ = c.action.Begin(0, spec.RecoveryDelay, func() {
		c.resolver.Sweep(c, spec, spec.Range, spec.Damage)
	})
}

// trySpecial commits the scaled special attack. Insufficient energy
// rejects the request before any state changes; on success the energy
// cost is paid before resolution.
func (c *Controller) trySpecial() {
	if c.action.Live() {
		c.logger.Debug("special attack rejected, action in progress")
		return
	}
	if c.energy.Current() < c.spec.SpecialEnergyCost {
		c.logger.Debug("special attack rejected, insufficient energy",
			zap.Int("current", c.energy.Current()),
			zap.Int("cost", c.spec.SpecialEnergyCost),
		)
		return
	}
	c.energy.Apply(-c.spec.SpecialEnergyCost)

	spec := c.spec.Attack
	radius := spec.Range * c.spec.SpecialRadiusMult
	damage := int(math.Round(float64(spec.Damage) * c.spec.SpecialDamageMult))
	recovery := time.Duration(float64(spec.RecoveryDelay) * c.spec.SpecialCooldownMult)

	if c.events != nil {
		c.events.Publish(event.Event{Kind: event.KindAttackStarted, Actor: actorID, Special: true})
	}
	_ = c.action.Begin(0, recovery, func() {
		c.resolver.Sweep(c, spec, radius, damage)
	})
}

// Move integrates one fixed-rate step of input-driven movement. The
// direction is normalized so diagonals travel no faster than cardinals;
// facing follows any nonzero movement. Movement is gated only by death,
// never by attack cooldowns.
func (c *Controller) Move(dt time.Duration) {
	if c.dead {
		return
	}
	dir := geo.Vec2{
		X: c.input.Axis(input.AxisHorizontal),
		Y: c.input.Axis(input.AxisVertical),
	}
	if dir.IsZero() {
		return
	}
	dir = dir.Normalize()
	c.pos = clamp(c.pos.Add(dir.Scale(c.spec.MoveSpeed*dt.Seconds())), c.bounds)
	c.facing = dir
}

// Advance moves the in-flight action forward.
func (c *Controller) Advance(dt time.Duration) {
	if c.dead {
		return
	}
	c.action.Advance(dt)
}

// clamp keeps p inside the walkable region.
func clamp(p geo.Vec2, r nav.Rect) geo.Vec2 {
	if p.X < r.Min.X {
		p.X = r.Min.X
	} else if p.X > r.Max.X {
		p.X = r.Max.X
	}
	if p.Y < r.Min.Y {
		p.Y = r.Min.Y
	} else if p.Y > r.Max.Y {
		p.Y = r.Max.Y
	}
	return p
}
