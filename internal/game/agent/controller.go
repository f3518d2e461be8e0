package agent

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/event"
	"github.com/cory-johannsen/arena/internal/game/geo"
)

// Controller drives one agent's behavior state machine. The driver calls
// Think once per variable-rate tick, before the instance's action
// advancement, and only while the agent is alive.
//
// All range and perception comparisons are closed-interval (<=) so an
// agent exactly on a boundary favors the more engaged state: Chasing over
// Wandering, Attacking over Chasing.
type Controller struct {
	inst     *Instance
	resolver *combat.Resolver
	logger   *zap.Logger
}

// NewController creates a Controller for inst.
//
// Precondition: inst and resolver must not be nil; logger may be nil.
func NewController(inst *Instance, resolver *combat.Resolver, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{inst: inst, resolver: resolver, logger: logger}
}

// Instance returns the agent this controller drives.
func (c *Controller) Instance() *Instance { return c.inst }

// Think evaluates one tick of the behavior state machine against the
// player. Dead agents never think.
func (c *Controller) Think(dt time.Duration, player combat.Combatant) {
	i := c.inst
	if i.dead {
		return
	}

	if i.cooldownRemaining > 0 {
		i.cooldownRemaining -= dt
		if i.cooldownRemaining < 0 {
			i.cooldownRemaining = 0
		}
	}

	dist := geo.Distance(i.Position(), player.Position())
	perceived := player.Alive() && dist <= i.template.PerceptionRadius

	switch i.state {
	case StateWandering:
		c.thinkWander(dt, perceived)
	case StateChasing:
		c.thinkChase(player, dist, perceived)
	case StateAttacking:
		c.thinkAttack(dt, player, dist)
	}
}

// thinkWander drifts around home until the player enters perception.
func (c *Controller) thinkWander(dt time.Duration, perceived bool) {
	i := c.inst
	if perceived {
		c.setState(StateChasing)
		return
	}
	i.wanderTimer += dt
	if i.wanderTimer >= i.template.RepickInterval() {
		c.pickWanderGoal()
		i.wanderTimer = 0
	}
}

// thinkChase re-targets the player's position every tick until the agent
// either loses perception or closes to attack range.
func (c *Controller) thinkChase(player combat.Combatant, dist float64, perceived bool) {
	i := c.inst
	if !perceived {
		c.setState(StateWandering)
		c.pickWanderGoal()
		i.wanderTimer = 0
		return
	}
	if dist <= i.template.AttackRadius {
		c.setState(StateAttacking)
		i.nav.Halt()
		return
	}
	i.nav.SetGoal(player.Position())
}

// thinkAttack faces the player at a bounded turn rate and swings when the
// cooldown window opens. While an attack is in flight the agent holds:
// no transitions are evaluated, so the resolve-time range recheck is the
// only guard against a fled target.
func (c *Controller) thinkAttack(dt time.Duration, player combat.Combatant, dist float64) {
	i := c.inst

	desired := player.Position().Sub(i.Position())
	i.facing = geo.RotateTowardDeg(i.facing, desired, i.template.TurnRate()*dt.Seconds())

	if i.attackInFlight {
		return
	}
	if !player.Alive() || dist > i.template.AttackRadius {
		c.setState(StateChasing)
		if player.Alive() {
			i.nav.SetGoal(player.Position())
		}
		return
	}
	if i.cooldownRemaining <= 0 {
		c.beginAttack(player)
	}
}

// beginAttack commits the agent's timed attack. The hit lands only after
// the startup delay; resolution re-checks that the target is still within
// attack radius, so a target that fled during startup takes no damage.
func (c *Controller) beginAttack(player combat.Combatant) {
	i := c.inst
	spec := i.attack

	err := i.action.Begin(spec.StartupDelay, spec.RecoveryDelay, func() {
		if !player.Alive() || geo.Distance(i.Position(), player.Position()) > i.template.AttackRadius {
			if i.events != nil {
				i.events.Publish(event.Event{Kind: event.KindAttackResolved, Actor: i.id})
			}
			c.logger.Debug("agent attack whiffed, target out of range",
				zap.String("agent", i.id),
			)
			return
		}
		c.resolver.Sweep(i, spec, spec.Range, spec.Damage)
	})
	if err != nil {
		// Begin only fails on a live action, which attackInFlight should
		// already reflect; treat as a rejected request.
		c.logger.Debug("agent attack rejected", zap.String("agent", i.id), zap.Error(err))
		return
	}

	i.attackInFlight = true
	i.nav.Halt()
	if i.events != nil {
		i.events.Publish(event.Event{Kind: event.KindAttackStarted, Actor: i.id})
	}
	c.logger.Debug("agent attack committed",
		zap.String("agent", i.id),
		zap.Duration("startup", spec.StartupDelay),
	)
}

// pickWanderGoal samples a navigable point near home, falling back to
// home itself when sampling fails.
func (c *Controller) pickWanderGoal() {
	i := c.inst
	goal, ok := i.nav.SampleReachable(i.home, i.template.WanderRadius)
	if !ok {
		goal = i.home
	}
	i.nav.SetGoal(goal)
}

func (c *Controller) setState(next State) {
	i := c.inst
	if i.state == next {
		return
	}
	c.logger.Debug("agent state changed",
		zap.String("agent", i.id),
		zap.String("from", i.state.String()),
		zap.String("to", next.String()),
	)
	i.state = next
}
