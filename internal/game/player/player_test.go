package player_test

import (
	"math"
	"testing"
	"time"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/event"
	"github.com/cory-johannsen/arena/internal/game/geo"
	"github.com/cory-johannsen/arena/internal/game/input"
	"github.com/cory-johannsen/arena/internal/game/nav"
	"github.com/cory-johannsen/arena/internal/game/player"
	"github.com/cory-johannsen/arena/internal/game/vitals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// stickReader is a mutable input fake for direct control in tests.
type stickReader struct {
	axes    map[string]float64
	pressed map[string]bool
}

func newStickReader() *stickReader {
	return &stickReader{axes: map[string]float64{}, pressed: map[string]bool{}}
}

func (r *stickReader) Axis(name string) float64      { return r.axes[name] }
func (r *stickReader) WasPressed(action string) bool { return r.pressed[action] }

// dummy is a stationary agent-side target.
type dummy struct {
	id     string
	pos    geo.Vec2
	health *vitals.Pool
}

func newDummy(id string, pos geo.Vec2, hp int) *dummy {
	return &dummy{id: id, pos: pos, health: vitals.NewPool(id, vitals.Health, hp, nil)}
}

func (d *dummy) ID() string            { return d.id }
func (d *dummy) Team() combat.Team     { return combat.TeamAgent }
func (d *dummy) Position() geo.Vec2    { return d.pos }
func (d *dummy) Facing() geo.Vec2      { return geo.Vec2{X: -1} }
func (d *dummy) Health() *vitals.Pool  { return d.health }
func (d *dummy) Alive() bool           { return !d.health.IsEmpty() }
func (d *dummy) TakeDamage(amount int) { d.health.Apply(-amount) }

type listSpace struct {
	members []combat.Combatant
}

func (s *listSpace) Nearby(origin geo.Vec2, radius float64, team combat.Team) []combat.Combatant {
	var out []combat.Combatant
	for _, c := range s.members {
		if c.Team() == team && geo.Distance(origin, c.Position()) <= radius {
			out = append(out, c)
		}
	}
	return out
}

func baseSpec() player.Spec {
	return player.Spec{
		MaxHP:             100,
		MaxEnergy:         50,
		MoveSpeed:         5,
		SpecialEnergyCost: 10,
		Attack: combat.AttackSpec{
			Damage:          10,
			Range:           2,
			ArcHalfAngleDeg: 60,
			RecoveryDelay:   500 * time.Millisecond,
		},
		SpecialRadiusMult:   1.5,
		SpecialDamageMult:   2,
		SpecialCooldownMult: 1.5,
	}
}

var arena = nav.Rect{Min: geo.Vec2{X: -100, Y: -100}, Max: geo.Vec2{X: 100, Y: 100}}

func newPlayer(t *testing.T, reader input.Reader, targets ...combat.Combatant) (*player.Controller, *event.Queue) {
	t.Helper()
	events := event.NewQueue(128)
	space := &listSpace{members: targets}
	resolver := combat.NewResolver(space, events, nil)
	ctrl := player.NewController(baseSpec(), arena, geo.Vec2{}, reader, resolver, events, nil)
	space.members = append(space.members, ctrl)
	return ctrl, events
}

func TestBasicAttack_ResolvesOnCommit(t *testing.T) {
	reader := newStickReader()
	target := newDummy("t", geo.Vec2{X: 1.5}, 50)
	ctrl, _ := newPlayer(t, reader, target)

	reader.pressed[input.ActionAttack] = true
	ctrl.HandleInput()

	assert.Equal(t, 40, target.health.Current(), "zero startup resolves immediately")
	assert.True(t, ctrl.Acting(), "recovery window follows the hit")
}

func TestBasicAttack_RecoveryGatesNextSwing(t *testing.T) {
	reader := newStickReader()
	target := newDummy("t", geo.Vec2{X: 1.5}, 100)
	ctrl, _ := newPlayer(t, reader, target)

	reader.pressed[input.ActionAttack] = true
	ctrl.HandleInput()
	ctrl.HandleInput() // second request inside the recovery window
	assert.Equal(t, 90, target.health.Current(), "request during recovery is a no-op")

	ctrl.Advance(499 * time.Millisecond)
	ctrl.HandleInput()
	assert.Equal(t, 90, target.health.Current())

	ctrl.Advance(1 * time.Millisecond)
	require.False(t, ctrl.Acting())
	ctrl.HandleInput()
	assert.Equal(t, 80, target.health.Current(), "recovery elapsed re-enables the attack")
}

func TestSpecialAttack_ScalesRadiusDamageAndCooldown(t *testing.T) {
	reader := newStickReader()
	// Outside the basic range (2) but inside the special radius (3).
	far := newDummy("far", geo.Vec2{X: 2.5}, 50)
	ctrl, _ := newPlayer(t, reader, far)

	reader.pressed[input.ActionSpecial] = true
	ctrl.HandleInput()

	assert.Equal(t, 30, far.health.Current(), "special deals double damage at extended radius")
	assert.Equal(t, 40, ctrl.Energy().Current(), "energy cost applied")

	// Recovery is 500ms * 1.5 = 750ms.
	ctrl.Advance(500 * time.Millisecond)
	assert.True(t, ctrl.Acting())
	ctrl.Advance(250 * time.Millisecond)
	assert.False(t, ctrl.Acting())
}

func TestSpecialAttack_InsufficientEnergyIsZeroStateChange(t *testing.T) {
	reader := newStickReader()
	target := newDummy("t", geo.Vec2{X: 1.5}, 50)
	ctrl, _ := newPlayer(t, reader, target)

	ctrl.Energy().Apply(-45) // 5 left, cost is 10

	reader.pressed[input.ActionSpecial] = true
	ctrl.HandleInput()

	assert.Equal(t, 5, ctrl.Energy().Current(), "no partial energy spend")
	assert.Equal(t, 50, target.health.Current(), "no damage")
	assert.False(t, ctrl.Acting(), "no cooldown incurred")
}

func TestSpecialAttack_RejectedWhileActing(t *testing.T) {
	reader := newStickReader()
	target := newDummy("t", geo.Vec2{X: 1.5}, 100)
	ctrl, _ := newPlayer(t, reader, target)

	reader.pressed[input.ActionAttack] = true
	reader.pressed[input.ActionSpecial] = true
	ctrl.HandleInput()

	assert.Equal(t, 90, target.health.Current(), "only the basic attack lands")
	assert.Equal(t, 50, ctrl.Energy().Current(), "rejected special spends nothing")
}

func TestDeadPlayer_IgnoresInputAndMovement(t *testing.T) {
	reader := newStickReader()
	target := newDummy("t", geo.Vec2{X: 1.5}, 50)
	ctrl, events := newPlayer(t, reader, target)

	ctrl.TakeDamage(1000)
	require.False(t, ctrl.Alive())

	reader.pressed[input.ActionAttack] = true
	reader.axes[input.AxisHorizontal] = 1
	ctrl.HandleInput()
	ctrl.Move(time.Second)

	assert.Equal(t, 50, target.health.Current())
	assert.Equal(t, geo.Vec2{}, ctrl.Position())

	deaths := 0
	for _, e := range events.Drain() {
		if e.Kind == event.KindDied && e.Actor == "player" {
			deaths++
		}
	}
	assert.Equal(t, 1, deaths)
}

func TestDamageToDeadPlayerIsNoOp(t *testing.T) {
	ctrl, _ := newPlayer(t, newStickReader())
	ctrl.TakeDamage(1000)
	ctrl.TakeDamage(10)
	assert.Equal(t, 0, ctrl.Health().Current())
}

func TestMove_DiagonalIsNormalized(t *testing.T) {
	reader := newStickReader()
	ctrl, _ := newPlayer(t, reader)

	reader.axes[input.AxisHorizontal] = 1
	reader.axes[input.AxisVertical] = 1
	ctrl.Move(time.Second)

	want := 5 / math.Sqrt2
	assert.InDelta(t, want, ctrl.Position().X, 1e-9)
	assert.InDelta(t, want, ctrl.Position().Y, 1e-9)
	assert.InDelta(t, 1, ctrl.Facing().Length(), 1e-9, "facing follows movement as a unit vector")
}

func TestMove_NotGatedByCooldown(t *testing.T) {
	reader := newStickReader()
	target := newDummy("t", geo.Vec2{X: 1.5}, 50)
	ctrl, _ := newPlayer(t, reader, target)

	reader.pressed[input.ActionAttack] = true
	ctrl.HandleInput()
	require.True(t, ctrl.Acting())

	reader.axes[input.AxisHorizontal] = 1
	ctrl.Move(time.Second)
	assert.InDelta(t, 5, ctrl.Position().X, 1e-9, "cooldown never blocks movement")
}

func TestMove_ClampsToArenaBounds(t *testing.T) {
	reader := newStickReader()
	ctrl, _ := newPlayer(t, reader)

	reader.axes[input.AxisHorizontal] = 1
	for i := 0; i < 100; i++ {
		ctrl.Move(time.Second)
	}
	assert.Equal(t, 100.0, ctrl.Position().X)
}

func TestMove_SpeedNeverExceedsConfigured(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reader := newStickReader()
		events := event.NewQueue(16)
		resolver := combat.NewResolver(&listSpace{}, events, nil)
		ctrl := player.NewController(baseSpec(), arena, geo.Vec2{}, reader, resolver, events, nil)

		reader.axes[input.AxisHorizontal] = rapid.Float64Range(-1, 1).Draw(t, "x")
		reader.axes[input.AxisVertical] = rapid.Float64Range(-1, 1).Draw(t, "y")

		before := ctrl.Position()
		dt := 20 * time.Millisecond
		ctrl.Move(dt)

		moved := geo.Distance(before, ctrl.Position())
		assert.LessOrEqual(t, moved, 5*dt.Seconds()+1e-9)
	})
}

func TestEdgeTrigger_HeldKeyFiresOnce(t *testing.T) {
	target := newDummy("t", geo.Vec2{X: 1.5}, 100)
	script := input.NewScript(
		input.Frame{Pressed: map[string]bool{input.ActionAttack: true}},
		input.Frame{}, // key physically held but no new press edge
		input.Frame{},
	)
	ctrl, _ := newPlayer(t, script, target)

	for !script.Exhausted() {
		ctrl.HandleInput()
		ctrl.Advance(time.Second) // plenty to clear recovery each tick
		script.Step()
	}
	assert.Equal(t, 90, target.health.Current(), "one press edge, one swing")
}
