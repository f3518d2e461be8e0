// Package nav provides the navigation capability consumed by agent
// controllers: goal-directed movement over a walkable region and valid
// point sampling for wander goals. The core consumes the Navigator
// interface; PlaneNavigator is the headless planar implementation.
package nav

import (
	"math"

	"github.com/cory-johannsen/arena/internal/game/geo"
	"github.com/cory-johannsen/arena/internal/game/rng"
)

// sampleAttempts bounds the rejection sampling loop in SampleReachable.
const sampleAttempts = 10

// Navigator is the movement capability an agent controller drives.
type Navigator interface {
	// SetGoal starts moving toward pos.
	SetGoal(pos geo.Vec2)
	// Halt stops all movement and clears the goal.
	Halt()
	// Position returns the current world position.
	Position() geo.Vec2
	// Velocity returns the current movement vector (zero when halted).
	Velocity() geo.Vec2
	// RemainingDistance returns the distance left to the current goal,
	// or 0 when halted.
	RemainingDistance() float64
	// Advance integrates position toward the goal by dt seconds of
	// travel. Called by the simulation's fixed-rate pass.
	Advance(dt float64)
	// SampleReachable picks a walkable point within radius of origin.
	// Returns false when no valid point was found; callers fall back to
	// a safe default.
	SampleReachable(origin geo.Vec2, radius float64) (geo.Vec2, bool)
}

// Rect is an axis-aligned walkable region.
type Rect struct {
	Min geo.Vec2
	Max geo.Vec2
}

// Contains reports whether p lies inside the region (closed interval).
func (r Rect) Contains(p geo.Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// PlaneNavigator moves in a straight line toward its goal across a
// rectangular walkable region. It is driven by the simulation's
// fixed-rate pass via Advance.
type PlaneNavigator struct {
	bounds Rect
	pos    geo.Vec2
	goal   geo.Vec2
	speed  float64
	moving bool
	src    rng.Source
}

// NewPlaneNavigator creates a stationary navigator at start.
//
// Precondition: speed > 0; src must not be nil.
func NewPlaneNavigator(bounds Rect, start geo.Vec2, speed float64, src rng.Source) *PlaneNavigator {
	return &PlaneNavigator{
		bounds: bounds,
		pos:    start,
		speed:  speed,
		src:    src,
	}
}

// SetGoal starts moving toward pos.
func (n *PlaneNavigator) SetGoal(pos geo.Vec2) {
	n.goal = pos
	n.moving = true
}

// Halt stops all movement and clears the goal.
func (n *PlaneNavigator) Halt() {
	n.moving = false
}

// Position returns the current world position.
func (n *PlaneNavigator) Position() geo.Vec2 { return n.pos }

// Velocity returns the current movement vector, zero when halted or at
// the goal.
func (n *PlaneNavigator) Velocity() geo.Vec2 {
	if !n.moving {
		return geo.Vec2{}
	}
	dir := n.goal.Sub(n.pos)
	if dir.IsZero() {
		return geo.Vec2{}
	}
	return dir.Normalize().Scale(n.speed)
}

// RemainingDistance returns the distance left to the goal, 0 when halted.
func (n *PlaneNavigator) RemainingDistance() float64 {
	if !n.moving {
		return 0
	}
	return geo.Distance(n.pos, n.goal)
}

// Advance integrates position toward the goal by speed*dt seconds of
// travel, halting on arrival.
//
// Precondition: dt >= 0 (seconds).
func (n *PlaneNavigator) Advance(dt float64) {
	if !n.moving {
		return
	}
	to := n.goal.Sub(n.pos)
	dist := to.Length()
	step := n.speed * dt
	if step >= dist {
		n.pos = n.goal
		n.moving = false
		return
	}
	n.pos = n.pos.Add(to.Normalize().Scale(step))
}

// SampleReachable rejection-samples a point in the disc around origin
// that lies inside the walkable region.
//
// Postcondition: on success the returned point is inside the region and
// within radius of origin.
func (n *PlaneNavigator) SampleReachable(origin geo.Vec2, radius float64) (geo.Vec2, bool) {
	for i := 0; i < sampleAttempts; i++ {
		r := radius * math.Sqrt(n.src.Float64())
		theta := 2 * math.Pi * n.src.Float64()
		p := origin.Add(geo.Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)})
		if n.bounds.Contains(p) {
			return p, true
		}
	}
	return geo.Vec2{}, false
}
