package geo_test

import (
	"math"
	"testing"

	"github.com/cory-johannsen/arena/internal/game/geo"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestVec2_Normalize(t *testing.T) {
	v := geo.Vec2{X: 3, Y: 4}.Normalize()
	assert.InDelta(t, 0.6, v.X, 1e-9)
	assert.InDelta(t, 0.8, v.Y, 1e-9)
}

func TestVec2_Normalize_Zero(t *testing.T) {
	assert.Equal(t, geo.Vec2{}, geo.Vec2{}.Normalize())
}

func TestVec2_Property_NormalizeIsUnitOrZero(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := geo.Vec2{
			X: rapid.Float64Range(-100, 100).Draw(rt, "x"),
			Y: rapid.Float64Range(-100, 100).Draw(rt, "y"),
		}
		n := v.Normalize()
		if v.IsZero() {
			assert.True(rt, n.IsZero())
			return
		}
		assert.InDelta(rt, 1.0, n.Length(), 1e-9)
	})
}

func TestDistance(t *testing.T) {
	a := geo.Vec2{X: 1, Y: 1}
	b := geo.Vec2{X: 4, Y: 5}
	assert.InDelta(t, 5.0, geo.Distance(a, b), 1e-9)
}

func TestAngleBetweenDeg(t *testing.T) {
	tests := []struct {
		name string
		a, b geo.Vec2
		want float64
	}{
		{"same direction", geo.Vec2{X: 1}, geo.Vec2{X: 5}, 0},
		{"perpendicular", geo.Vec2{X: 1}, geo.Vec2{Y: 1}, 90},
		{"opposite", geo.Vec2{X: 1}, geo.Vec2{X: -1}, 180},
		{"45 degrees", geo.Vec2{X: 1}, geo.Vec2{X: 1, Y: 1}, 45},
		{"zero vector reports max", geo.Vec2{}, geo.Vec2{X: 1}, 180},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, geo.AngleBetweenDeg(tc.a, tc.b), 1e-9)
		})
	}
}

func TestAngleBetweenDeg_Property_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := geo.FromAngleDeg(rapid.Float64Range(0, 360).Draw(rt, "a"))
		b := geo.FromAngleDeg(rapid.Float64Range(0, 360).Draw(rt, "b"))
		got := geo.AngleBetweenDeg(a, b)
		assert.GreaterOrEqual(rt, got, 0.0)
		assert.LessOrEqual(rt, got, 180.0)
	})
}

func TestRotateTowardDeg_ReachesTargetWithinStep(t *testing.T) {
	current := geo.Vec2{X: 1}
	target := geo.Vec2{X: 1, Y: 1} // 45 degrees away
	got := geo.RotateTowardDeg(current, target, 90)
	assert.InDelta(t, 0.0, geo.AngleBetweenDeg(got, target), 1e-9)
}

func TestRotateTowardDeg_BoundedStep(t *testing.T) {
	current := geo.Vec2{X: 1}
	target := geo.Vec2{X: -1} // 180 degrees away
	got := geo.RotateTowardDeg(current, target, 30)
	assert.InDelta(t, 150, geo.AngleBetweenDeg(got, target), 1e-6)
}

func TestRotateTowardDeg_ZeroCurrentSnapsToTarget(t *testing.T) {
	target := geo.Vec2{X: 0, Y: 2}
	got := geo.RotateTowardDeg(geo.Vec2{}, target, 10)
	assert.InDelta(t, 0.0, geo.AngleBetweenDeg(got, target), 1e-9)
	assert.InDelta(t, 1.0, got.Length(), 1e-9)
}

func TestRotateTowardDeg_Property_NeverOvershootsAndNeverDiverges(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		current := geo.FromAngleDeg(rapid.Float64Range(0, 360).Draw(rt, "current"))
		target := geo.FromAngleDeg(rapid.Float64Range(0, 360).Draw(rt, "target"))
		step := rapid.Float64Range(0, 180).Draw(rt, "step")
		before := geo.AngleBetweenDeg(current, target)
		after := geo.AngleBetweenDeg(geo.RotateTowardDeg(current, target, step), target)
		assert.LessOrEqual(rt, after, before+1e-6)
	})
}

func TestFromAngleDeg_RoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, 135, 180, 270, 359} {
		v := geo.FromAngleDeg(deg)
		assert.InDelta(t, deg, v.AngleDeg(), 1e-6, "deg=%v", deg)
		assert.InDelta(t, 1.0, v.Length(), 1e-9)
	}
}

func TestVec2_AngleDeg_Zero(t *testing.T) {
	assert.Equal(t, 0.0, geo.Vec2{}.AngleDeg())
}

func TestVec2_ArithmeticIdentities(t *testing.T) {
	v := geo.Vec2{X: 2, Y: -3}
	assert.Equal(t, v, v.Add(geo.Vec2{}))
	assert.Equal(t, geo.Vec2{}, v.Sub(v))
	assert.InDelta(t, math.Sqrt(13), v.Length(), 1e-9)
	assert.Equal(t, geo.Vec2{X: 4, Y: -6}, v.Scale(2))
}
