// Package input defines the input capability consumed by the player
// controller. The core only ever sees clamped axis values and discrete
// "action requested this tick" events; device polling and key mapping
// live outside the simulation.
package input

// Standard axis and action names used by the player controller.
const (
	AxisHorizontal = "horizontal"
	AxisVertical   = "vertical"
	ActionAttack   = "attack"
	ActionSpecial  = "special"
)

// Reader is the per-tick input view. Axis values are continuous and
// clamped; WasPressed reports a discrete press event for the current
// tick only (edge-triggered, never true across consecutive ticks for a
// held key).
type Reader interface {
	// Axis returns the named axis value in [-1, 1].
	Axis(name string) float64
	// WasPressed reports whether the named action was requested this tick.
	WasPressed(action string) bool
}

// Frame is one tick's worth of input.
type Frame struct {
	Axes    map[string]float64
	Pressed map[string]bool
}

// Script replays a fixed sequence of input frames. It backs the demo
// binary and deterministic tests; after the last frame it reports
// neutral input forever.
type Script struct {
	frames []Frame
	index  int
}

// NewScript creates a Script over the given frames.
func NewScript(frames ...Frame) *Script {
	return &Script{frames: frames}
}

// Axis returns the current frame's axis value clamped to [-1, 1].
func (s *Script) Axis(name string) float64 {
	f, ok := s.current()
	if !ok {
		return 0
	}
	v := f.Axes[name]
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// WasPressed reports the current frame's press event for action.
func (s *Script) WasPressed(action string) bool {
	f, ok := s.current()
	if !ok {
		return false
	}
	return f.Pressed[action]
}

// Step advances to the next frame. Press events from the previous frame
// are gone: a "held" key must re-appear as a new press to fire again.
func (s *Script) Step() {
	if s.index < len(s.frames) {
		s.index++
	}
}

// Exhausted reports whether the script has run out of frames.
func (s *Script) Exhausted() bool {
	return s.index >= len(s.frames)
}

func (s *Script) current() (Frame, bool) {
	if s.index >= len(s.frames) {
		return Frame{}, false
	}
	return s.frames[s.index], true
}
