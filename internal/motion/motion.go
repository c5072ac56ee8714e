// Package motion turns raw pointer input into the smoothed lens position,
// velocity and radius consumed by the lens each frame.
package motion

import (
	"math"

	"comic-lens-renderer/internal/mathutil"
)

// Tuning of the pointer follower, velocity filter and radius spring.
const (
	FollowBase   = 8.0
	FollowGain   = 40.0
	AttackRate   = 12.0
	DecayRate    = 4.0
	Stiffness    = 160.0
	Damping      = 17.0
	LensRadius   = 0.08
	RestEpsilon  = 0.005
	MinDt, MaxDt = 0.001, 0.05
)

// ClampDt limits a frame delta to [MinDt, MaxDt] so exponential factors stay
// in [0,1] and the spring cannot diverge.
func ClampDt(dt float64) float64 {
	if math.IsNaN(dt) {
		return MinDt
	}
	return math.Min(math.Max(dt, MinDt), MaxDt)
}

// FollowFactor is the frame-rate independent blend toward a target moving
// at rate per second.
func FollowFactor(rate, dt float64) float64 {
	return 1 - math.Exp(-rate*dt)
}

// FilterVelocity moves current toward raw, quickly when raw is faster than
// current and slowly when it is slower.
func FilterVelocity(current, raw mathutil.Vec2, dt float64) mathutil.Vec2 {
	rate := DecayRate
	if raw.Len() > current.Len() {
		rate = AttackRate
	}
	return current.Add(raw.Sub(current).Scale(FollowFactor(rate, dt)))
}

// State is the pointer and lens state. Positions are normalized viewport
// coordinates with y increasing upward.
type State struct {
	Raw          mathutil.Vec2
	Smoothed     mathutil.Vec2
	PrevSmoothed mathutil.Vec2
	Velocity     mathutil.Vec2
	Radius       float64
	RadiusVel    float64
	Active       bool
}

// Model owns the pointer state. Input events may arrive at any time between
// frames; Update integrates once per frame.
type Model struct {
	s State
	// Nominal is the radius the lens opens to.
	Nominal float64
}

// New starts with the pointer centered and the lens closed.
func New() *Model {
	c := mathutil.Vec2{0.5, 0.5}
	return &Model{
		s:       State{Raw: c, Smoothed: c, PrevSmoothed: c},
		Nominal: LensRadius,
	}
}

// PointerMove records the raw pointer position in [0,1]².
func (m *Model) PointerMove(x, y float64) {
	m.s.Raw = mathutil.Vec2{x, y}
}

// PointerActive opens or closes the lens.
func (m *Model) PointerActive(active bool) {
	m.s.Active = active
}

// State returns a copy of the current state.
func (m *Model) State() State { return m.s }

// Update advances the follower, the velocity filter and the radius spring by
// dt, which is clamped first. All three run every frame, including while
// the lens is closed, so nothing jumps when it reopens.
func (m *Model) Update(dt float64) State {
	dt = ClampDt(dt)
	s := &m.s

	dist := s.Raw.Sub(s.Smoothed).Len()
	f := FollowFactor(FollowBase+dist*FollowGain, dt)
	s.Smoothed = s.Smoothed.Add(s.Raw.Sub(s.Smoothed).Scale(f))

	rawVel := s.Smoothed.Sub(s.PrevSmoothed).Scale(1 / dt)
	s.Velocity = FilterVelocity(s.Velocity, rawVel, dt)
	s.PrevSmoothed = s.Smoothed

	target := 0.0
	if s.Active {
		target = m.Nominal
	}
	s.RadiusVel += (Stiffness*(target-s.Radius) - Damping*s.RadiusVel) * dt
	s.Radius = math.Max(0, s.Radius+s.RadiusVel*dt)
	if !s.Active && s.Radius < RestEpsilon {
		s.Radius = 0
		s.RadiusVel = 0
	}
	return *s
}
