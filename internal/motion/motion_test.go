package motion

import (
	"math"
	"testing"

	"comic-lens-renderer/internal/mathutil"
)

const frame = 1.0 / 60

func TestClampDt(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, MinDt},
		{-1, MinDt},
		{math.NaN(), MinDt},
		{0.016, 0.016},
		{1, MaxDt},
		{math.Inf(1), MaxDt},
	}
	for _, tt := range tests {
		if got := ClampDt(tt.in); got != tt.want {
			t.Errorf("ClampDt(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSpringOpensToNominal(t *testing.T) {
	m := New()
	m.PointerActive(true)
	for i := 0; i < 120; i++ {
		m.Update(frame)
	}
	if r := m.State().Radius; math.Abs(r-LensRadius) > 1e-3 {
		t.Errorf("Radius = %f, want ~%f", r, LensRadius)
	}
}

func TestSpringSettlesToExactZero(t *testing.T) {
	m := New()
	m.PointerActive(true)
	for i := 0; i < 120; i++ {
		m.Update(frame)
	}
	m.PointerActive(false)

	prev := m.State().Radius
	closedAt := -1
	for i := 0; i < 120; i++ {
		s := m.Update(frame)
		if s.Radius > prev {
			t.Fatalf("frame %d: radius grew from %f to %f", i, prev, s.Radius)
		}
		prev = s.Radius
		if s.Radius == 0 {
			closedAt = i
			break
		}
	}
	if closedAt < 0 {
		t.Fatalf("radius %f did not reach zero", prev)
	}
	for i := 0; i < 60; i++ {
		if s := m.Update(frame); s.Radius != 0 || s.RadiusVel != 0 {
			t.Fatalf("frame %d after close: radius %g vel %g, want exact zero", i, s.Radius, s.RadiusVel)
		}
	}
}

func TestSpringStableAtHugeDt(t *testing.T) {
	m := New()
	m.PointerActive(true)
	for i := 0; i < 200; i++ {
		s := m.Update(10)
		if math.IsNaN(s.Radius) || s.Radius < 0 || s.Radius > 0.2 {
			t.Fatalf("frame %d: radius %f", i, s.Radius)
		}
	}
}

func framesUntil(v mathutil.Vec2, raw mathutil.Vec2, done func(mathutil.Vec2) bool) int {
	for n := 1; n < 1000; n++ {
		v = FilterVelocity(v, raw, frame)
		if done(v) {
			return n
		}
	}
	return 1000
}

func TestVelocityAttackFasterThanDecay(t *testing.T) {
	target := mathutil.Vec2{1, 0}
	attack := framesUntil(mathutil.Vec2{}, target, func(v mathutil.Vec2) bool { return v.Len() >= 0.9 })
	decay := framesUntil(target, mathutil.Vec2{}, func(v mathutil.Vec2) bool { return v.Len() <= 0.1 })
	if attack >= decay {
		t.Errorf("attack took %d frames, decay %d; want attack faster", attack, decay)
	}
}

func TestFollowerAdaptsToDistance(t *testing.T) {
	step := func(jump float64) float64 {
		m := New()
		m.PointerMove(0.5+jump, 0.5)
		s := m.Update(frame)
		return (s.Smoothed[0] - 0.5) / jump
	}
	if near, far := step(0.01), step(0.4); far <= near {
		t.Errorf("far jump covered %f per frame, near %f; want far faster", far, near)
	}
}

func TestFollowerConvergesAndVelocityDecays(t *testing.T) {
	m := New()
	m.PointerMove(0.9, 0.2)
	var s State
	for i := 0; i < 10; i++ {
		s = m.Update(frame)
	}
	if s.Velocity.Len() == 0 {
		t.Fatal("no velocity while moving")
	}
	if s.Velocity[0] <= 0 || s.Velocity[1] >= 0 {
		t.Errorf("Velocity = %v, want toward +x -y", s.Velocity)
	}
	for i := 0; i < 300; i++ {
		s = m.Update(frame)
	}
	if d := s.Smoothed.Sub(s.Raw).Len(); d > 1e-6 {
		t.Errorf("Smoothed %v still %g from raw", s.Smoothed, d)
	}
	if v := s.Velocity.Len(); v > 1e-3 {
		t.Errorf("Velocity %f after rest, want ~0", v)
	}
}
