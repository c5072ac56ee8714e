// Package lens draws a pointer-following window that shows an alternate
// rendering of the frame through a living, deformed circular boundary.
package lens

import (
	"image"
	"math"

	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/shaderlib"
)

const (
	// DefaultSmooth is the width of the soft mask edge in aspect-corrected uv.
	DefaultSmooth = 0.022
	// MinRadius is the radius below which the lens is treated as closed.
	MinRadius = 0.001
	// minMask is the mask value below which a pixel skips lens rendering.
	minMask = 0.001
	// minSpeed protects the velocity direction against division by zero.
	minSpeed = 1e-4
)

// Shape is the lens geometry for one frame. Center and Velocity are in uv
// units with the origin at the bottom-left.
type Shape struct {
	Center   mathutil.Vec2
	Velocity mathutil.Vec2
	Radius   float64
	Smooth   float64
	Time     float64
	Aspect   float64 // width / height
}

// Active reports whether the lens is open far enough to draw.
func (s Shape) Active() bool { return s.Radius > MinRadius }

// Polar is the deformed polar position of a pixel relative to the lens center.
type Polar struct {
	Theta   float64
	Dist    float64
	EffDist float64 // Dist plus boundary deformation
}

// Deform returns the polar coordinates of uv with the idle wobble, motion
// wobble and meteor stretch added to the radial distance.
func (s Shape) Deform(uv mathutil.Vec2) Polar {
	m := mathutil.Vec2{s.Center[0] * s.Aspect, s.Center[1]}
	p := mathutil.Vec2{uv[0] * s.Aspect, uv[1]}
	delta := p.Sub(m)
	dist := delta.Len()
	theta := math.Atan2(delta[1], delta[0])

	speed := s.Velocity.Len()
	velDir := s.Velocity.Scale(1 / math.Max(speed, minSpeed))
	nDelta := delta.Add(mathutil.Vec2{minSpeed, minSpeed}).Normalize()

	d := IdleWobble(theta, s.Time) +
		MotionWobble(theta, s.Time, speed, s.Radius) +
		Meteor(nDelta.Dot(velDir), speed, s.Radius)
	return Polar{Theta: theta, Dist: dist, EffDist: dist + d}
}

// IdleWobble is the boundary offset present even when the pointer rests. The
// phase rates share no small integer ratio so the outline never visibly loops.
func IdleWobble(theta, t float64) float64 {
	breath := math.Sin(t*0.41)*0.003 + math.Sin(t*0.17)*0.002
	wb := (shaderlib.Noise2(theta*3+t*0.71, t*0.31) - 0.5) * 0.018
	wb += (shaderlib.Noise2(theta*8-t*1.15, t*0.51+5) - 0.5) * 0.010
	wb += (shaderlib.Noise2(theta*5+t*1.86, t*0.83+11) - 0.5) * 0.006
	wb += math.Sin(theta*2+t*0.53) * 0.004
	return wb + breath
}

// MotionWobble adds speed-driven ripple scaled by the radius.
func MotionWobble(theta, t, speed, radius float64) float64 {
	mw := (shaderlib.Noise2(theta*5+t*2.5, t*1.1) - 0.5) * speed * 0.05 * radius
	mw += (shaderlib.Noise2(theta*11-t*1.7, speed*2+3) - 0.5) * speed * 0.03 * radius
	return mw
}

// Meteor stretches the boundary behind the direction of travel and tightens
// it in front. dirDot is the cosine between the pixel direction and the
// velocity. A negative result pushes the boundary outward.
func Meteor(dirDot, speed, radius float64) float64 {
	behind := math.Max(-dirDot, 0)
	ahead := math.Max(dirDot, 0)
	tail := math.Pow(behind, 0.35)*speed*0.12*radius + math.Pow(behind, 2)*speed*0.06*radius
	front := math.Pow(ahead, 0.8) * speed * 0.03 * radius
	return front - tail
}

// Mask is 1 inside the deformed lens, 0 outside, with a soft edge of width
// Smooth.
func (s Shape) Mask(p Polar) float64 {
	return 1 - shaderlib.Smoothstep(s.Radius-s.Smooth, s.Radius, p.EffDist)
}

// Ring returns the opacity of the ink ring drawn on the deformed boundary.
// Width and density wander with noise and the width breathes slowly.
func (s Shape) Ring(p Polar) float64 {
	t := s.Time
	breath := 1 + math.Sin(t*0.61)*0.12
	w := shaderlib.Mix(0.003, 0.009, shaderlib.Noise2(p.Theta*5, t*0.18)) * breath
	ring := 1 - shaderlib.Smoothstep(0, w, math.Abs(p.EffDist-s.Radius))
	density := 0.75 + shaderlib.Noise2(p.Theta*3+7, t*0.12)*0.25
	return ring * density
}

// reach bounds how far the deformed boundary and its ring can extend from
// the center, in aspect-corrected uv.
func (s Shape) reach() float64 {
	speed := s.Velocity.Len()
	idle := 0.009 + 0.005 + 0.003 + 0.004 + 0.005
	motion := speed * s.Radius * (0.025 + 0.015 + 0.12 + 0.06)
	return s.Radius + idle + motion + 0.009*1.12
}

// Bounds returns the pixel rectangle outside which the mask and the ring are
// both zero, padded by two pixels and clipped to the frame.
func (s Shape) Bounds(w, h int) image.Rectangle {
	if !s.Active() {
		return image.Rectangle{}
	}
	r := s.reach()
	aspect := s.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	x0 := (s.Center[0] - r/aspect) * float64(w)
	x1 := (s.Center[0] + r/aspect) * float64(w)
	y0 := (1 - s.Center[1] - r) * float64(h)
	y1 := (1 - s.Center[1] + r) * float64(h)
	rect := image.Rect(int(math.Floor(x0))-2, int(math.Floor(y0))-2, int(math.Ceil(x1))+2, int(math.Ceil(y1))+2)
	return rect.Intersect(image.Rect(0, 0, w, h))
}
