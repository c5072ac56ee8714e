package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"comic-lens-renderer/internal/mathutil"
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position mathutil.Vec3
	Target   mathutil.Vec3
	FovY     float64 // degrees
	Aspect   float64
	Near     float64
	Far      float64
}

// NewCamera returns the default framing: 45° fov, near 0.1, far 100.
func NewCamera(aspect float64) *Camera {
	return &Camera{
		Position: mathutil.Vec3{5, 4, 7},
		Target:   mathutil.Vec3{0, 1.5, 0},
		FovY:     45,
		Aspect:   aspect,
		Near:     0.1,
		Far:      100,
	}
}

func toMgl(v mathutil.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(toMgl(c.Position), toMgl(c.Target), mgl64.Vec3{0, 1, 0})
}

func (c *Camera) Projection() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Orbit drives the camera around the scene when the user is not steering it.
// Pointer parallax nudges the look-at target.
type Orbit struct {
	Angle       float64
	Radius      float64
	Speed       float64 // radians per second
	ResumeDelay float64 // seconds of idleness before auto-orbit resumes
	Auto        bool

	idle float64
}

func NewOrbit() *Orbit {
	return &Orbit{
		Angle:       0.2,
		Radius:      9,
		Speed:       0.12,
		ResumeDelay: 4,
		Auto:        true,
	}
}

// Interrupt hands control to the user; auto-orbit resumes after ResumeDelay.
func (o *Orbit) Interrupt() {
	o.Auto = false
	o.idle = 0
}

// Update advances the orbit by dt seconds. now is the wall clock in seconds,
// pointer is the raw pointer in [0,1]² with y up.
func (o *Orbit) Update(cam *Camera, now, dt float64, pointer mathutil.Vec2, lensActive bool) {
	if !o.Auto {
		o.idle += dt
		if o.idle > o.ResumeDelay && !lensActive {
			o.Auto = true
			o.Angle = math.Atan2(cam.Position[0], cam.Position[2])
		}
		return
	}

	o.Angle += o.Speed * dt
	angle := o.Angle + math.Sin(o.Angle*0.3)*0.15
	target := mathutil.Vec3{
		math.Sin(angle) * o.Radius,
		4 + math.Sin(now*0.08)*0.4 + math.Sin(now*0.031)*0.2,
		math.Cos(angle) * o.Radius,
	}
	blend := 1 - math.Exp(-2.5*dt)
	cam.Position = cam.Position.Lerp(target, blend)

	px := (pointer[0] - 0.5) * 0.5
	py := (pointer[1] - 0.5) * 0.3
	cam.Target = mathutil.Vec3{px, 1.5 + py, 0}
}
