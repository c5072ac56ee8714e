// Package compositor turns the color, normal and depth buffers of one frame
// into a stylized comic image. Stages run per pixel in a fixed order and each
// one is a pass-through when its enable flag is off.
package compositor

import (
	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/raster"
	"comic-lens-renderer/internal/shaderlib"
	"comic-lens-renderer/internal/style"
)

// Inputs are the read-only per-frame data shared by every pixel.
type Inputs struct {
	Targets *raster.RenderTargets
	Near    float64
	Far     float64
	Time    float64 // seconds
}

// Resolution returns the frame size in pixels.
func (in *Inputs) Resolution() mathutil.Vec2 {
	return mathutil.Vec2{float64(in.Targets.Width), float64(in.Targets.Height)}
}

// Texel returns the size of one pixel in uv units.
func (in *Inputs) Texel() mathutil.Vec2 {
	return mathutil.Vec2{1 / float64(in.Targets.Width), 1 / float64(in.Targets.Height)}
}

// LinearDepth samples depth at uv and converts it to eye distance.
func (in *Inputs) LinearDepth(uv mathutil.Vec2) float64 {
	return shaderlib.LinearizeDepth(in.Targets.SampleDepth(uv), in.Near, in.Far)
}

// Context is the per-pixel state threaded through the stages.
type Context struct {
	In     *Inputs
	P      *style.Params
	BaseUV mathutil.Vec2 // pixel center, origin bottom-left
	UV     mathutil.Vec2 // sampling coordinate after wobble
	Texel  mathutil.Vec2
	Res    mathutil.Vec2
	// Source is the frame-wide output of the stages before a barrier.
	Source []float64
}

// NewContext builds the context for the pixel whose center is at baseUV.
func NewContext(in *Inputs, p *style.Params, baseUV mathutil.Vec2) *Context {
	return &Context{
		In:     in,
		P:      p,
		BaseUV: baseUV,
		UV:     baseUV,
		Texel:  in.Texel(),
		Res:    in.Resolution(),
	}
}

// Stage is one step of the stylization pipeline.
type Stage interface {
	Name() string
	Enabled(p *style.Params) bool
	Apply(c shaderlib.RGB, ctx *Context) shaderlib.RGB
}

// Barrier marks a stage that samples neighbouring pixels of the output of the
// stages before it. The runner finishes those stages for the whole frame
// first and exposes the result as Context.Source.
type Barrier interface {
	Stage
	Barrier()
}

// DefaultStages returns the pipeline in its fixed order.
func DefaultStages() []Stage {
	return []Stage{
		Wobble{},
		Cel{},
		Halftone{},
		Color{},
		Outline{},
		Misregistration{},
		Paper{},
	}
}

var (
	white   = shaderlib.RGB{1, 1, 1}
	inkTone = shaderlib.RGB{0.05, 0.03, 0.02}
)

// InkColor is the near-black warm ink used for outlines and the lens ring.
func InkColor() shaderlib.RGB { return inkTone }
