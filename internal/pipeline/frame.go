package pipeline

import (
	"fmt"
	"image"

	"comic-lens-renderer/internal/compositor"
	"comic-lens-renderer/internal/lens"
	"comic-lens-renderer/internal/logging"
	"comic-lens-renderer/internal/raster"
	"comic-lens-renderer/internal/scene"
	"comic-lens-renderer/internal/shaderlib"
)

// Frame renders snapshots of one scene. It owns a private copy of the scene
// and all buffers, so separate Frames may render concurrently while a single
// Frame may not.
type Frame struct {
	Scene      *scene.Scene
	Targets    *raster.RenderTargets
	Renderer   *raster.Renderer
	Compositor *compositor.Compositor
	Lens       *lens.Composer

	out []float64
}

// NewFrame clones sc and allocates w×h targets.
func NewFrame(sc *scene.Scene, w, h int) *Frame {
	return &Frame{
		Scene:      sc.Clone(),
		Targets:    raster.NewRenderTargets(w, h),
		Renderer:   raster.NewRenderer(),
		Compositor: compositor.New(),
		Lens:       lens.NewComposer(),
	}
}

// SetWorkers sets the goroutine count of the per-pixel passes.
func (f *Frame) SetWorkers(n int) {
	f.Compositor.Workers = n
	f.Lens.Workers = n
	f.Lens.Style.Workers = n
}

// Resize reallocates every buffer for the new size in one step.
func (f *Frame) Resize(w, h int) {
	if w == f.Targets.Width && h == f.Targets.Height {
		return
	}
	f.Targets.Resize(w, h)
	f.out = nil
	logging.Logger().Debug("frame resized", "width", w, "height", h)
}

// Render draws the scene, runs the main style, composites the lens and
// returns the 8-bit result. Compare snapshots return the lit color pass.
func (f *Frame) Render(s Snapshot) (*image.NRGBA, error) {
	w, h := f.Targets.Width, f.Targets.Height
	f.Scene.ApplyColors(s.State.Scene)
	cam := s.Camera
	cam.Aspect = float64(w) / float64(h)
	if err := f.Renderer.Render(f.Scene, &cam, s.Time, f.Targets); err != nil {
		return nil, fmt.Errorf("pipeline: render: %w", err)
	}
	if s.Compare {
		return f.Targets.ColorImage(), nil
	}

	in := &compositor.Inputs{Targets: f.Targets, Near: cam.Near, Far: cam.Far, Time: s.Time}
	if len(f.out) != w*h*3 {
		f.out = make([]float64, w*h*3)
	}
	f.Compositor.Render(in, &s.State.Main, image.Rect(0, 0, w, h), f.out)

	shape := lens.Shape{
		Center:   s.Motion.Smoothed,
		Velocity: s.Motion.Velocity,
		Radius:   s.Motion.Radius,
		Smooth:   lens.DefaultSmooth,
		Time:     s.Time,
		Aspect:   cam.Aspect,
	}
	f.Lens.Composite(in, s.State.LensMode, &s.State.Lens, shape, f.out)

	if s.Flash > 0 {
		flash(f.out, s.Flash)
	}
	return raster.ToNRGBA(f.out, w, h), nil
}

func flash(buf []float64, amount float64) {
	a := shaderlib.Clamp01(amount)
	for i := range buf {
		buf[i] = shaderlib.Mix(buf[i], 1, a)
	}
}
