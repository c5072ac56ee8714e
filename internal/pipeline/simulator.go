// Package pipeline orders one frame: preset tracks, pointer motion and the
// camera advance in a Simulator, and a Frame turns the resulting Snapshot
// into pixels.
package pipeline

import (
	"comic-lens-renderer/internal/motion"
	"comic-lens-renderer/internal/preset"
	"comic-lens-renderer/internal/scene"
	"comic-lens-renderer/internal/style"
)

// Snapshot is everything a Frame needs to draw one image. It holds copies,
// so a snapshot stays valid while the simulator moves on.
type Snapshot struct {
	Time    float64
	State   style.LiveState
	Motion  motion.State
	Camera  scene.Camera
	Compare bool
	Flash   float64
	// Preset names the last selected preset, empty before the first.
	Preset  string
}

// Simulator owns the live state and every time-driven piece that writes to
// it. It is single-threaded: input calls and Step come from the frame loop.
type Simulator struct {
	Live    *style.LiveState
	Presets *preset.Engine
	Motion  *motion.Model
	Orbit   *scene.Orbit
	Camera  *scene.Camera
	// Compare shows the unstyled color pass while set.
	Compare bool
}

// NewSimulator starts from the raw look with the camera at its home
// position.
func NewSimulator(set *preset.Set, aspect float64) (*Simulator, error) {
	live := style.NewLiveState()
	engine, err := preset.NewEngine(set, live)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		Live:    live,
		Presets: engine,
		Motion:  motion.New(),
		Orbit:   scene.NewOrbit(),
		Camera:  scene.NewCamera(aspect),
	}, nil
}

// Step advances everything by dt seconds at wall time now and returns the
// state to draw. dt is clamped before any integration.
func (s *Simulator) Step(now, dt float64) Snapshot {
	dt = motion.ClampDt(dt)
	s.Presets.Update(dt)
	m := s.Motion.Update(dt)
	s.Orbit.Update(s.Camera, now, dt, m.Raw, m.Active)
	var name string
	if i := s.Presets.Active(); i >= 0 {
		name = s.Presets.Set().Presets[i].Name
	}
	return Snapshot{
		Time:    now,
		State:   *s.Live,
		Motion:  m,
		Camera:  *s.Camera,
		Compare: s.Compare,
		Flash:   s.Presets.Flash(),
		Preset:  name,
	}
}

// PointerMove forwards a pointer position in [0,1]² with y up.
func (s *Simulator) PointerMove(x, y float64) { s.Motion.PointerMove(x, y) }

// PointerActive opens or closes the lens.
func (s *Simulator) PointerActive(active bool) { s.Motion.PointerActive(active) }

// CycleLensMode switches to the next lens mode.
func (s *Simulator) CycleLensMode() style.LensMode {
	s.Live.SetLensMode(s.Live.LensMode.Next())
	return s.Live.LensMode
}

// Resize updates the camera aspect.
func (s *Simulator) Resize(w, h int) {
	if w > 0 && h > 0 {
		s.Camera.Aspect = float64(w) / float64(h)
	}
}
