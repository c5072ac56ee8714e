package preset

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"comic-lens-renderer/internal/logging"
	"comic-lens-renderer/internal/style"
)

// Animation lengths of the two independent tracks, in seconds.
const (
	ParamDuration = 0.6
	ColorDuration = 0.8
)

// binding drives one live field from start to target.
type binding struct {
	field  *float64
	start  float64
	target float64
}

// track eases a set of bindings together. The tween runs 0→1 and only
// supplies eased progress; values are computed in float64 from it so a
// track that has not advanced leaves its fields bit-for-bit unchanged.
type track struct {
	tween    *gween.Tween
	bindings []binding
}

func newTrack(duration float64, b []binding) *track {
	return &track{
		tween:    gween.New(0, 1, float32(duration), ease.OutCubic),
		bindings: b,
	}
}

// update advances the track and reports whether it finished. A finished
// track leaves every field exactly at its target.
func (t *track) update(dt float64) bool {
	e, done := t.tween.Update(float32(dt))
	for _, b := range t.bindings {
		if done {
			*b.field = b.target
			continue
		}
		*b.field = b.start + (b.target-b.start)*float64(e)
	}
	return done
}

// Engine applies presets to a LiveState. It is driven from the frame loop
// and is not safe for concurrent use.
type Engine struct {
	set    *Set
	live   *style.LiveState
	params *track
	colors *track
	active int
	reveal *reveal
}

// NewEngine binds the preset set to live. The set is validated up front.
func NewEngine(set *Set, live *style.LiveState) (*Engine, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &Engine{set: set, live: live, active: -1}, nil
}

// Set returns the preset list the engine selects from.
func (e *Engine) Set() *Set { return e.set }

// Active returns the index of the last selected preset, or -1.
func (e *Engine) Active() int { return e.active }

// Busy reports whether a parameter or color track is still running.
func (e *Engine) Busy() bool { return e.params != nil || e.colors != nil }

// Cancel stops both tracks, leaving the live values where they are.
func (e *Engine) Cancel() {
	e.params = nil
	e.colors = nil
}

// Select makes preset i active. With animate the main parameters ease over
// ParamDuration and the scene colors over ColorDuration; otherwise both are
// written at once. Any running track is cancelled first. The lens style jumps
// to the preset's contrast partner without animation.
func (e *Engine) Select(i int, animate bool) error {
	p, err := e.set.Get(i)
	if err != nil {
		return err
	}
	e.Cancel()

	params, err := e.paramBindings(p)
	if err != nil {
		return err
	}
	colors := e.colorBindings(p)
	if animate {
		e.params = newTrack(ParamDuration, params)
		e.colors = newTrack(ColorDuration, colors)
	} else {
		apply(params)
		apply(colors)
	}

	partner, _ := e.set.Get(e.set.Partner(i))
	lens, err := partner.Apply(e.live.Lens)
	if err != nil {
		return err
	}
	e.live.Lens = lens
	e.active = i
	logging.Logger().Debug("preset selected", "name", p.Name, "lens", partner.Name, "animate", animate)
	return nil
}

// SelectByName is Select by case-insensitive preset name.
func (e *Engine) SelectByName(name string, animate bool) error {
	i, err := e.set.Index(name)
	if err != nil {
		return err
	}
	return e.Select(i, animate)
}

// Next selects the preset after the active one, wrapping around.
func (e *Engine) Next(animate bool) error {
	return e.Select((e.active+1)%e.set.Len(), animate)
}

// SetParam edits one main parameter directly. A running parameter track is
// cancelled first so the edit is never overwritten; the color track keeps
// running.
func (e *Engine) SetParam(name string, v float64) error {
	if _, ok := style.Lookup(name); !ok {
		return fmt.Errorf("preset: set %s: %w", name, style.ErrUnknownParam)
	}
	e.params = nil
	return e.live.SetMain(name, v)
}

// SetLensParam edits one lens parameter directly.
func (e *Engine) SetLensParam(name string, v float64) error {
	return e.live.SetLens(name, v)
}

// Update advances the running tracks by dt seconds and fires a pending
// reveal once its delay has passed.
func (e *Engine) Update(dt float64) {
	if e.reveal != nil && e.reveal.update(dt) {
		e.reveal = nil
		if err := e.Select(0, false); err != nil {
			logging.Logger().Warn("preset reveal failed", "err", err)
		}
	}
	if e.params != nil && e.params.update(dt) {
		e.params = nil
	}
	if e.colors != nil && e.colors.update(dt) {
		e.colors = nil
	}
}

func (e *Engine) paramBindings(p Preset) ([]binding, error) {
	b := make([]binding, 0, len(p.Values))
	for name, v := range p.Values {
		ptr, err := e.live.Main.Ptr(name)
		if err != nil {
			return nil, fmt.Errorf("preset: select %s: %w", p.Name, err)
		}
		f, _ := style.Lookup(name)
		b = append(b, binding{field: ptr, start: *ptr, target: f.Clamp(v)})
	}
	return b, nil
}

func (e *Engine) colorBindings(p Preset) []binding {
	sc := &e.live.Scene
	b := make([]binding, 0, 10)
	for k := 0; k < 3; k++ {
		b = append(b,
			binding{field: &sc.Background[k], start: sc.Background[k], target: p.Colors.Background[k]},
			binding{field: &sc.Ground[k], start: sc.Ground[k], target: p.Colors.Ground[k]},
			binding{field: &sc.Fog[k], start: sc.Fog[k], target: p.Colors.Fog[k]},
		)
	}
	return append(b, binding{field: &sc.FogDensity, start: sc.FogDensity, target: p.Colors.FogDensity})
}

func apply(bs []binding) {
	for _, b := range bs {
		*b.field = b.target
	}
}
