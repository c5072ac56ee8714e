package preset

import "comic-lens-renderer/internal/style"

// Default timing of the startup reveal, in seconds.
const (
	RevealDelay = 1.5
	RevealFlash = 0.3
)

// reveal counts down to the moment the first preset replaces the raw look.
type reveal struct {
	delay   float64
	flash   float64
	elapsed float64
}

func (r *reveal) update(dt float64) bool {
	r.elapsed += dt
	return r.elapsed >= r.delay
}

// StartReveal resets the main style to the raw look and the scene colors to
// the first preset's, then schedules Select(0, false) after delay seconds.
// The last flash seconds before the switch are reported by Flash.
func (e *Engine) StartReveal(delay, flash float64) error {
	first, err := e.set.Get(0)
	if err != nil {
		return err
	}
	e.Cancel()
	e.live.Main = style.Raw()
	e.live.Scene = first.Colors
	partner, _ := e.set.Get(e.set.Partner(0))
	if lens, err := partner.Apply(e.live.Lens); err == nil {
		e.live.Lens = lens
	}
	if delay <= 0 {
		e.reveal = nil
		return e.Select(0, false)
	}
	if flash > delay {
		flash = delay
	}
	e.reveal = &reveal{delay: delay, flash: flash}
	return nil
}

// Revealing reports whether the startup reveal is still pending.
func (e *Engine) Revealing() bool { return e.reveal != nil }

// Flash returns the strength in [0,1] of the white flash that hides the
// switch from the raw look. It ramps up over the flash window and is zero
// otherwise.
func (e *Engine) Flash() float64 {
	r := e.reveal
	if r == nil || r.flash <= 0 {
		return 0
	}
	start := r.delay - r.flash
	if r.elapsed < start {
		return 0
	}
	return min(1, (r.elapsed-start)/r.flash)
}
