package pipeline

import (
	"fmt"

	"comic-lens-renderer/internal/config"
	"comic-lens-renderer/internal/style"
)

// Script replays timed events against a Simulator. Events must be sorted by
// time, as config.Resolve leaves them.
type Script struct {
	events []config.Event
	next   int
}

func NewScript(events []config.Event) *Script {
	return &Script{events: events}
}

// Done reports whether every event has fired.
func (sc *Script) Done() bool { return sc.next >= len(sc.events) }

// Advance fires every pending event due at or before now.
func (sc *Script) Advance(now float64, sim *Simulator) error {
	for sc.next < len(sc.events) && sc.events[sc.next].At <= now {
		ev := sc.events[sc.next]
		sc.next++
		if err := Apply(sim, ev); err != nil {
			return fmt.Errorf("pipeline: event at %gs: %w", ev.At, err)
		}
	}
	return nil
}

// Apply performs one event. Pointer changes come before preset changes so a
// frame sees them together.
func Apply(sim *Simulator, ev config.Event) error {
	if ev.Pointer != nil {
		sim.PointerMove(ev.Pointer[0], ev.Pointer[1])
	}
	if ev.Lens != nil {
		sim.PointerActive(*ev.Lens)
	}
	if ev.Compare != nil {
		sim.Compare = *ev.Compare
	}
	if ev.LensMode != "" {
		m, err := style.ParseLensMode(ev.LensMode)
		if err != nil {
			return err
		}
		sim.Live.SetLensMode(m)
	}
	if ev.Preset != "" {
		if err := sim.Presets.SelectByName(ev.Preset, !ev.Instant); err != nil {
			return err
		}
	}
	for name, v := range ev.Set {
		if err := sim.Presets.SetParam(name, v); err != nil {
			return err
		}
	}
	for name, v := range ev.SetLens {
		if err := sim.Presets.SetLensParam(name, v); err != nil {
			return err
		}
	}
	return nil
}

// Record runs the simulator for frames steps at fps, firing script events as
// their time comes, and returns one snapshot per frame.
func Record(sim *Simulator, script *Script, frames int, fps float64) ([]Snapshot, error) {
	dt := 1 / fps
	snaps := make([]Snapshot, 0, frames)
	for i := 0; i < frames; i++ {
		now := float64(i) * dt
		if script != nil {
			if err := script.Advance(now, sim); err != nil {
				return nil, err
			}
		}
		snaps = append(snaps, sim.Step(now, dt))
	}
	return snaps, nil
}
