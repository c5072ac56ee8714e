package pipeline

import (
	"errors"
	"testing"

	"comic-lens-renderer/internal/config"
	"comic-lens-renderer/internal/preset"
	"comic-lens-renderer/internal/scene"
	"comic-lens-renderer/internal/style"
)

func newSim(t *testing.T) *Simulator {
	t.Helper()
	sim, err := NewSimulator(preset.Builtin(), 4.0/3)
	if err != nil {
		t.Fatal(err)
	}
	return sim
}

func boolp(b bool) *bool { return &b }

func TestSnapshotIsACopy(t *testing.T) {
	sim := newSim(t)
	snap := sim.Step(0, 1.0/60)
	sim.Live.Main.CelBands = 7
	sim.Camera.Position[0] = 100
	if snap.State.Main.CelBands == 7 || snap.Camera.Position[0] == 100 {
		t.Error("snapshot shares memory with the simulator")
	}
}

func TestRecordFinishesPresetTrack(t *testing.T) {
	sim := newSim(t)
	script := NewScript([]config.Event{{At: 0, Preset: "Comic Book"}})
	snaps, err := Record(sim, script, 60, 60)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 60 {
		t.Fatalf("len(snaps) = %d, want 60", len(snaps))
	}
	if snaps[0].State.Main == style.DefaultMain() {
		t.Error("first frame already shows the target values")
	}
	if got := snaps[59].State.Main; got != style.DefaultMain() {
		t.Errorf("last frame Main = %+v, want Comic Book", got)
	}
	if !script.Done() {
		t.Error("script has pending events")
	}
}

func TestScriptDrivesLens(t *testing.T) {
	sim := newSim(t)
	script := NewScript([]config.Event{
		{At: 0, Pointer: &[2]float64{0.3, 0.7}, Lens: boolp(true), LensMode: "void"},
		{At: 1, Lens: boolp(false)},
	})
	snaps, err := Record(sim, script, 120, 60)
	if err != nil {
		t.Fatal(err)
	}
	open := snaps[59]
	if open.Motion.Radius < 0.05 || open.State.LensMode != style.LensVoid {
		t.Errorf("at 1s: radius %f mode %v", open.Motion.Radius, open.State.LensMode)
	}
	if r := snaps[119].Motion.Radius; r != 0 {
		t.Errorf("radius 1s after release = %f, want 0", r)
	}
}

func TestScriptErrors(t *testing.T) {
	sim := newSim(t)
	script := NewScript([]config.Event{{At: 0, Preset: "Watercolor"}})
	if err := script.Advance(0, sim); !errors.Is(err, preset.ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
	err := Apply(sim, config.Event{Set: map[string]float64{"inkBleed": 1}})
	if !errors.Is(err, style.ErrUnknownParam) {
		t.Errorf("err = %v, want ErrUnknownParam", err)
	}
}

func TestCycleLensMode(t *testing.T) {
	sim := newSim(t)
	seen := map[style.LensMode]bool{sim.Live.LensMode: true}
	for i := 0; i < 3; i++ {
		seen[sim.CycleLensMode()] = true
	}
	if len(seen) != 4 {
		t.Errorf("cycled through %d modes, want 4", len(seen))
	}
	if sim.CycleLensMode() != style.LensSketch {
		t.Error("cycle should wrap back to sketch")
	}
}

func TestFrameRender(t *testing.T) {
	sim := newSim(t)
	if err := sim.Presets.Select(0, false); err != nil {
		t.Fatal(err)
	}
	sim.PointerMove(0.5, 0.5)
	sim.PointerActive(true)
	var snap Snapshot
	for i := 0; i < 30; i++ {
		snap = sim.Step(float64(i)/60, 1.0/60)
	}

	f := NewFrame(scene.NewDemo(), 48, 36)
	f.SetWorkers(2)
	styled, err := f.Render(snap)
	if err != nil {
		t.Fatal(err)
	}
	if b := styled.Bounds(); b.Dx() != 48 || b.Dy() != 36 {
		t.Fatalf("bounds = %v", b)
	}

	snap.Compare = true
	raw, err := f.Render(snap)
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range raw.Pix {
		if raw.Pix[i] != styled.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("styled frame equals the compare frame")
	}

	f.Resize(24, 18)
	small, err := f.Render(snap)
	if err != nil {
		t.Fatal(err)
	}
	if b := small.Bounds(); b.Dx() != 24 || b.Dy() != 18 {
		t.Errorf("bounds after resize = %v", b)
	}
	if !f.Targets.Consistent() {
		t.Error("targets inconsistent after resize")
	}
}

func TestFlashWhitensFrame(t *testing.T) {
	sim := newSim(t)
	snap := sim.Step(0, 1.0/60)
	snap.Flash = 1
	img, err := NewFrame(scene.NewDemo(), 16, 12).Render(snap)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range img.Pix {
		if v != 255 {
			t.Fatalf("Pix[%d] = %d, want 255 under full flash", i, v)
		}
	}
}

func TestSetup(t *testing.T) {
	cfg := config.Config{Preset: "noir", LensMode: "x-ray", FOV: 30}
	cfg.Resolve(config.Flags{})
	sc, sim, err := Setup(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Objects) == 0 {
		t.Error("demo scene has no objects")
	}
	if sim.Live.LensMode != style.LensNormals || sim.Camera.FovY != 30 {
		t.Errorf("lens %v fov %v", sim.Live.LensMode, sim.Camera.FovY)
	}
	if sim.Live.Main != style.DefaultLens() {
		t.Error("Noir preset not applied")
	}

	cfg.Reveal = true
	_, sim, err = Setup(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !sim.Presets.Revealing() || sim.Live.Main != style.Raw() {
		t.Error("reveal should start from the raw look")
	}

	cfg.Reveal = false
	cfg.Preset = "Pastel"
	if _, _, err := Setup(&cfg); !errors.Is(err, preset.ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
}
