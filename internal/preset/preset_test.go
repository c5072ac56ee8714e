package preset

import (
	"errors"
	"math"
	"testing"

	"comic-lens-renderer/internal/shaderlib"
	"comic-lens-renderer/internal/style"
)

func newEngine(t *testing.T) (*Engine, *style.LiveState) {
	t.Helper()
	live := style.NewLiveState()
	e, err := NewEngine(Builtin(), live)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e, live
}

func mustApply(t *testing.T, p Preset, base style.Params) style.Params {
	t.Helper()
	out, err := p.Apply(base)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestBuiltinValid(t *testing.T) {
	s := Builtin()
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", s.Len())
	}
	for i := range s.Presets {
		if p := s.Partner(i); p == i {
			t.Errorf("preset %d pairs with itself", i)
		}
	}
	if s.Presets[0].Name != "Comic Book" || s.Partner(0) != 2 || s.Presets[2].Name != "Noir" {
		t.Error("Comic Book should pair with Noir")
	}
}

func TestIndexAndUnknown(t *testing.T) {
	s := Builtin()
	if i, err := s.Index("vintage print"); err != nil || i != 4 {
		t.Errorf("Index(vintage print) = %d, %v, want 4", i, err)
	}
	if _, err := s.Index("watercolor"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Index(watercolor) error = %v, want ErrUnknownPreset", err)
	}
	if _, err := s.Get(6); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Get(6) error = %v, want ErrUnknownPreset", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		p    Preset
	}{
		{"unknown param", Preset{Name: "x", Values: map[string]float64{"glowAmount": 1}}},
		{"out of range", Preset{Name: "x", Values: map[string]float64{"celBands": 12}}},
		{"nan", Preset{Name: "x", Values: map[string]float64{"celBands": math.NaN()}}},
		{"no name", Preset{Values: map[string]float64{"celBands": 4}}},
		{"negative fog", Preset{Name: "x", Colors: style.SceneColors{FogDensity: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.p); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
	err := Validate(Preset{Name: "x", Values: map[string]float64{"glowAmount": 1}})
	if !errors.Is(err, style.ErrUnknownParam) {
		t.Errorf("error = %v, want ErrUnknownParam", err)
	}
}

func TestSelectBoundaries(t *testing.T) {
	e, live := newEngine(t)
	before := live.Main

	if err := e.Select(1, true); err != nil {
		t.Fatal(err)
	}
	if live.Main != before {
		t.Fatal("live values changed at t=0")
	}
	e.Update(0)
	if live.Main != before {
		t.Fatal("live values changed after a zero-length frame")
	}

	want := mustApply(t, Builtin().Presets[1], before)
	e.Update(0.3)
	eased := 0.875 // 1-(1-0.5)^3
	mid := before.OutlineThickness + (want.OutlineThickness-before.OutlineThickness)*eased
	if math.Abs(live.Main.OutlineThickness-mid) > 1e-6 {
		t.Errorf("OutlineThickness at half time = %f, want ~%f", live.Main.OutlineThickness, mid)
	}

	e.Update(0.3)
	if live.Main != want {
		t.Errorf("Main after duration = %+v, want %+v", live.Main, want)
	}
	if !e.Busy() {
		t.Error("color track should outlast the parameter track")
	}
	e.Update(0.3)
	if e.Busy() {
		t.Error("still busy after both durations")
	}
	if live.Scene != Builtin().Presets[1].Colors {
		t.Errorf("Scene = %+v, want Pop Art colors", live.Scene)
	}
}

func TestSelectSetsLensPartnerInstantly(t *testing.T) {
	e, live := newEngine(t)
	if err := e.Select(3, true); err != nil {
		t.Fatal(err)
	}
	set := Builtin()
	want := mustApply(t, set.Presets[set.Partner(3)], style.DefaultLens())
	if live.Lens != want {
		t.Errorf("Lens = %+v, want Comic Book values", live.Lens)
	}
}

func TestInstantSelect(t *testing.T) {
	e, live := newEngine(t)
	if err := e.SelectByName("clean", false); err != nil {
		t.Fatal(err)
	}
	if e.Busy() {
		t.Error("instant select left a track running")
	}
	if live.Main.EnableHalftone != 0 || live.Main.CelBands != 5 {
		t.Errorf("Main = %+v, want Clean values", live.Main)
	}
	if live.Scene.Background != shaderlib.Hex(0xf5f5f5) {
		t.Errorf("Background = %v", live.Scene.Background)
	}
	if e.Active() != 5 {
		t.Errorf("Active() = %d, want 5", e.Active())
	}
}

func TestSetParamCancelsParamTrack(t *testing.T) {
	e, live := newEngine(t)
	if err := e.Select(1, true); err != nil {
		t.Fatal(err)
	}
	e.Update(0.3)
	held := live.Main.OutlineThickness

	if err := e.SetParam("celBands", 7); err != nil {
		t.Fatal(err)
	}
	e.Update(1)
	if live.Main.CelBands != 7 {
		t.Errorf("CelBands = %f, want 7", live.Main.CelBands)
	}
	if live.Main.OutlineThickness != held {
		t.Errorf("OutlineThickness = %f, want held at %f", live.Main.OutlineThickness, held)
	}
	if live.Scene != Builtin().Presets[1].Colors {
		t.Error("color track should keep running after a raw edit")
	}
	if err := e.SetParam("glowAmount", 1); !errors.Is(err, style.ErrUnknownParam) {
		t.Errorf("SetParam(glowAmount) error = %v, want ErrUnknownParam", err)
	}
}

func TestReselectRestartsFromCurrent(t *testing.T) {
	e, live := newEngine(t)
	if err := e.Select(1, true); err != nil {
		t.Fatal(err)
	}
	e.Update(0.2)
	mid := live.Main
	if err := e.Select(3, true); err != nil {
		t.Fatal(err)
	}
	if live.Main != mid {
		t.Error("second select moved values at t=0")
	}
	e.Update(1)
	if want := mustApply(t, Builtin().Presets[3], mid); live.Main != want {
		t.Errorf("Main = %+v, want Manga values", live.Main)
	}
}

func TestReveal(t *testing.T) {
	e, live := newEngine(t)
	live.Main = style.DefaultMain()
	if err := e.StartReveal(RevealDelay, RevealFlash); err != nil {
		t.Fatal(err)
	}
	if live.Main != style.Raw() {
		t.Error("reveal should start from the raw look")
	}
	if live.Scene != Builtin().Presets[0].Colors {
		t.Error("reveal should start with the first preset's colors")
	}

	e.Update(1.0)
	if !e.Revealing() || e.Flash() != 0 {
		t.Errorf("at 1.0s: Revealing=%v Flash=%f", e.Revealing(), e.Flash())
	}
	e.Update(0.35)
	if f := e.Flash(); f < 0.4 || f > 0.6 {
		t.Errorf("Flash at 1.35s = %f, want ~0.5", f)
	}
	e.Update(0.2)
	if e.Revealing() {
		t.Fatal("reveal still pending after delay")
	}
	if live.Main != style.DefaultMain() {
		t.Errorf("Main after reveal = %+v, want Comic Book", live.Main)
	}
	if e.Busy() {
		t.Error("reveal should apply the first preset without animation")
	}
}
