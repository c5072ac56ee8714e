package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"comic-lens-renderer/internal/style"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "comic.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	path := writeConfig(t, `{
		"output_dir": "out",
		"model_path": "models/helmet.glb",
		"width": 320,
		"preset": "Noir",
		"script": [
			{"at": 2.0, "preset": "Manga"},
			{"at": 0.5, "lens": true, "pointer": [0.3, 0.6]}
		]
	}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{})

	dir := filepath.Dir(path)
	if cfg.OutputDir != filepath.Join(dir, "out") {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.ModelPath != filepath.Join(dir, "models", "helmet.glb") {
		t.Errorf("ModelPath = %q", cfg.ModelPath)
	}
	if cfg.Width != 320 || cfg.Height != 360 {
		t.Errorf("size = %dx%d, want 320x360", cfg.Width, cfg.Height)
	}
	if cfg.Preset != "Noir" {
		t.Errorf("Preset = %q, want Noir", cfg.Preset)
	}
	if len(cfg.Script) != 2 || cfg.Script[0].At != 0.5 {
		t.Fatalf("Script not sorted by time: %+v", cfg.Script)
	}
	if ev := cfg.Script[0]; ev.Lens == nil || !*ev.Lens || ev.Pointer == nil || ev.Pointer[1] != 0.6 {
		t.Errorf("first event = %+v", ev)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load(missing) = nil error")
	}
	if _, err := Load(writeConfig(t, `{"width": "wide"}`)); err == nil {
		t.Error("Load(bad json) = nil error")
	}
}

func TestResolveDefaultsAndFlags(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{Frames: 12, Format: "png", Preset: "Clean", LensMode: "void"})

	if cfg.Frames != 12 || cfg.Format != "png" || cfg.Preset != "Clean" || cfg.LensMode != "void" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.FPS != 30 || cfg.Supersample != 1 || cfg.Workers != runtime.NumCPU() {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Near != 0.1 || cfg.Far != 100 || cfg.FOV != 45 {
		t.Errorf("camera defaults = %v %v %v", cfg.Near, cfg.Far, cfg.FOV)
	}
	if d := cfg.Duration(); d != 0.4 {
		t.Errorf("Duration() = %f, want 0.4", d)
	}
}

func TestResolveReveal(t *testing.T) {
	path := writeConfig(t, `{"reveal": false}`)

	fs := flag.NewFlagSet("comicview", flag.ContinueOnError)
	reveal := fs.Bool("reveal", true, "")
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if Explicit(fs)["reveal"] {
		t.Fatal("reveal reported as set without being given")
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{})
	if cfg.Reveal {
		t.Error("config reveal=false overridden by an unset flag")
	}

	fs = flag.NewFlagSet("comicview", flag.ContinueOnError)
	reveal = fs.Bool("reveal", false, "")
	if err := fs.Parse([]string{"-reveal"}); err != nil {
		t.Fatal(err)
	}
	if !Explicit(fs)["reveal"] {
		t.Fatal("-reveal not reported as set")
	}
	cfg.Resolve(Flags{Reveal: reveal})
	if !cfg.Reveal {
		t.Error("explicit -reveal not applied")
	}
	off := false
	cfg.Resolve(Flags{Reveal: &off})
	if cfg.Reveal {
		t.Error("explicit -reveal=false not applied")
	}
}

func TestValidateScript(t *testing.T) {
	cfg := Config{Width: 10, Height: 10, LensMode: "sketch", Format: "webp"}
	cfg.Script = []Event{{At: 1, Set: map[string]float64{"inkBleed": 1}}}
	if err := cfg.Validate(); !errors.Is(err, style.ErrUnknownParam) {
		t.Errorf("unknown param: err = %v", err)
	}
	cfg.Script = []Event{{At: 1, LensMode: "watercolor"}}
	if err := cfg.Validate(); err == nil {
		t.Error("unknown lens mode accepted")
	}
	cfg.Script = []Event{{At: -1}}
	if err := cfg.Validate(); err == nil {
		t.Error("negative time accepted")
	}
}

func TestPresetSet(t *testing.T) {
	var cfg Config
	set, err := cfg.PresetSet()
	if err != nil || set.Len() != 6 {
		t.Fatalf("builtin set: %v, %v", set, err)
	}

	cfg.Presets = set.Presets[:2]
	custom, err := cfg.PresetSet()
	if err != nil {
		t.Fatal(err)
	}
	if custom.Partner(0) != 1 || custom.Partner(1) != 0 {
		t.Errorf("custom pairing = %v", custom.Contrast)
	}
}
