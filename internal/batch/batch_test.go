package batch

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"

	"comic-lens-renderer/internal/pipeline"
	"comic-lens-renderer/internal/preset"
	"comic-lens-renderer/internal/scene"
	"comic-lens-renderer/internal/texture"
)

func record(t *testing.T, frames int) []pipeline.Snapshot {
	t.Helper()
	sim, err := pipeline.NewSimulator(preset.Builtin(), 4.0/3)
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.Presets.SelectByName("Noir", false); err != nil {
		t.Fatal(err)
	}
	snaps, err := pipeline.Record(sim, nil, frames, 30)
	if err != nil {
		t.Fatal(err)
	}
	return snaps
}

func TestRunWritesFrames(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		OutputDir:   dir,
		Scene:       scene.NewDemo(),
		Width:       24,
		Height:      18,
		Supersample: 2,
		Workers:     3,
		Format:      "webp",
	}
	results := Run(cfg, record(t, 5))
	if len(results) != 5 {
		t.Fatalf("len(results) = %d", len(results))
	}
	for i, r := range results {
		if !r.Success {
			t.Fatalf("frame %d failed: %s", i, r.Error)
		}
		if r.Frame != i || r.Preset != "Noir" {
			t.Errorf("result %d = %+v", i, r)
		}
		img, err := texture.Load(filepath.Join(dir, r.Image))
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds() != image.Rect(0, 0, 24, 18) {
			t.Errorf("frame %d bounds = %v", i, img.Bounds())
		}
	}

	path := filepath.Join(dir, "manifest.json")
	if err := WriteManifest(path, NewManifest(cfg, 30, results)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if len(m.Frames) != 5 || m.Frames[4].Image != FrameName(4, "webp") || m.FPS != 30 {
		t.Errorf("manifest = %+v", m)
	}
}

func TestRunReportsFailures(t *testing.T) {
	dir := t.TempDir()
	// A file where the frames directory should go.
	if err := os.WriteFile(filepath.Join(dir, "frames"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Config{OutputDir: dir, Scene: scene.NewDemo(), Width: 8, Height: 6, Workers: 2, Format: "png"}
	results := Run(cfg, record(t, 2))
	for _, r := range results {
		if r.Success || r.Error == "" {
			t.Errorf("result %+v should have failed", r)
		}
	}
	if m := NewManifest(cfg, 30, results); len(m.Frames) != 0 {
		t.Errorf("manifest lists %d failed frames", len(m.Frames))
	}
}

func TestDefaultFormatNames(t *testing.T) {
	if got, want := FrameName(3, ""), filepath.Join("frames", "00003.webp"); got != want {
		t.Errorf("FrameName(3, \"\") = %q, want %q", got, want)
	}
	if got, want := FrameName(3, "PNG"), filepath.Join("frames", "00003.png"); got != want {
		t.Errorf("FrameName(3, \"PNG\") = %q, want %q", got, want)
	}

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, Scene: scene.NewDemo(), Width: 8, Height: 6, Workers: 1}
	results := Run(cfg, record(t, 1))
	r := results[0]
	if !r.Success {
		t.Fatalf("frame failed: %s", r.Error)
	}
	if filepath.Ext(r.Image) != ".webp" {
		t.Errorf("image = %q, want a .webp name", r.Image)
	}
	data, err := os.ReadFile(filepath.Join(dir, r.Image))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Errorf("%s does not hold WebP data", r.Image)
	}
	if m := NewManifest(cfg, 30, results); m.Format != "webp" {
		t.Errorf("manifest format = %q, want webp", m.Format)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	if err := Encode(nil, img, "gif"); err == nil {
		t.Error("unknown format accepted")
	}
}
