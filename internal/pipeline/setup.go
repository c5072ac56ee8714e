package pipeline

import (
	"fmt"
	"path/filepath"

	"comic-lens-renderer/internal/config"
	"comic-lens-renderer/internal/logging"
	"comic-lens-renderer/internal/preset"
	"comic-lens-renderer/internal/scene"
	"comic-lens-renderer/internal/style"
	"comic-lens-renderer/internal/texture"
)

// LoadScene returns the demo scene, or a staged glTF model when modelPath is
// set. A simplify factor in (0,1) decimates the model first. Textures resolve
// relative to the model file.
func LoadScene(modelPath string, simplify float64) (*scene.Scene, error) {
	if modelPath == "" {
		return scene.NewDemo(), nil
	}
	tex := texture.NewCache(filepath.Dir(modelPath))
	mesh, mat, err := scene.LoadGLTF(modelPath, tex)
	if err != nil {
		return nil, err
	}
	before := len(mesh.Tris)
	if simplify > 0 && simplify < 1 {
		mesh = scene.Simplify(mesh, simplify)
		// Decimation drops UVs.
		mat.Texture = nil
	}
	logging.Logger().Info("model loaded", "path", modelPath,
		"triangles", len(mesh.Tris), "source_triangles", before, "textures", tex.Len())
	return scene.NewModelScene(mesh, mat), nil
}

// Setup builds the scene and a simulator configured from cfg: camera planes,
// lens mode, and either the startup reveal or the configured preset.
func Setup(cfg *config.Config) (*scene.Scene, *Simulator, error) {
	sc, err := LoadScene(cfg.ModelPath, cfg.Simplify)
	if err != nil {
		return nil, nil, err
	}
	set, err := cfg.PresetSet()
	if err != nil {
		return nil, nil, err
	}
	sim, err := NewSimulator(set, float64(cfg.Width)/float64(cfg.Height))
	if err != nil {
		return nil, nil, err
	}
	sim.Camera.Near = cfg.Near
	sim.Camera.Far = cfg.Far
	sim.Camera.FovY = cfg.FOV

	mode, err := style.ParseLensMode(cfg.LensMode)
	if err != nil {
		return nil, nil, err
	}
	sim.Live.SetLensMode(mode)

	if cfg.Reveal {
		err = sim.Presets.StartReveal(preset.RevealDelay, preset.RevealFlash)
	} else {
		err = sim.Presets.SelectByName(cfg.Preset, false)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: setup: %w", err)
	}
	return sc, sim, nil
}
