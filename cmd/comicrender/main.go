package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"comic-lens-renderer/internal/batch"
	"comic-lens-renderer/internal/config"
	"comic-lens-renderer/internal/logging"
	"comic-lens-renderer/internal/pipeline"
	"comic-lens-renderer/internal/postprocess"
	"comic-lens-renderer/internal/preset"
	"comic-lens-renderer/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	outputDir := flag.String("output", "", "Output directory (default: <base>/renders)")
	model := flag.String("model", "", "glTF/GLB model to stage instead of the demo scene")
	width := flag.Int("width", 0, "Frame width (default: 640)")
	height := flag.Int("height", 0, "Frame height (default: 360)")
	frames := flag.Int("frames", 0, "Number of frames (default: 90)")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	presetName := flag.String("preset", "", "Starting preset (default: Comic Book)")
	lensMode := flag.String("lens", "", "Lens mode: sketch, normals, void or style")
	reveal := flag.Bool("reveal", false, "Start raw and reveal the first preset")
	previews := flag.Bool("previews", false, "Also render a sheet with one still per preset")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	flags := config.Flags{
		OutputDir: *outputDir,
		ModelPath: *model,
		Width:     *width,
		Height:    *height,
		Frames:    *frames,
		Format:    *format,
		Workers:   *workers,
		Preset:    *presetName,
		LensMode:  *lensMode,
	}
	if config.Explicit(flag.CommandLine)["reveal"] {
		flags.Reveal = reveal
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc, sim, err := pipeline.Setup(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snaps, err := pipeline.Record(sim, pipeline.NewScript(cfg.Script), cfg.Frames, float64(cfg.FPS))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in script: %v\n", err)
		os.Exit(1)
	}

	source := "demo scene"
	if cfg.ModelPath != "" {
		source = cfg.ModelPath
	}
	fmt.Printf("Comic lens renderer → %s\n", cfg.Format)
	fmt.Printf("Scene: %s\n", source)
	fmt.Printf("Frames: %d at %dx%d (x%d), %d fps, Workers: %d\n",
		cfg.Frames, cfg.Width, cfg.Height, cfg.Supersample, cfg.FPS, cfg.Workers)
	fmt.Printf("Script: %d events over %.1fs\n", len(cfg.Script), cfg.Duration())
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Scene:       sc,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Format:      cfg.Format,
	}

	results := batch.Run(batchCfg, snaps)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}

	manifest := batch.NewManifest(batchCfg, cfg.FPS, results)

	if *previews {
		set, _ := cfg.PresetSet()
		name := "previews." + cfg.Format
		if err := writePreviews(filepath.Join(cfg.OutputDir, name), sc, set, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: previews failed: %v\n", err)
		} else {
			manifest.Previews = append(manifest.Previews, name)
			fmt.Printf("Previews: %s\n", name)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// writePreviews renders one still per preset with the lens closed and lays
// the thumbnails out three to a row.
func writePreviews(path string, sc *scene.Scene, set *preset.Set, cfg *config.Config) error {
	const stillTime = 2.0
	f := pipeline.NewFrame(sc, cfg.Width, cfg.Height)
	f.SetWorkers(cfg.Workers)

	tiles := make([]*image.NRGBA, 0, set.Len())
	for i := 0; i < set.Len(); i++ {
		sim, err := pipeline.NewSimulator(set, float64(cfg.Width)/float64(cfg.Height))
		if err != nil {
			return err
		}
		sim.Camera.Near, sim.Camera.Far, sim.Camera.FovY = cfg.Near, cfg.Far, cfg.FOV
		if err := sim.Presets.Select(i, false); err != nil {
			return err
		}
		img, err := f.Render(sim.Step(stillTime, 1.0/float64(cfg.FPS)))
		if err != nil {
			return err
		}
		tiles = append(tiles, postprocess.Thumbnail(img, 320, 320))
	}
	sheet := postprocess.Sheet(tiles, 3, color.NRGBA{0xf5, 0xf0, 0xe8, 0xff})
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return batch.SaveImage(path, sheet, cfg.Format)
}
