// Comicview opens an interactive window on the comic pipeline. Hold the left
// mouse button (or touch) to open the lens.
//
// Keys: 1-4 pick the lens mode (sketch, normals, void, style), L cycles it,
// F1-F9 select a preset, Space cycles presets, hold C to compare with the
// unstyled render, R replays the startup reveal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"comic-lens-renderer/internal/config"
	"comic-lens-renderer/internal/logging"
	"comic-lens-renderer/internal/pipeline"
	"comic-lens-renderer/internal/preset"
	"comic-lens-renderer/internal/style"
)

var presetKeys = []ebiten.Key{
	ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5,
	ebiten.KeyF6, ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9,
}

var lensKeys = map[ebiten.Key]style.LensMode{
	ebiten.Key1: style.LensSketch,
	ebiten.Key2: style.LensNormals,
	ebiten.Key3: style.LensVoid,
	ebiten.Key4: style.LensStyle,
}

// Game implements ebiten.Game.
type Game struct {
	sim   *pipeline.Simulator
	frame *pipeline.Frame
	scale int

	offscreen *ebiten.Image
	w, h      int // logical render size from Layout

	start   time.Time
	last    time.Time
	snap    pipeline.Snapshot
	touches []ebiten.TouchID
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now

	g.handlePointer()
	if err := g.handleKeys(); err != nil {
		logging.Logger().Warn("key action failed", "err", err)
	}

	g.snap = g.sim.Step(now.Sub(g.start).Seconds(), dt)
	return nil
}

func (g *Game) handlePointer() {
	x, y := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		x, y = ebiten.TouchPosition(g.touches[0])
		down = true
	}
	if g.w > 0 && g.h > 0 {
		// y up in pointer space.
		g.sim.PointerMove((float64(x)+0.5)/float64(g.w), 1-(float64(y)+0.5)/float64(g.h))
	}
	g.sim.PointerActive(down)
}

func (g *Game) handleKeys() error {
	g.sim.Compare = ebiten.IsKeyPressed(ebiten.KeyC)
	for k, mode := range lensKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.sim.Live.SetLensMode(mode)
		}
	}
	for i, k := range presetKeys {
		if i < g.sim.Presets.Set().Len() && inpututil.IsKeyJustPressed(k) {
			return g.sim.Presets.Select(i, true)
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		return g.sim.Presets.Next(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		mode := g.sim.CycleLensMode()
		logging.Logger().Info("lens mode", "mode", mode)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		return g.sim.Presets.StartReveal(preset.RevealDelay, preset.RevealFlash)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Nothing to draw before the first Update.
	if g.w <= 0 || g.h <= 0 || g.snap.Camera.Far == 0 {
		return
	}
	if g.offscreen == nil || g.offscreen.Bounds().Dx() != g.w || g.offscreen.Bounds().Dy() != g.h {
		g.offscreen = ebiten.NewImage(g.w, g.h)
		g.frame.Resize(g.w, g.h)
		g.sim.Resize(g.w, g.h)
	}

	img, err := g.frame.Render(g.snap)
	if err != nil {
		logging.Logger().Warn("render failed", "err", err)
		return
	}
	// Frames are opaque, so NRGBA bytes are already premultiplied.
	g.offscreen.WritePixels(img.Pix)
	screen.DrawImage(g.offscreen, nil)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w = max(outsideWidth/g.scale, 1)
	g.h = max(outsideHeight/g.scale, 1)
	return g.w, g.h
}

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	model := flag.String("model", "", "glTF/GLB model to stage instead of the demo scene")
	width := flag.Int("width", 0, "Window width (default: 640)")
	height := flag.Int("height", 0, "Window height (default: 360)")
	scale := flag.Int("scale", 2, "Window pixels per rendered pixel")
	presetName := flag.String("preset", "", "Starting preset (default: Comic Book)")
	lensMode := flag.String("lens", "", "Lens mode: sketch, normals, void or style")
	reveal := flag.Bool("reveal", true, "Start raw and reveal the first preset")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	flags := config.Flags{
		ModelPath: *model,
		Width:     *width,
		Height:    *height,
		Preset:    *presetName,
		LensMode:  *lensMode,
	}
	// The reveal default only stands in for a config file; "reveal": false
	// there holds unless -reveal is given.
	if *configFile == "" || config.Explicit(flag.CommandLine)["reveal"] {
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

	s := max(*scale, 1)
	frame := pipeline.NewFrame(sc, cfg.Width/s, cfg.Height/s)
	frame.SetWorkers(cfg.Workers)
	now := time.Now()
	g := &Game{sim: sim, frame: frame, scale: s, start: now, last: now}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Comic Lens")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
