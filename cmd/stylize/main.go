// Stylize runs the comic pipeline over buffers rendered elsewhere: a color
// image, a normal image (normals packed as n*0.5+0.5) and a depth image
// holding window-space depth with white at the far plane.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"comic-lens-renderer/internal/batch"
	"comic-lens-renderer/internal/compositor"
	"comic-lens-renderer/internal/lens"
	"comic-lens-renderer/internal/logging"
	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/preset"
	"comic-lens-renderer/internal/raster"
	"comic-lens-renderer/internal/style"
	"comic-lens-renderer/internal/texture"
)

func main() {
	colorPath := flag.String("color", "", "Color buffer image (required)")
	normalPath := flag.String("normal", "", "Normal buffer image (required)")
	depthPath := flag.String("depth", "", "Depth buffer image (required)")
	outPath := flag.String("out", "", "Output file, .webp or .png (default: <color>-comic.webp)")
	presetName := flag.String("preset", "Comic Book", "Preset for the main style")
	lensMode := flag.String("lens", "sketch", "Lens mode: sketch, normals, void or style")
	lensX := flag.Float64("lens-x", 0.5, "Lens center x in [0,1]")
	lensY := flag.Float64("lens-y", 0.5, "Lens center y in [0,1], y up")
	radius := flag.Float64("radius", 0, "Lens radius in uv units (0: no lens)")
	near := flag.Float64("near", 0.1, "Camera near plane of the depth buffer")
	far := flag.Float64("far", 100, "Camera far plane of the depth buffer")
	at := flag.Float64("time", 0, "Time in seconds for animated terms")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	if *colorPath == "" || *normalPath == "" || *depthPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -color, -normal and -depth are required.")
		flag.Usage()
		os.Exit(1)
	}
	if *outPath == "" {
		*outPath = strings.TrimSuffix(*colorPath, filepath.Ext(*colorPath)) + "-comic.webp"
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(*outPath)), ".")

	targets, err := texture.LoadTargets(*colorPath, *normalPath, *depthPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading buffers: %v\n", err)
		os.Exit(1)
	}

	mainStyle, lensStyle, err := resolveStyles(preset.Builtin(), *presetName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mode, err := style.ParseLensMode(*lensMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	w, h := targets.Width, targets.Height
	in := &compositor.Inputs{Targets: targets, Near: *near, Far: *far, Time: *at}
	out := make([]float64, w*h*3)
	compositor.New().Render(in, &mainStyle, image.Rect(0, 0, w, h), out)

	shape := lens.Shape{
		Center: mathutil.Vec2{*lensX, *lensY},
		Radius: *radius,
		Smooth: lens.DefaultSmooth,
		Time:   *at,
		Aspect: float64(w) / float64(h),
	}
	lens.NewComposer().Composite(in, mode, &lensStyle, shape, out)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := batch.SaveImage(*outPath, raster.ToNRGBA(out, w, h), format); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Stylized %dx%d with %q in %.2fs\n", w, h, *presetName, time.Since(start).Seconds())
	fmt.Printf("Output: %s\n", *outPath)
}

// resolveStyles returns the named preset applied over the default main style
// and its contrast partner applied over the default lens style.
func resolveStyles(set *preset.Set, name string) (style.Params, style.Params, error) {
	i, err := set.Index(name)
	if err != nil {
		return style.Params{}, style.Params{}, err
	}
	p, _ := set.Get(i)
	partner, _ := set.Get(set.Partner(i))
	mainStyle, err := p.Apply(style.DefaultMain())
	if err != nil {
		return style.Params{}, style.Params{}, err
	}
	lensStyle, err := partner.Apply(style.DefaultLens())
	if err != nil {
		return style.Params{}, style.Params{}, err
	}
	return mainStyle, lensStyle, nil
}
