// Package batch renders recorded snapshots to image files on a worker pool.
package batch

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"comic-lens-renderer/internal/logging"
	"comic-lens-renderer/internal/pipeline"
	"comic-lens-renderer/internal/postprocess"
	"comic-lens-renderer/internal/scene"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Scene       *scene.Scene
	Width       int
	Height      int
	Supersample int
	Workers     int
	Format      string // "webp" or "png"; empty means DefaultFormat
}

// DefaultFormat is the output format used when none is configured.
const DefaultFormat = "webp"

// NormalizeFormat lower-cases format and maps the empty string to
// DefaultFormat, so file names agree with what Encode writes.
func NormalizeFormat(format string) string {
	if format == "" {
		return DefaultFormat
	}
	return strings.ToLower(format)
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	Time    float64
	Preset  string
	Image   string // relative to OutputDir
	Success bool
	Error   string
}

// FrameName returns the output path of frame i relative to the output
// directory.
func FrameName(i int, format string) string {
	return filepath.Join("frames", fmt.Sprintf("%05d.%s", i, NormalizeFormat(format)))
}

// Run renders every snapshot using a worker pool. Each worker owns its own
// pipeline.Frame, so frames render in parallel.
func Run(cfg Config, snaps []pipeline.Snapshot) []Result {
	cfg.Format = NormalizeFormat(cfg.Format)
	total := len(snaps)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := max(cfg.Workers, 1)
	ss := max(cfg.Supersample, 1)
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					logging.Logger().Info("progress", "done", p, "total", total,
						"fps", fmt.Sprintf("%.1f", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f := pipeline.NewFrame(cfg.Scene, cfg.Width*ss, cfg.Height*ss)
			// Frames already run in parallel; keep each one's passes serial.
			f.SetWorkers(1)
			for idx := range frameChan {
				results[idx] = processFrame(cfg, f, idx, snaps[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range snaps {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, f *pipeline.Frame, idx int, snap pipeline.Snapshot) Result {
	res := Result{
		Frame:  idx,
		Time:   snap.Time,
		Preset: snap.Preset,
		Image:  FrameName(idx, cfg.Format),
	}

	img, err := f.Render(snap)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	// Post-processing: supersample downsample
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}

	outPath := filepath.Join(cfg.OutputDir, res.Image)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	if err := SaveImage(outPath, img, cfg.Format); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}

// SaveImage writes img to path as WebP (lossless) or PNG.
func SaveImage(path string, img image.Image, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch NormalizeFormat(format) {
	case "webp":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
	case "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("PNG encode: %w", err)
		}
	default:
		return fmt.Errorf("batch: unknown format %q", format)
	}
	return nil
}
