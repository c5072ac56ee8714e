package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"comic-lens-renderer/internal/preset"
	"comic-lens-renderer/internal/style"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	OutputDir string `json:"output_dir"`
	ModelPath string `json:"model_path"`

	// Render settings
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FPS         int     `json:"fps"`
	Frames      int     `json:"frames"`
	Supersample int     `json:"supersample"`
	Format      string  `json:"format"`
	Workers     int     `json:"workers"`
	Simplify    float64 `json:"simplify"`

	// Camera
	Near float64 `json:"near"`
	Far  float64 `json:"far"`
	FOV  float64 `json:"fov"`

	// Look
	Preset   string          `json:"preset"`
	LensMode string          `json:"lens_mode"`
	Reveal   bool            `json:"reveal"`
	Presets  []preset.Preset `json:"presets"`

	Script []Event `json:"script"`
}

// Event is one timed change replayed by the offline renderer. Only the
// fields that are set take effect.
type Event struct {
	At       float64            `json:"at"`
	Preset   string             `json:"preset,omitempty"`
	Instant  bool               `json:"instant,omitempty"`
	Lens     *bool              `json:"lens,omitempty"`
	Pointer  *[2]float64        `json:"pointer,omitempty"`
	LensMode string             `json:"lens_mode,omitempty"`
	Compare  *bool              `json:"compare,omitempty"`
	Set      map[string]float64 `json:"set,omitempty"`
	SetLens  map[string]float64 `json:"set_lens,omitempty"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values. Relative paths in the
// file resolve against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	ModelPath string
	Width     int
	Height    int
	Frames    int
	Format    string
	Workers   int
	Preset    string
	LensMode  string
	Reveal    *bool // nil unless the flag was given on the command line
}

// Explicit returns the names of the flags in fs that were set on the command
// line, as opposed to holding their defaults.
func Explicit(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.ModelPath != "" {
		c.ModelPath = flags.ModelPath
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Preset != "" {
		c.Preset = flags.Preset
	}
	if flags.LensMode != "" {
		c.LensMode = flags.LensMode
	}
	if flags.Reveal != nil {
		c.Reveal = *flags.Reveal
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "renders")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}
	if c.ModelPath != "" && !filepath.IsAbs(c.ModelPath) {
		c.ModelPath = filepath.Join(c.BaseDir, c.ModelPath)
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 360
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.Frames <= 0 {
		c.Frames = 90
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Near <= 0 {
		c.Near = 0.1
	}
	if c.Far <= c.Near {
		c.Far = 100
	}
	if c.FOV <= 0 {
		c.FOV = 45
	}
	if c.Preset == "" {
		c.Preset = "Comic Book"
	}
	if c.LensMode == "" {
		c.LensMode = style.LensSketch.String()
	}

	sort.SliceStable(c.Script, func(i, j int) bool { return c.Script[i].At < c.Script[j].At })
}

// PresetSet returns the configured preset list, or the built-in one when the
// file defines none.
func (c *Config) PresetSet() (*preset.Set, error) {
	if len(c.Presets) == 0 {
		return preset.Builtin(), nil
	}
	set := &preset.Set{Presets: c.Presets}
	// Custom lists pair each preset with the next one.
	set.Contrast = make([]int, len(c.Presets))
	for i := range set.Contrast {
		set.Contrast[i] = (i + 1) % len(c.Presets)
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("config: presets: %w", err)
	}
	return set, nil
}

// Validate checks the resolved settings and every script event.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	}
	if _, err := style.ParseLensMode(c.LensMode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Format != "webp" && c.Format != "png" {
		return fmt.Errorf("config: unknown output format %q", c.Format)
	}
	for i, ev := range c.Script {
		if ev.At < 0 {
			return fmt.Errorf("config: script[%d]: negative time %g", i, ev.At)
		}
		if ev.LensMode != "" {
			if _, err := style.ParseLensMode(ev.LensMode); err != nil {
				return fmt.Errorf("config: script[%d]: %w", i, err)
			}
		}
		for _, m := range []map[string]float64{ev.Set, ev.SetLens} {
			for name := range m {
				if _, ok := style.Lookup(name); !ok {
					return fmt.Errorf("config: script[%d]: %w: %q", i, style.ErrUnknownParam, name)
				}
			}
		}
	}
	return nil
}

// Duration returns the animation length in seconds.
func (c *Config) Duration() float64 {
	return float64(c.Frames) / float64(c.FPS)
}
