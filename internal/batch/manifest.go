package batch

import (
	"encoding/json"
	"os"
)

// Manifest describes a finished render.
type Manifest struct {
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	FPS      int             `json:"fps"`
	Format   string          `json:"format"`
	Frames   []ManifestEntry `json:"frames"`
	Previews []string        `json:"previews,omitempty"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame  int     `json:"frame"`
	Time   float64 `json:"time"`
	Preset string  `json:"preset,omitempty"`
	Image  string  `json:"image"`
}

// NewManifest lists the successfully rendered frames of results.
func NewManifest(cfg Config, fps int, results []Result) Manifest {
	m := Manifest{Width: cfg.Width, Height: cfg.Height, FPS: fps, Format: NormalizeFormat(cfg.Format)}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{
			Frame:  r.Frame,
			Time:   r.Time,
			Preset: r.Preset,
			Image:  r.Image,
		})
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
