package style

import (
	"fmt"
	"strconv"
	"strings"

	"comic-lens-renderer/internal/shaderlib"
)

// LensMode selects what the pointer lens reveals.
type LensMode int

const (
	LensSketch LensMode = iota
	LensNormals
	LensVoid
	// LensStyle renders the independent lens Params through the compositor.
	LensStyle
)

var lensModeNames = [...]string{"sketch", "normals", "void", "style"}

func (m LensMode) String() string {
	if m < 0 || int(m) >= len(lensModeNames) {
		return "LensMode(" + strconv.Itoa(int(m)) + ")"
	}
	return lensModeNames[m]
}

// Next cycles through the modes.
func (m LensMode) Next() LensMode {
	return (m + 1) % LensMode(len(lensModeNames))
}

// ParseLensMode accepts a mode name, a few aliases, or its index.
func ParseLensMode(s string) (LensMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "pencil":
		return LensSketch, nil
	case "x-ray", "xray":
		return LensNormals, nil
	}
	for i, n := range lensModeNames {
		if s == n {
			return LensMode(i), nil
		}
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < len(lensModeNames) {
		return LensMode(i), nil
	}
	return LensSketch, fmt.Errorf("style: unknown lens mode %q", s)
}

// SceneColors are the scene-level colors a preset carries alongside its
// shader values.
type SceneColors struct {
	Background shaderlib.RGB `json:"background"`
	Ground     shaderlib.RGB `json:"ground"`
	Fog        shaderlib.RGB `json:"fog"`
	FogDensity float64       `json:"fog_density"`
}

// LiveState is the mutable parameter set bound to the compositor each frame.
// One instance is owned by the simulator; everything else receives a pointer.
type LiveState struct {
	Main     Params
	Lens     Params
	LensMode LensMode
	Scene    SceneColors
}

// NewLiveState starts from the raw (all-disabled) main style and the default
// lens style.
func NewLiveState() *LiveState {
	return &LiveState{
		Main:     Raw(),
		Lens:     DefaultLens(),
		LensMode: LensSketch,
		Scene: SceneColors{
			Background: shaderlib.Hex(0xf5f0e8),
			Ground:     shaderlib.Hex(0xe8dfd0),
			Fog:        shaderlib.Hex(0xf0ebe0),
			FogDensity: 0.012,
		},
	}
}

func (s *LiveState) SetMain(name string, v float64) error {
	return s.Main.Set(name, v)
}

func (s *LiveState) SetLens(name string, v float64) error {
	return s.Lens.Set(name, v)
}

func (s *LiveState) SetLensMode(m LensMode) {
	s.LensMode = m
}
