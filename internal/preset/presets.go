// Package preset holds the named looks and animates the live parameter state
// between them.
package preset

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"comic-lens-renderer/internal/shaderlib"
	"comic-lens-renderer/internal/style"
)

var ErrUnknownPreset = errors.New("preset: unknown preset")

// Preset is an immutable named look. Values may cover a subset of the style
// parameters; fields it does not name keep their live value.
type Preset struct {
	Name   string             `json:"name"`
	Values map[string]float64 `json:"values"`
	Colors style.SceneColors  `json:"colors"`
	Blurb  string             `json:"blurb,omitempty"`
}

// Apply returns base with the preset's values written over it.
func (p Preset) Apply(base style.Params) (style.Params, error) {
	for name, v := range p.Values {
		if err := base.Set(name, v); err != nil {
			return base, fmt.Errorf("preset: apply %s: %w", p.Name, err)
		}
	}
	return base, nil
}

// Validate rejects presets without a name, with unknown parameter names or
// with values outside the parameter range.
func Validate(p Preset) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("preset: validate: empty name")
	}
	for name, v := range p.Values {
		f, ok := style.Lookup(name)
		if !ok {
			return fmt.Errorf("preset: validate %s: %w: %q", p.Name, style.ErrUnknownParam, name)
		}
		if math.IsNaN(v) || f.Clamp(v) != v {
			return fmt.Errorf("preset: validate %s: %s=%g outside [%g, %g]", p.Name, name, v, f.Min, f.Max)
		}
	}
	if d := p.Colors.FogDensity; math.IsNaN(d) || d < 0 {
		return fmt.Errorf("preset: validate %s: fog density %g", p.Name, d)
	}
	return nil
}

// Set is an ordered preset list with a contrast partner for every entry.
type Set struct {
	Presets  []Preset
	Contrast []int
}

// Builtin returns the six built-in looks and their contrast pairing.
func Builtin() *Set {
	return &Set{
		Presets: []Preset{
			{
				Name:   "Comic Book",
				Values: params(style.DefaultMain()),
				Colors: colors(0xf5f0e8, 0xe8dfd0, 0xf0ebe0, 0.012),
				Blurb:  "Four-color newsprint with halftone and a wobbling ink line.",
			},
			{
				Name: "Pop Art",
				Values: params(style.Params{
					OutlineThickness: 2.0, OutlineThreshold: 0.4, OutlineVariation: 0.5,
					CelBands: 3, SpecularPop: 0.9, RimStrength: 0.2, RimThreshold: 0.7,
					HalftoneSize: 10, HalftoneAngle: 0.26, HalftoneIntensity: 0.9,
					SaturationBoost: 0.8, ColorPunch: 0.7,
					WobbleAmount: 0, WobbleFreq: 12, CmykOffset: 5, PaperStrength: 0.1,
					EnableOutlines: 1, EnableCelShading: 1, EnableHalftone: 1,
					EnableWobble: 0, EnableCmyk: 1, EnablePaper: 0,
				}),
				Colors: colors(0xf8f0d0, 0xf0e8d0, 0xf5edd0, 0.008),
				Blurb:  "Big dots, flat primaries and heavy outlines.",
			},
			{
				Name:   "Noir",
				Values: params(style.DefaultLens()),
				Colors: colors(0x252030, 0x201820, 0x201828, 0.035),
				Blurb:  "Two-tone shadows on cheap paper.",
			},
			{
				Name: "Manga",
				Values: params(style.Params{
					OutlineThickness: 1.3, OutlineThreshold: 0.35, OutlineVariation: 0.9,
					CelBands: 4, SpecularPop: 0.6, RimStrength: 0.4, RimThreshold: 0.6,
					HalftoneSize: 3.5, HalftoneAngle: 0.78, HalftoneIntensity: 0.6,
					SaturationBoost: -1.0, ColorPunch: 0,
					WobbleAmount: 1.5, WobbleFreq: 18, CmykOffset: 0, PaperStrength: 0.25,
					EnableOutlines: 1, EnableCelShading: 1, EnableHalftone: 1,
					EnableWobble: 1, EnableCmyk: 0, EnablePaper: 1,
				}),
				Colors: colors(0xe8e5e0, 0xd8d5d0, 0xe0ddd8, 0.012),
				Blurb:  "Monochrome screentone with fine, varied line weight.",
			},
			{
				Name: "Vintage Print",
				Values: params(style.Params{
					OutlineThickness: 0.7, OutlineThreshold: 0.55, OutlineVariation: 0.6,
					CelBands: 5, SpecularPop: 0.3, RimStrength: 0.2, RimThreshold: 0.7,
					HalftoneSize: 4, HalftoneAngle: 0.35, HalftoneIntensity: 0.8,
					SaturationBoost: 0.1, ColorPunch: 0.3,
					WobbleAmount: 1.0, WobbleFreq: 6, CmykOffset: 4, PaperStrength: 0.8,
					EnableOutlines: 1, EnableCelShading: 1, EnableHalftone: 1,
					EnableWobble: 1, EnableCmyk: 1, EnablePaper: 1,
				}),
				Colors: colors(0xd8c8a8, 0xc8b898, 0xd0c0a5, 0.015),
				Blurb:  "Yellowed stock, loose plates and soft dots.",
			},
			{
				Name: "Clean",
				Values: params(style.Params{
					OutlineThickness: 1.0, OutlineThreshold: 0.45, OutlineVariation: 0.3,
					CelBands: 5, SpecularPop: 0.8, RimStrength: 0.35, RimThreshold: 0.6,
					HalftoneSize: 5, HalftoneAngle: 0.52, HalftoneIntensity: 0,
					SaturationBoost: 0.25, ColorPunch: 0.15,
					WobbleAmount: 0, WobbleFreq: 12, CmykOffset: 0, PaperStrength: 0,
					EnableOutlines: 1, EnableCelShading: 1,
				}),
				Colors: colors(0xf5f5f5, 0xeeeeee, 0xf2f2f2, 0.006),
				Blurb:  "Cel shading and outlines only.",
			},
		},
		Contrast: []int{2, 3, 1, 0, 5, 4},
	}
}

func params(p style.Params) map[string]float64 { return p.Values() }

func colors(bg, ground, fog uint32, density float64) style.SceneColors {
	return style.SceneColors{
		Background: shaderlib.Hex(bg),
		Ground:     shaderlib.Hex(ground),
		Fog:        shaderlib.Hex(fog),
		FogDensity: density,
	}
}

// Len returns the number of presets.
func (s *Set) Len() int { return len(s.Presets) }

// Get returns preset i.
func (s *Set) Get(i int) (Preset, error) {
	if i < 0 || i >= len(s.Presets) {
		return Preset{}, fmt.Errorf("%w: index %d", ErrUnknownPreset, i)
	}
	return s.Presets[i], nil
}

// Index finds a preset by case-insensitive name.
func (s *Set) Index(name string) (int, error) {
	for i, p := range s.Presets {
		if strings.EqualFold(p.Name, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Partner returns the index of the contrasting preset for i. Presets without
// an entry pair with themselves.
func (s *Set) Partner(i int) int {
	if i >= 0 && i < len(s.Contrast) {
		if p := s.Contrast[i]; p >= 0 && p < len(s.Presets) {
			return p
		}
	}
	return i
}

// Validate checks every preset and the contrast table.
func (s *Set) Validate() error {
	if len(s.Presets) == 0 {
		return errors.New("preset: validate: empty set")
	}
	seen := make(map[string]bool, len(s.Presets))
	for _, p := range s.Presets {
		if err := Validate(p); err != nil {
			return err
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			return fmt.Errorf("preset: validate: duplicate name %q", p.Name)
		}
		seen[key] = true
	}
	for i, c := range s.Contrast {
		if c < 0 || c >= len(s.Presets) {
			return fmt.Errorf("preset: validate: contrast[%d]=%d out of range", i, c)
		}
	}
	return nil
}
