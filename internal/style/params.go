// Package style defines the stylization parameter records and the live state
// shared by the preset engine, the simulator and the frame renderer.
package style

import (
	"errors"
	"fmt"
)

// ErrUnknownParam is returned for a parameter name outside the documented set.
var ErrUnknownParam = errors.New("style: unknown parameter")

// Params is one stylization pass worth of knobs. Enable flags are stored as
// 0/1 floats so they interpolate like every other field; a flag counts as on
// above 0.5.
type Params struct {
	OutlineThickness  float64
	OutlineThreshold  float64
	OutlineVariation  float64
	CelBands          float64
	SpecularPop       float64
	RimStrength       float64
	RimThreshold      float64
	HalftoneSize      float64
	HalftoneAngle     float64
	HalftoneIntensity float64
	SaturationBoost   float64
	ColorPunch        float64
	WobbleAmount      float64
	WobbleFreq        float64
	CmykOffset        float64
	PaperStrength     float64

	EnableOutlines   float64
	EnableCelShading float64
	EnableHalftone   float64
	EnableWobble     float64
	EnableCmyk       float64
	EnablePaper      float64
}

// Field describes one named parameter and its clamp range.
type Field struct {
	Name string
	Min  float64
	Max  float64
	Step float64
	Flag bool
	ptr  func(*Params) *float64
}

var fields = []Field{
	{Name: "outlineThickness", Min: 0, Max: 4, Step: 0.1, ptr: func(p *Params) *float64 { return &p.OutlineThickness }},
	{Name: "outlineThreshold", Min: 0.05, Max: 1, Step: 0.01, ptr: func(p *Params) *float64 { return &p.OutlineThreshold }},
	{Name: "outlineVariation", Min: 0, Max: 1, Step: 0.05, ptr: func(p *Params) *float64 { return &p.OutlineVariation }},
	{Name: "celBands", Min: 2, Max: 8, Step: 1, ptr: func(p *Params) *float64 { return &p.CelBands }},
	{Name: "specularPop", Min: 0, Max: 1, Step: 0.05, ptr: func(p *Params) *float64 { return &p.SpecularPop }},
	{Name: "rimStrength", Min: 0, Max: 1, Step: 0.05, ptr: func(p *Params) *float64 { return &p.RimStrength }},
	{Name: "rimThreshold", Min: 0, Max: 1, Step: 0.05, ptr: func(p *Params) *float64 { return &p.RimThreshold }},
	{Name: "halftoneSize", Min: 2, Max: 20, Step: 0.5, ptr: func(p *Params) *float64 { return &p.HalftoneSize }},
	{Name: "halftoneAngle", Min: 0, Max: 1.57, Step: 0.01, ptr: func(p *Params) *float64 { return &p.HalftoneAngle }},
	{Name: "halftoneIntensity", Min: 0, Max: 1, Step: 0.05, ptr: func(p *Params) *float64 { return &p.HalftoneIntensity }},
	{Name: "saturationBoost", Min: -1, Max: 1, Step: 0.05, ptr: func(p *Params) *float64 { return &p.SaturationBoost }},
	{Name: "colorPunch", Min: 0, Max: 1, Step: 0.05, ptr: func(p *Params) *float64 { return &p.ColorPunch }},
	{Name: "wobbleAmount", Min: 0, Max: 8, Step: 0.1, ptr: func(p *Params) *float64 { return &p.WobbleAmount }},
	{Name: "wobbleFreq", Min: 4, Max: 40, Step: 1, ptr: func(p *Params) *float64 { return &p.WobbleFreq }},
	{Name: "cmykOffset", Min: 0, Max: 10, Step: 0.5, ptr: func(p *Params) *float64 { return &p.CmykOffset }},
	{Name: "paperStrength", Min: 0, Max: 1, Step: 0.05, ptr: func(p *Params) *float64 { return &p.PaperStrength }},
	{Name: "enableOutlines", Min: 0, Max: 1, Step: 1, Flag: true, ptr: func(p *Params) *float64 { return &p.EnableOutlines }},
	{Name: "enableCelShading", Min: 0, Max: 1, Step: 1, Flag: true, ptr: func(p *Params) *float64 { return &p.EnableCelShading }},
	{Name: "enableHalftone", Min: 0, Max: 1, Step: 1, Flag: true, ptr: func(p *Params) *float64 { return &p.EnableHalftone }},
	{Name: "enableWobble", Min: 0, Max: 1, Step: 1, Flag: true, ptr: func(p *Params) *float64 { return &p.EnableWobble }},
	{Name: "enableCmyk", Min: 0, Max: 1, Step: 1, Flag: true, ptr: func(p *Params) *float64 { return &p.EnableCmyk }},
	{Name: "enablePaper", Min: 0, Max: 1, Step: 1, Flag: true, ptr: func(p *Params) *float64 { return &p.EnablePaper }},
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(fields))
	for i, f := range fields {
		m[f.Name] = i
	}
	return m
}()

// Fields returns the parameter table in declaration order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Names returns every parameter name in declaration order.
func Names() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

// Lookup returns the field description for name.
func Lookup(name string) (Field, bool) {
	i, ok := fieldIndex[name]
	if !ok {
		return Field{}, false
	}
	return fields[i], true
}

// Clamp restricts v to the field range.
func (f Field) Clamp(v float64) float64 {
	if v < f.Min {
		return f.Min
	}
	if v > f.Max {
		return f.Max
	}
	return v
}

// Ptr exposes the storage for name, for callers that animate fields in place.
func (p *Params) Ptr(name string) (*float64, error) {
	f, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return f.ptr(p), nil
}

func (p *Params) Get(name string) (float64, error) {
	ptr, err := p.Ptr(name)
	if err != nil {
		return 0, err
	}
	return *ptr, nil
}

// Set stores v clamped to the field range.
func (p *Params) Set(name string, v float64) error {
	f, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	*f.ptr(p) = f.Clamp(v)
	return nil
}

// Clamp brings every field back into range.
func (p *Params) Clamp() {
	for _, f := range fields {
		ptr := f.ptr(p)
		*ptr = f.Clamp(*ptr)
	}
}

// Values returns a name→value snapshot.
func (p *Params) Values() map[string]float64 {
	m := make(map[string]float64, len(fields))
	for _, f := range fields {
		m[f.Name] = *f.ptr(p)
	}
	return m
}

// Enabled reports whether a 0/1 flag is on.
func Enabled(flag float64) bool {
	return flag > 0.5
}

// Flag converts a bool into the 0/1 encoding.
func Flag(on bool) float64 {
	if on {
		return 1
	}
	return 0
}

// AnyStage reports whether at least one gated stage is on.
func (p *Params) AnyStage() bool {
	return Enabled(p.EnableOutlines) || Enabled(p.EnableCelShading) || Enabled(p.EnableHalftone) ||
		Enabled(p.EnableWobble) || Enabled(p.EnableCmyk) || Enabled(p.EnablePaper)
}
