package compositor

import (
	"math"

	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/raster"
	"comic-lens-renderer/internal/shaderlib"
	"comic-lens-renderer/internal/style"
)

// Depth-gradient normalization a·d² + b·d + c. Tuned for a 0.1–100 camera.
const (
	depthNormA = 0.12
	depthNormB = 0.3
	depthNormC = 0.15
)

// sobelOffsets are the 3×3 neighbourhood taps in row order: top, middle, bottom
// (v increases upward).
var sobelOffsets = [8]mathutil.Vec2{
	{-1, 1}, {0, 1}, {1, 1},
	{-1, 0}, {1, 0},
	{-1, -1}, {0, -1}, {1, -1},
}

// EdgeTerms runs a Sobel kernel with sample spacing t over the normal buffer
// and over linearized depth. The normal term is capped at 3; the depth term
// is divided by a quadratic in the center depth so grazing surfaces far away
// do not read as edges.
func EdgeTerms(in *Inputs, uv, t mathutil.Vec2) (normalEdge, depthEdge float64) {
	var ns [8]mathutil.Vec3
	var ds [8]float64
	for i, o := range sobelOffsets {
		s := uv.Add(o.Mul(t))
		n := in.Targets.SampleNormal(s)
		ns[i] = mathutil.Vec3{n[0], n[1], n[2]}
		ds[i] = in.LinearDepth(s)
	}
	const tl, tc, tr, ml, mr, bl, bc, br = 0, 1, 2, 3, 4, 5, 6, 7

	gx := ns[tr].Add(ns[mr].Scale(2)).Add(ns[br]).Sub(ns[tl]).Sub(ns[ml].Scale(2)).Sub(ns[bl])
	gy := ns[bl].Add(ns[bc].Scale(2)).Add(ns[br]).Sub(ns[tl]).Sub(ns[tc].Scale(2)).Sub(ns[tr])
	normalEdge = math.Min(gx.Len()+gy.Len(), 3)

	dgx := -ds[tl] - 2*ds[ml] - ds[bl] + ds[tr] + 2*ds[mr] + ds[br]
	dgy := -ds[tl] - 2*ds[tc] - ds[tr] + ds[bl] + 2*ds[bc] + ds[br]
	cd := in.LinearDepth(uv)
	depthEdge = (math.Abs(dgx) + math.Abs(dgy)) / (cd*cd*depthNormA + cd*depthNormB + depthNormC)
	return normalEdge, depthEdge
}

// EdgeStrength is the combined uniform edge signal used by the lens modes.
func EdgeStrength(in *Inputs, uv, t mathutil.Vec2) float64 {
	ne, de := EdgeTerms(in, uv, t)
	return math.Max(ne*0.25, de*1.2)
}

// Outline detects creases from normals and silhouettes from depth and inks
// them. outlineVariation blends from a uniform line toward one where
// silhouettes are heavier than creases and lines thicken on surfaces turning
// away from the camera.
type Outline struct{}

func (Outline) Name() string { return "outline" }

func (Outline) Enabled(p *style.Params) bool { return style.Enabled(p.EnableOutlines) }

func (Outline) Apply(c shaderlib.RGB, ctx *Context) shaderlib.RGB {
	p := ctx.P
	if !style.Enabled(p.EnableOutlines) {
		return c
	}
	edge := OutlineEdge(ctx)
	return c.Mix(inkTone, edge)
}

// OutlineEdge returns the ink coverage in [0,1] for the pixel.
func OutlineEdge(ctx *Context) float64 {
	p := ctx.P
	in := ctx.In
	uv := ctx.UV

	cd := in.LinearDepth(uv)
	df := shaderlib.Clamp(1-(cd-in.Near)/(in.Far*0.3), 0.6, 1.3)
	jitter := 1.0
	if style.Enabled(p.EnableWobble) {
		jitter = 0.7 + shaderlib.ValueNoise(uv.Scale(p.WobbleFreq*2))*0.6
	}
	t := ctx.Texel.Scale(p.OutlineThickness * df * jitter)

	ne, de := EdgeTerms(in, uv, t)
	thr := p.OutlineThreshold
	crease := shaderlib.Smoothstep(thr, thr+0.5, ne*0.25)
	st := thr * 0.75
	silhouette := shaderlib.Smoothstep(st, st+0.5, de*1.2)
	uniform := math.Max(crease, silhouette)
	if p.OutlineVariation <= 0 {
		return uniform
	}

	variable := silhouette + crease*0.65 + crease*silhouette*0.5
	enc := in.Targets.SampleNormal(uv)
	if enc[0]+enc[1]+enc[2] > 1e-3 {
		n := raster.DecodeNormal(enc)
		variable *= 1 + 0.6*shaderlib.Smoothstep(0.4, 1, 1-n[2])
	}
	variable = shaderlib.Clamp01(variable)
	return shaderlib.Mix(uniform, variable, p.OutlineVariation)
}
