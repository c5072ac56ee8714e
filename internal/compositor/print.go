package compositor

import (
	"math"

	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/raster"
	"comic-lens-renderer/internal/shaderlib"
	"comic-lens-renderer/internal/style"
)

// Plate offsets for cyan, magenta and yellow in units of cmykOffset texels.
var plateOffsets = [3]mathutil.Vec2{{0.7, 1}, {-1, 0.5}, {0.3, -0.8}}

// Misregistration shifts the cyan, magenta and yellow plates against the key
// plate. The drift breathes over time.
type Misregistration struct{}

func (Misregistration) Name() string { return "misregistration" }

func (Misregistration) Enabled(p *style.Params) bool { return style.Enabled(p.EnableCmyk) }

func (Misregistration) Barrier() {}

func (Misregistration) Apply(c shaderlib.RGB, ctx *Context) shaderlib.RGB {
	p := ctx.P
	if !style.Enabled(p.EnableCmyk) {
		return c
	}
	drift := math.Sin(ctx.In.Time*1.5)*0.3 + 0.7
	scale := p.CmykOffset * drift
	if scale == 0 {
		return c
	}
	src := ctx.Source
	if src == nil {
		src = ctx.In.Targets.Color
	}
	w, h := ctx.In.Targets.Width, ctx.In.Targets.Height
	var plates [3]shaderlib.CMYK
	for i, o := range plateOffsets {
		s := raster.Bilinear(src, w, h, ctx.UV.Add(o.Mul(ctx.Texel).Scale(scale)))
		plates[i] = shaderlib.RGBToCMYK(s)
	}
	key := shaderlib.RGBToCMYK(c)
	return shaderlib.CMYKToRGB(shaderlib.CMYK{plates[0][0], plates[1][1], plates[2][2], key[3]})
}

var (
	paperTone = shaderlib.RGB{0.95, 0.92, 0.85}
	agedTone  = shaderlib.RGB{1.0, 0.9, 0.72}
)

// Paper multiplies in a static paper grain, yellows the frame edges and
// darkens the corners.
type Paper struct{}

func (Paper) Name() string { return "paper" }

func (Paper) Enabled(p *style.Params) bool { return style.Enabled(p.EnablePaper) }

func (Paper) Apply(c shaderlib.RGB, ctx *Context) shaderlib.RGB {
	p := ctx.P
	if !style.Enabled(p.EnablePaper) || p.PaperStrength <= 0 {
		return c
	}
	s := p.PaperStrength
	uv := ctx.BaseUV

	grain := PaperGrain(uv.Mul(ctx.Res).Scale(0.15))
	c = c.Scale(shaderlib.Mix(1, grain*0.3+0.7, s))
	c = c.Mix(c.Mul(paperTone), s*0.5)

	edge := math.Min(math.Min(uv[0], 1-uv[0]), math.Min(uv[1], 1-uv[1]))
	age := (1 - shaderlib.Smoothstep(0, 0.25, edge)) * s * 0.35
	c = c.Mix(c.Mul(agedTone), age)

	vig := math.Min(1, math.Pow(math.Max(0, uv[0]*(1-uv[0])*uv[1]*(1-uv[1])*20), 0.3))
	return c.Scale(shaderlib.Mix(1, vig, s*0.4))
}

// PaperGrain blends fine tooth, directional fiber and broad absorption
// blotches into a value in roughly [0.45, 1.1].
func PaperGrain(pc mathutil.Vec2) float64 {
	tooth := shaderlib.FBM(pc.Scale(3), 4)*0.5 + 0.5
	fiber := shaderlib.Noise2(pc[0]*4, pc[1]*0.5)*0.5 + 0.5
	absorb := shaderlib.FBM(pc.Scale(0.2), 3)
	return shaderlib.Mix(tooth, fiber, 0.3) * (0.9 + absorb*0.2)
}
