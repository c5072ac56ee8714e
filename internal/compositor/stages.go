package compositor

import (
	"math"

	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/raster"
	"comic-lens-renderer/internal/shaderlib"
	"comic-lens-renderer/internal/style"
)

// Wobble perturbs the sampling coordinate with a static noise field so the
// edges detected later hold still between frames.
type Wobble struct{}

func (Wobble) Name() string { return "wobble" }

func (Wobble) Enabled(p *style.Params) bool { return style.Enabled(p.EnableWobble) }

func (Wobble) Apply(c shaderlib.RGB, ctx *Context) shaderlib.RGB {
	if !style.Enabled(ctx.P.EnableWobble) {
		return c
	}
	ctx.UV = WobbleUV(ctx.BaseUV, ctx.Texel, ctx.P.WobbleAmount, ctx.P.WobbleFreq)
	return ctx.In.Targets.SampleColor(ctx.UV)
}

// WobbleUV displaces uv by up to amount texels along a noise field of the
// given frequency.
func WobbleUV(uv, texel mathutil.Vec2, amount, freq float64) mathutil.Vec2 {
	nc := uv.Scale(freq)
	wx := (shaderlib.ValueNoise(nc) - 0.5) * 2
	wy := (shaderlib.ValueNoise(nc.Add(mathutil.Vec2{43, 17})) - 0.5) * 2
	return uv.Add(mathutil.Vec2{wx, wy}.Mul(texel).Scale(amount))
}

// Cel quantizes luma into bands with a lifted floor, pops highlights to white
// and adds a rim light on surfaces turning away from the camera.
type Cel struct{}

func (Cel) Name() string { return "cel" }

func (Cel) Enabled(p *style.Params) bool { return style.Enabled(p.EnableCelShading) }

func (Cel) Apply(c shaderlib.RGB, ctx *Context) shaderlib.RGB {
	p := ctx.P
	if !style.Enabled(p.EnableCelShading) {
		return c
	}
	l := c.Luma()
	c = c.Scale(CelLevel(l, p.CelBands) / math.Max(l, 0.001)).Clamp01()

	if p.SpecularPop > 0 {
		c = c.Mix(white, p.SpecularPop*shaderlib.Smoothstep(0.85, 0.97, l))
	}
	if p.RimStrength > 0 {
		enc := ctx.In.Targets.SampleNormal(ctx.UV)
		if enc[0]+enc[1]+enc[2] > 1e-3 {
			n := raster.DecodeNormal(enc)
			rim := shaderlib.Smoothstep(p.RimThreshold, 1, 1-n[2]) * p.RimStrength
			c = c.Mix(white, rim)
		}
	}
	return c
}

// CelLevel maps luma to the brightness of the band it falls in (bands split
// [0,1] evenly and luma is floored to its band). The darkest band sits at
// 0.12 and the brightest at 1.
func CelLevel(l, bands float64) float64 {
	n := math.Max(2, math.Round(bands))
	idx := math.Min(math.Floor(shaderlib.Clamp01(l)*n), n-1)
	q := idx / (n - 1)
	return 0.12 + q*0.88
}

// Screen angles for cyan, magenta, yellow and key, in degrees.
var screenAngles = [4]float64{15, 75, 0, 45}

// Halftone screens the color into four rotated CMYK dot grids and fades the
// effect out with distance.
type Halftone struct{}

func (Halftone) Name() string { return "halftone" }

func (Halftone) Enabled(p *style.Params) bool { return style.Enabled(p.EnableHalftone) }

func (Halftone) Apply(c shaderlib.RGB, ctx *Context) shaderlib.RGB {
	p := ctx.P
	if !style.Enabled(p.EnableHalftone) || p.HalftoneIntensity <= 0 {
		return c
	}
	far := ctx.In.Far
	fade := 1 - shaderlib.Smoothstep(0.2*far, 0.5*far, ctx.In.LinearDepth(ctx.UV))
	amount := p.HalftoneIntensity * fade
	if amount <= 0 {
		return c
	}
	cov := HalftoneScreens(c, ctx.UV.Mul(ctx.Res), p.HalftoneSize, p.HalftoneAngle)
	screened := shaderlib.CMYKToRGB(shaderlib.CMYK(cov))
	return c.Mix(screened, amount)
}

// HalftoneScreens returns the dot coverage of each CMYK screen at pixel
// position fc. Dot radius grows with ink up to 0.55 of the cell size.
func HalftoneScreens(c shaderlib.RGB, fc mathutil.Vec2, size, angle float64) [4]float64 {
	ink := shaderlib.RGBToCMYK(c)
	var cov [4]float64
	for ch := 0; ch < 4; ch++ {
		r := ink[ch] * size * 0.55
		if r <= 0 {
			continue
		}
		rot := fc.Rotate(mathutil.Deg2Rad(screenAngles[ch]) + angle)
		cell := mathutil.Vec2{mod(rot[0], size) - size*0.5, mod(rot[1], size) - size*0.5}
		aa := math.Min(1, r)
		cov[ch] = 1 - shaderlib.Smoothstep(r-aa, r+aa, cell.Len())
	}
	return cov
}

func mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// Color boosts saturation and optionally snaps hue toward the six comic
// primaries. It always runs and is an identity at zero boost and punch.
type Color struct{}

func (Color) Name() string { return "color" }

func (Color) Enabled(*style.Params) bool { return true }

func (Color) Apply(c shaderlib.RGB, ctx *Context) shaderlib.RGB {
	return ColorGrade(c, ctx.P.SaturationBoost, ctx.P.ColorPunch)
}

// ColorGrade applies saturation boost and color punch.
func ColorGrade(c shaderlib.RGB, boost, punch float64) shaderlib.RGB {
	if boost == 0 && punch == 0 {
		return c
	}
	hsv := shaderlib.RGBToHSV(c)
	hsv[1] = shaderlib.Clamp01(hsv[1] * (1 + boost))
	if punch > 0 {
		h := hsv[0]
		target := math.Round(h*6) / 6
		hsv[0] = shaderlib.Fract(h + (target-h)*punch)
		sTarget := 0.0
		if hsv[1] >= 0.35 {
			sTarget = 1
		}
		hsv[1] = shaderlib.Mix(hsv[1], sTarget, punch)
	}
	return shaderlib.HSVToRGB(hsv)
}
