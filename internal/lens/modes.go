package lens

import (
	"math"

	"comic-lens-renderer/internal/compositor"
	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/shaderlib"
)

var (
	sketchPaper = shaderlib.RGB{0.95, 0.92, 0.87}
	graphite    = shaderlib.RGB{0.18, 0.15, 0.13}

	voidBase  = shaderlib.RGB{0.01, 0.01, 0.03}
	glowBlue  = shaderlib.RGB{0.15, 0.45, 1.0}
	glowCyan  = shaderlib.RGB{0.0, 0.75, 0.85}
	gridTone  = shaderlib.RGB{0.04, 0.08, 0.15}
	sparkTone = shaderlib.RGB{0.3, 0.5, 0.85}
)

// Sketch renders the raw scene as graphite cross-hatching on grained paper
// with a thick, wobbly pencil outline.
func Sketch(in *compositor.Inputs, uv mathutil.Vec2) shaderlib.RGB {
	t := in.Time
	res := in.Resolution()
	l := in.Targets.SampleColor(uv).Luma()

	pc := uv.Mul(res).Scale(0.15)
	paper := sketchPaper.Scale(0.93 + (shaderlib.FBM(pc.Scale(3), 4)*0.5+0.5)*0.07)

	hc := uv.Mul(res).Scale(0.06)
	n := uv.Scale(30).Add(mathutil.Vec2{t * 0.15, t * 0.15})
	hc = hc.Add(mathutil.Vec2{
		shaderlib.ValueNoise(n) * 0.2,
		shaderlib.ValueNoise(n.Add(mathutil.Vec2{50, 0})) * 0.2,
	})

	hatch := hatchLayer(hc[0]+hc[1], 0.88, 0.94)*shaderlib.Smoothstep(0.65, 0.3, l) +
		hatchLayer(hc[0]-hc[1], 0.88, 0.94)*shaderlib.Smoothstep(0.42, 0.15, l) +
		hatchLayer(hc[1]*1.4+hc[0]*0.3, 0.86, 0.93)*shaderlib.Smoothstep(0.22, 0.05, l)
	hatch = math.Min(hatch, 1)
	c := paper.Mix(graphite, hatch*0.6)

	ew := shaderlib.ValueNoise(uv.Scale(40).Add(mathutil.Vec2{t * 0.3, t * 0.3}))
	tap := in.Texel().Scale(1.8 * (0.8 + ew*0.5))
	edge := shaderlib.Smoothstep(0.2, 0.65, compositor.EdgeStrength(in, uv, tap))
	return c.Mix(graphite.Scale(0.5), edge*0.9)
}

// hatchLayer draws thin parallel lines along the coordinate s.
func hatchLayer(s, lo, hi float64) float64 {
	h := math.Abs(shaderlib.Fract(s)-0.5) * 2
	return shaderlib.Smoothstep(lo, hi, h)
}

// Normals shows the encoded view-space normals with boosted contrast and a
// faint scanline.
func Normals(in *compositor.Inputs, uv mathutil.Vec2) shaderlib.RGB {
	n := in.Targets.SampleNormal(uv)
	for i := range n {
		v := math.Pow(n[i], 0.8)
		n[i] = shaderlib.Clamp01((v-0.5)*1.3 + 0.5)
	}
	scan := math.Sin(uv[1]*in.Resolution()[1]*1.5)*0.5 + 0.5
	scan = shaderlib.Smoothstep(0.3, 0.7, scan)
	return n.Scale(0.92 + scan*0.08)
}

// Void shows glowing edges over a dark grid with drifting sparks. Edges fade
// with distance.
func Void(in *compositor.Inputs, uv mathutil.Vec2) shaderlib.RGB {
	t := in.Time
	res := in.Resolution()
	depthFade := shaderlib.Smoothstep(1, 18, in.LinearDepth(uv))

	ew := shaderlib.ValueNoise(uv.Scale(30).Add(mathutil.Vec2{t * 0.3, t * 0.3}))
	tap := in.Texel().Scale(1.5 * (0.8 + ew*0.4))
	edge := shaderlib.Smoothstep(0.15, 0.7, compositor.EdgeStrength(in, uv, tap))
	glow := glowBlue.Mix(glowCyan, ew)

	gc := uv.Mul(res).Scale(0.015)
	grid := math.Max(
		shaderlib.Smoothstep(0.97, 1, shaderlib.Fract(gc[0])),
		shaderlib.Smoothstep(0.97, 1, shaderlib.Fract(gc[1])),
	)

	p1 := shaderlib.ValueNoise(uv.Scale(250).Add(mathutil.Vec2{t * 0.4, t * 0.4}))
	p2 := shaderlib.ValueNoise(uv.Scale(180).Sub(mathutil.Vec2{t * 0.25, t * 0.25}).Add(mathutil.Vec2{100, 0}))
	sparks := shaderlib.Smoothstep(0.96, 1, p1) + shaderlib.Smoothstep(0.97, 1, p2)

	c := voidBase
	c = c.Add(glow.Scale(edge * (1 - depthFade) * 0.85))
	c = c.Add(gridTone.Scale(grid * 0.2 * (1 - depthFade*0.5)))
	return c.Add(sparkTone.Scale(sparks * 0.35))
}
