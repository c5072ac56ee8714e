package lens

import (
	"image"
	"math"
	"testing"

	"comic-lens-renderer/internal/compositor"
	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/raster"
	"comic-lens-renderer/internal/shaderlib"
	"comic-lens-renderer/internal/style"
)

func testInputs(w, h int) *compositor.Inputs {
	rt := raster.NewRenderTargets(w, h)
	d := shaderlib.EncodeDepth(5, 0.1, 100)
	for i := 0; i < w*h; i++ {
		rt.Color[i*3], rt.Color[i*3+1], rt.Color[i*3+2] = 0.8, 0.4, 0.2
		rt.Normal[i*3], rt.Normal[i*3+1], rt.Normal[i*3+2] = 0.5, 0.5, 1
		rt.Depth[i] = d
	}
	return &compositor.Inputs{Targets: rt, Near: 0.1, Far: 100, Time: 2.5}
}

func testShape(w, h int) Shape {
	return Shape{
		Center:   mathutil.Vec2{0.5, 0.5},
		Velocity: mathutil.Vec2{1.5, -0.4},
		Radius:   0.2,
		Smooth:   DefaultSmooth,
		Time:     2.5,
		Aspect:   float64(w) / float64(h),
	}
}

func TestClosedLensLeavesFrameUntouched(t *testing.T) {
	in := testInputs(32, 24)
	dst := make([]float64, 32*24*3)
	for i := range dst {
		dst[i] = 0.25
	}
	s := testShape(32, 24)
	s.Radius = MinRadius

	p := style.DefaultLens()
	NewComposer().Composite(in, style.LensSketch, &p, s, dst)
	for i, v := range dst {
		if v != 0.25 {
			t.Fatalf("dst[%d] = %f, want untouched 0.25", i, v)
		}
	}
	if !s.Bounds(32, 24).Empty() {
		t.Error("closed lens has non-empty bounds")
	}
}

func TestZeroVelocityIsFinite(t *testing.T) {
	s := testShape(16, 16)
	s.Velocity = mathutil.Vec2{}
	for _, uv := range []mathutil.Vec2{{0.5, 0.5}, {0.2, 0.9}, {0.7, 0.1}} {
		p := s.Deform(uv)
		if math.IsNaN(p.EffDist) || math.IsInf(p.EffDist, 0) {
			t.Errorf("Deform(%v) = %v, want finite", uv, p)
		}
	}
	if m := Meteor(-1, 0, 0.2); m != 0 {
		t.Errorf("Meteor at rest = %f, want 0", m)
	}
}

func TestMeteorStretchesTail(t *testing.T) {
	tail := Meteor(-1, 2, 0.1)
	head := Meteor(1, 2, 0.1)
	if tail >= 0 {
		t.Errorf("tail offset = %f, want negative", tail)
	}
	if head <= 0 {
		t.Errorf("head offset = %f, want positive", head)
	}
	if -tail <= head {
		t.Errorf("tail %f should stretch more than head %f squeezes", -tail, head)
	}
	// Offsets scale with radius.
	if got := Meteor(-1, 2, 0.2); math.Abs(got-2*tail) > 1e-12 {
		t.Errorf("Meteor at double radius = %f, want %f", got, 2*tail)
	}
}

func TestIdleWobbleBounded(t *testing.T) {
	for th := -math.Pi; th <= math.Pi; th += 0.1 {
		for tm := 0.0; tm < 60; tm += 1.7 {
			if w := IdleWobble(th, tm); math.Abs(w) > 0.026 {
				t.Fatalf("IdleWobble(%f, %f) = %f, out of range", th, tm, w)
			}
		}
	}
}

func TestMaskInsideAndOutside(t *testing.T) {
	s := testShape(64, 48)
	if m := s.Mask(s.Deform(s.Center)); m != 1 {
		t.Errorf("mask at center = %f, want 1", m)
	}
	if m := s.Mask(s.Deform(mathutil.Vec2{0.02, 0.98})); m != 0 {
		t.Errorf("mask in corner = %f, want 0", m)
	}
}

func TestBoundsCoverLens(t *testing.T) {
	const w, h = 96, 64
	s := testShape(w, h)
	s.Velocity = mathutil.Vec2{4, 3}
	b := s.Bounds(w, h)
	if b.Empty() {
		t.Fatal("active lens has empty bounds")
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if image.Pt(x, y).In(b) {
				continue
			}
			p := s.Deform(compositor.PixelUV(x, y, w, h))
			if m, r := s.Mask(p), s.Ring(p); m != 0 || r != 0 {
				t.Fatalf("pixel (%d,%d) outside %v has mask %f ring %f", x, y, b, m, r)
			}
		}
	}
}

func TestCompositeShowsModeAtCenter(t *testing.T) {
	const w, h = 40, 30
	in := testInputs(w, h)
	s := testShape(w, h)
	s.Velocity = mathutil.Vec2{}
	p := style.DefaultLens()

	cx, cy := w/2, h/2
	uv := compositor.PixelUV(cx, cy, w, h)
	i := (cy*w + cx) * 3

	for _, mode := range []style.LensMode{style.LensSketch, style.LensNormals, style.LensVoid} {
		dst := make([]float64, w*h*3)
		NewComposer().Composite(in, mode, &p, s, dst)
		want := Content(mode, in, uv).Clamp01()
		for k := 0; k < 3; k++ {
			if math.Abs(dst[i+k]-want[k]) > 1e-9 {
				t.Errorf("%v: center = %v, want %v", mode, dst[i:i+3], want)
				break
			}
		}
		if dst[0] != 0 {
			t.Errorf("%v: corner pixel was changed", mode)
		}
	}
}

func TestCompositeStyleModeUsesLensParams(t *testing.T) {
	const w, h = 40, 30
	in := testInputs(w, h)
	s := testShape(w, h)
	raw := style.Raw()

	dst := make([]float64, w*h*3)
	NewComposer().Composite(in, style.LensStyle, &raw, s, dst)
	i := (h/2*w + w/2) * 3
	want := [3]float64{0.8, 0.4, 0.2}
	for k := 0; k < 3; k++ {
		if math.Abs(dst[i+k]-want[k]) > 1e-9 {
			t.Fatalf("center = %v, want raw color %v", dst[i:i+3], want)
		}
	}
}

func TestNormalsModeBoostsContrast(t *testing.T) {
	in := testInputs(8, 8)
	c := Normals(in, mathutil.Vec2{0.5, 0.5})
	// The 0.8 gamma lifts encoded 0.5 above mid grey; z stays saturated.
	if c[0] <= 0.5 || c[0] != c[1] || c[2] < 0.9 {
		t.Errorf("Normals = %v", c)
	}
}
