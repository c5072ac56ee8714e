package shaderlib

import (
	"math"
	"testing"

	"comic-lens-renderer/internal/mathutil"
)

func TestHashDeterministicAndInRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		p := mathutil.Vec2{float64(i)*1.37 - 50, float64(i*i)*0.11 + 3}
		a, b := Hash(p), Hash(p)
		if a != b {
			t.Fatalf("Hash(%v) not deterministic: %f vs %f", p, a, b)
		}
		if a < 0 || a >= 1 {
			t.Fatalf("Hash(%v) = %f, want [0,1)", p, a)
		}
	}
}

func TestValueNoiseMatchesLatticeAndIsContinuous(t *testing.T) {
	lattice := mathutil.Vec2{3, -7}
	if got, want := ValueNoise(lattice), Hash(lattice); math.Abs(got-want) > 1e-12 {
		t.Errorf("ValueNoise at lattice = %f, want hash %f", got, want)
	}
	prev := ValueNoise(mathutil.Vec2{0, 0.5})
	for i := 1; i <= 400; i++ {
		x := float64(i) * 0.01
		v := ValueNoise(mathutil.Vec2{x, 0.5})
		if v < 0 || v >= 1 {
			t.Fatalf("ValueNoise(%f) = %f out of range", x, v)
		}
		if math.Abs(v-prev) > 0.05 {
			t.Fatalf("ValueNoise jumps %f at x=%f", math.Abs(v-prev), x)
		}
		prev = v
	}
}

func TestFBMRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := FBM(mathutil.Vec2{float64(i) * 0.37, float64(i) * 0.91}, 4)
		if v < 0 || v >= 0.9375 {
			t.Fatalf("FBM = %f, want [0, 0.9375)", v)
		}
	}
	if FBM(mathutil.Vec2{1, 2}, 0) != 0 {
		t.Error("FBM with zero octaves should be 0")
	}
}

func TestHSVRoundTrip(t *testing.T) {
	const eps = 1e-4
	for r := 0.0; r <= 1.0; r += 0.1 {
		for g := 0.0; g <= 1.0; g += 0.1 {
			for b := 0.0; b <= 1.0; b += 0.1 {
				c := RGB{r, g, b}
				back := HSVToRGB(RGBToHSV(c))
				for i := 0; i < 3; i++ {
					if math.Abs(back[i]-c[i]) > eps {
						t.Fatalf("HSV round trip %v -> %v", c, back)
					}
				}
			}
		}
	}
}

func TestCMYKRoundTrip(t *testing.T) {
	const eps = 1e-4
	for r := 0.0; r <= 1.0; r += 0.125 {
		for g := 0.0; g <= 1.0; g += 0.125 {
			for b := 0.0; b <= 1.0; b += 0.125 {
				c := RGB{r, g, b}
				back := CMYKToRGB(RGBToCMYK(c))
				for i := 0; i < 3; i++ {
					if math.Abs(back[i]-c[i]) > eps {
						t.Fatalf("CMYK round trip %v -> %v", c, back)
					}
				}
			}
		}
	}
}

func TestCMYKBlackIsGuarded(t *testing.T) {
	k := RGBToCMYK(RGB{0, 0, 0})
	if k != (CMYK{0, 0, 0, 1}) {
		t.Fatalf("RGBToCMYK(black) = %v, want (0,0,0,1)", k)
	}
	for _, v := range k {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("RGBToCMYK(black) produced %v", k)
		}
	}
	if got := CMYKToRGB(k); got != (RGB{}) {
		t.Errorf("CMYKToRGB(k=1) = %v, want black", got)
	}
	// Any ink with full key still collapses to black.
	if got := CMYKToRGB(CMYK{0.3, 0.6, 0.9, 1}); got != (RGB{}) {
		t.Errorf("CMYKToRGB(k=1 with ink) = %v, want black", got)
	}
}

func TestCyanIsPureCyanInk(t *testing.T) {
	got := RGBToCMYK(RGB{0, 1, 1})
	if got != (CMYK{1, 0, 0, 0}) {
		t.Errorf("RGBToCMYK(cyan) = %v, want (1,0,0,0)", got)
	}
}

func TestLinearizeDepth(t *testing.T) {
	near, far := 0.1, 100.0
	if got := LinearizeDepth(0, near, far); math.Abs(got-near) > 1e-9 {
		t.Errorf("LinearizeDepth(0) = %f, want %f", got, near)
	}
	if got := LinearizeDepth(1, near, far); math.Abs(got-far) > 1e-6 {
		t.Errorf("LinearizeDepth(1) = %f, want %f", got, far)
	}
	for _, dist := range []float64{0.5, 3, 12.5, 70} {
		d := EncodeDepth(dist, near, far)
		if got := LinearizeDepth(d, near, far); math.Abs(got-dist) > 1e-6 {
			t.Errorf("LinearizeDepth(EncodeDepth(%f)) = %f", dist, got)
		}
	}
}

func TestSmoothstepReversedEdges(t *testing.T) {
	if got := Smoothstep(0.55, 0.25, 0.1); got != 1 {
		t.Errorf("falling smoothstep below = %f, want 1", got)
	}
	if got := Smoothstep(0.55, 0.25, 0.9); got != 0 {
		t.Errorf("falling smoothstep above = %f, want 0", got)
	}
	if got := EaseOutCubic(1); got != 1 {
		t.Errorf("EaseOutCubic(1) = %f", got)
	}
}
