package shaderlib

import "math"

// Fract returns x - floor(x).
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// Mix linearly interpolates a→b by t (no clamping).
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep is the cubic Hermite step. Reversed edges (e0 > e1) produce a
// falling step.
func Smoothstep(e0, e1, x float64) float64 {
	if e0 == e1 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := Clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// EaseOutCubic maps t∈[0,1] to 1-(1-t)³.
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}
