package shaderlib

import (
	"math"

	"comic-lens-renderer/internal/mathutil"
)

// Hash maps a 2D coordinate to a pseudo-random value in [0,1).
func Hash(p mathutil.Vec2) float64 {
	x := Fract(p[0] * 0.1031)
	y := Fract(p[1] * 0.1031)
	z := Fract(p[0] * 0.1031)
	d := x*(y+33.33) + y*(z+33.33) + z*(x+33.33)
	x += d
	y += d
	z += d
	return Fract((x + y) * z)
}

// ValueNoise interpolates lattice hashes with Hermite easing.
func ValueNoise(p mathutil.Vec2) float64 {
	ix, iy := math.Floor(p[0]), math.Floor(p[1])
	fx, fy := p[0]-ix, p[1]-iy
	fx = fx * fx * (3 - 2*fx)
	fy = fy * fy * (3 - 2*fy)

	a := Hash(mathutil.Vec2{ix, iy})
	b := Hash(mathutil.Vec2{ix + 1, iy})
	c := Hash(mathutil.Vec2{ix, iy + 1})
	d := Hash(mathutil.Vec2{ix + 1, iy + 1})
	return Mix(Mix(a, b, fx), Mix(c, d, fx), fy)
}

// Noise2 is ValueNoise on a pair of scalars.
func Noise2(x, y float64) float64 {
	return ValueNoise(mathutil.Vec2{x, y})
}

// FBM sums octaves of value noise at doubling frequency and halving
// amplitude. Each octave is shifted by (100,100) so lattice axes don't line up.
func FBM(p mathutil.Vec2, octaves int) float64 {
	v := 0.0
	a := 0.5
	for i := 0; i < octaves; i++ {
		v += a * ValueNoise(p)
		p = mathutil.Vec2{p[0]*2 + 100, p[1]*2 + 100}
		a *= 0.5
	}
	return v
}
