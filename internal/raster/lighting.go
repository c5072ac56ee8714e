package raster

import (
	"math"

	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/scene"
	"comic-lens-renderer/internal/shaderlib"
)

type dirLight struct {
	dir      mathutil.Vec3 // toward the light
	radiance shaderlib.RGB // linear color × intensity
}

// LightConfig holds lighting precomputed from the scene's lights, in linear
// space.
type LightConfig struct {
	Ambient shaderlib.RGB
	Dirs    []dirLight
	F0      float64 // specular reflectance at normal incidence
}

// NewLightConfig folds the scene lights into ambient irradiance and a list of
// directional lights.
func NewLightConfig(lights []scene.Light) LightConfig {
	lc := LightConfig{F0: 0.04}
	for _, l := range lights {
		radiance := SRGBToLinear(l.Color).Scale(l.Intensity)
		switch l.Kind {
		case scene.Ambient:
			lc.Ambient = lc.Ambient.Add(radiance)
		case scene.Directional:
			dir := l.Position.Normalize()
			if dir.Len() == 0 {
				continue
			}
			lc.Dirs = append(lc.Dirs, dirLight{dir: dir, radiance: radiance})
		}
	}
	return lc
}

// Shade returns linear outgoing radiance for a surface point. albedo is
// linear, n and view are unit vectors (view points toward the eye).
func (lc *LightConfig) Shade(albedo shaderlib.RGB, n, view mathutil.Vec3, roughness float64) shaderlib.RGB {
	// Lambertian BRDF is albedo/π.
	diffuse := albedo.Scale(1 / math.Pi)
	out := lc.Ambient.Mul(diffuse)

	shininess := specularPower(roughness)
	norm := (shininess + 8) / (8 * math.Pi)
	for _, l := range lc.Dirs {
		ndl := n.Dot(l.dir)
		if ndl <= 0 {
			continue
		}
		out = out.Add(l.radiance.Mul(diffuse).Scale(ndl))

		h := l.dir.Add(view).Normalize()
		ndh := n.Dot(h)
		if ndh > 0 {
			spec := lc.F0 * norm * math.Pow(ndh, shininess) * ndl
			out = out.Add(l.radiance.Scale(spec))
		}
	}
	return out
}

// specularPower maps roughness to a Blinn-Phong exponent.
func specularPower(roughness float64) float64 {
	r := math.Max(roughness, 0.05)
	return shaderlib.Clamp(2/(r*r*r*r)-2, 1, 1024)
}

// ApplyFog blends a linear color toward the fog color with exponential-squared
// falloff over view distance.
func ApplyFog(c shaderlib.RGB, fog *scene.Fog, dist float64) shaderlib.RGB {
	if fog == nil || fog.Density <= 0 {
		return c
	}
	d := fog.Density * dist
	f := 1 - math.Exp(-d*d)
	return c.Mix(SRGBToLinear(fog.Color), shaderlib.Clamp01(f))
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// SRGBToLinear decodes a gamma-2.2 color. Channels that land on an 8-bit
// level use the lookup table.
func SRGBToLinear(c shaderlib.RGB) shaderlib.RGB {
	var out shaderlib.RGB
	for k, v := range c {
		v = shaderlib.Clamp01(v)
		i := v * 255
		if i == math.Trunc(i) {
			out[k] = srgbToLinear[int(i)]
		} else {
			out[k] = math.Pow(v, 2.2)
		}
	}
	return out
}

// LinearToSRGB encodes to gamma 2.2 and clamps to [0,1].
func LinearToSRGB(c shaderlib.RGB) shaderlib.RGB {
	const inv = 1 / 2.2
	return shaderlib.RGB{
		math.Pow(shaderlib.Clamp01(c[0]), inv),
		math.Pow(shaderlib.Clamp01(c[1]), inv),
		math.Pow(shaderlib.Clamp01(c[2]), inv),
	}
}
