package raster

import (
	"image"
	"math"

	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/shaderlib"
)

// SampleTexture performs bilinear filtering with UV wrapping on a material
// texture and returns sRGB color in [0,1].
// Accesses tex.Pix directly for performance.
func SampleTexture(tex *image.NRGBA, u, v float64) shaderlib.RGB {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	u -= math.Floor(u)
	v -= math.Floor(v)

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var c shaderlib.RGB
	for k := 0; k < 3; k++ {
		c[k] = (float64(pix[i00+k])*w00 + float64(pix[i10+k])*w10 +
			float64(pix[i01+k])*w01 + float64(pix[i11+k])*w11) / 255
	}
	return c
}

// Bilinear samples an RGB float buffer at uv with clamp-to-edge. uv has its
// origin at the bottom-left; buffer rows are stored top-down.
func Bilinear(buf []float64, w, h int, uv mathutil.Vec2) shaderlib.RGB {
	fx := uv[0]*float64(w) - 0.5
	fy := (1-uv[1])*float64(h) - 0.5
	x0f := math.Floor(fx)
	y0f := math.Floor(fy)
	dx := fx - x0f
	dy := fy - y0f
	x0 := clampInt(int(x0f), w)
	x1 := clampInt(int(x0f)+1, w)
	y0 := clampInt(int(y0f), h)
	y1 := clampInt(int(y0f)+1, h)

	i00 := (y0*w + x0) * 3
	i10 := (y0*w + x1) * 3
	i01 := (y1*w + x0) * 3
	i11 := (y1*w + x1) * 3
	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	return shaderlib.RGB{
		buf[i00]*w00 + buf[i10]*w10 + buf[i01]*w01 + buf[i11]*w11,
		buf[i00+1]*w00 + buf[i10+1]*w10 + buf[i01+1]*w01 + buf[i11+1]*w11,
		buf[i00+2]*w00 + buf[i10+2]*w10 + buf[i01+2]*w01 + buf[i11+2]*w11,
	}
}

// Nearest returns the texel of an RGB float buffer containing uv.
func Nearest(buf []float64, w, h int, uv mathutil.Vec2) shaderlib.RGB {
	i := nearestIndex(w, h, uv) * 3
	return shaderlib.RGB{buf[i], buf[i+1], buf[i+2]}
}

func nearestIndex(w, h int, uv mathutil.Vec2) int {
	x := clampInt(int(math.Floor(uv[0]*float64(w))), w)
	y := clampInt(int(math.Floor((1-uv[1])*float64(h))), h)
	return y*w + x
}

func clampInt(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// SampleColor filters the color target bilinearly.
func (t *RenderTargets) SampleColor(uv mathutil.Vec2) shaderlib.RGB {
	return Bilinear(t.Color, t.Width, t.Height, uv)
}

// SampleNormal returns the encoded normal texel. Normals are point-sampled
// so edge detection sees discrete per-texel values.
func (t *RenderTargets) SampleNormal(uv mathutil.Vec2) shaderlib.RGB {
	return Nearest(t.Normal, t.Width, t.Height, uv)
}

// SampleDepth returns the window depth texel.
func (t *RenderTargets) SampleDepth(uv mathutil.Vec2) float64 {
	return t.Depth[nearestIndex(t.Width, t.Height, uv)]
}

// DecodeNormal maps an encoded normal texel back to [-1,1]³.
func DecodeNormal(c shaderlib.RGB) mathutil.Vec3 {
	return mathutil.Vec3{c[0]*2 - 1, c[1]*2 - 1, c[2]*2 - 1}
}
