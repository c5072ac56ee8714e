package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"comic-lens-renderer/internal/shaderlib"
)

// ErrSizeMismatch is returned when external buffers disagree on dimensions.
var ErrSizeMismatch = errors.New("raster: buffer size mismatch")

// RenderTargets holds the three co-registered per-frame buffers as flat
// slices, rows top-down. Color and Normal are RGB triplets in [0,1]; Depth is
// window-space depth in [0,1] with 1 at the far plane.
type RenderTargets struct {
	Width  int
	Height int
	Color  []float64
	Normal []float64
	Depth  []float64

	zbuf []float64 // normal-pass depth test
}

// NewRenderTargets allocates all buffers at w×h.
func NewRenderTargets(w, h int) *RenderTargets {
	t := &RenderTargets{}
	t.Resize(w, h)
	return t
}

// Resize reallocates every buffer for w×h. All new slices are built first and
// then swapped in together, so the targets never disagree on size.
func (t *RenderTargets) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == t.Width && h == t.Height && t.Color != nil {
		return
	}
	n := w * h
	col := make([]float64, n*3)
	normal := make([]float64, n*3)
	depth := make([]float64, n)
	zbuf := make([]float64, n)
	for i := range depth {
		depth[i] = 1
		zbuf[i] = 1
	}
	t.Width, t.Height = w, h
	t.Color, t.Normal, t.Depth, t.zbuf = col, normal, depth, zbuf
}

// Consistent reports whether all buffers match Width×Height.
func (t *RenderTargets) Consistent() bool {
	n := t.Width * t.Height
	return len(t.Color) == n*3 && len(t.Normal) == n*3 && len(t.Depth) == n && len(t.zbuf) == n
}

// ColorAt returns the color pixel at (x, y).
func (t *RenderTargets) ColorAt(x, y int) shaderlib.RGB {
	i := (y*t.Width + x) * 3
	return shaderlib.RGB{t.Color[i], t.Color[i+1], t.Color[i+2]}
}

// ColorImage converts the color buffer to an 8-bit image.
func (t *RenderTargets) ColorImage() *image.NRGBA {
	return ToNRGBA(t.Color, t.Width, t.Height)
}

// ToNRGBA converts an RGB float buffer to an opaque 8-bit image.
func ToNRGBA(buf []float64, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, j := 0, 0; i < w*h; i, j = i+1, j+4 {
		img.Pix[j] = clamp255(buf[i*3] * 255)
		img.Pix[j+1] = clamp255(buf[i*3+1] * 255)
		img.Pix[j+2] = clamp255(buf[i*3+2] * 255)
		img.Pix[j+3] = 255
	}
	return img
}

// FromImages builds targets from externally rendered buffers. Depth is read
// from the red channel at 16-bit precision, which for grayscale images is the
// gray level itself.
func FromImages(colorImg, normalImg, depthImg image.Image) (*RenderTargets, error) {
	b := colorImg.Bounds()
	if normalImg.Bounds().Size() != b.Size() || depthImg.Bounds().Size() != b.Size() {
		return nil, fmt.Errorf("%w: color %v, normal %v, depth %v",
			ErrSizeMismatch, b.Size(), normalImg.Bounds().Size(), depthImg.Bounds().Size())
	}
	t := NewRenderTargets(b.Dx(), b.Dy())
	fill3 := func(dst []float64, img image.Image) {
		ib := img.Bounds()
		for y := 0; y < t.Height; y++ {
			for x := 0; x < t.Width; x++ {
				c := color.NRGBA64Model.Convert(img.At(ib.Min.X+x, ib.Min.Y+y)).(color.NRGBA64)
				i := (y*t.Width + x) * 3
				dst[i] = float64(c.R) / 0xffff
				dst[i+1] = float64(c.G) / 0xffff
				dst[i+2] = float64(c.B) / 0xffff
			}
		}
	}
	fill3(t.Color, colorImg)
	fill3(t.Normal, normalImg)
	db := depthImg.Bounds()
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			c := color.NRGBA64Model.Convert(depthImg.At(db.Min.X+x, db.Min.Y+y)).(color.NRGBA64)
			t.Depth[y*t.Width+x] = float64(c.R) / 0xffff
		}
	}
	return t, nil
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
