// Package postprocess resizes finished frames: supersample reduction,
// thumbnails and preview sheets.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a supersampled frame to w×h with CatmullRom filtering.
// Images already within w×h are returned unchanged.
//
// Filtering runs on premultiplied color: the kernel scaler premultiplies an
// NRGBA source on read and writes an RGBA target, so transparent texels add
// no dark fringe. Drawing the result into NRGBA divides alpha back out.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 {
		return img
	}
	if size := img.Bounds().Size(); size.X <= w && size.Y <= h {
		return img
	}
	target := image.Rect(0, 0, w, h)
	filtered := image.NewRGBA(target)
	draw.CatmullRom.Scale(filtered, target, img, img.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(target)
	draw.Draw(out, target, filtered, image.Point{}, draw.Src)
	return out
}
