package postprocess

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Thumbnail scales img to fit inside maxW×maxH keeping its aspect ratio.
func Thumbnail(img image.Image, maxW, maxH int) *image.NRGBA {
	t := resize.Thumbnail(uint(maxW), uint(maxH), img, resize.Lanczos3)
	if n, ok := t.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := t.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), t, b.Min, draw.Src)
	return dst
}

// Sheet lays tiles out left to right in rows of cols, each cell sized to the
// largest tile, on an opaque background.
func Sheet(tiles []*image.NRGBA, cols int, bg color.Color) *image.NRGBA {
	if len(tiles) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	if cols <= 0 || cols > len(tiles) {
		cols = len(tiles)
	}
	cw, ch := 0, 0
	for _, t := range tiles {
		cw = max(cw, t.Bounds().Dx())
		ch = max(ch, t.Bounds().Dy())
	}
	rows := (len(tiles) + cols - 1) / cols
	sheet := image.NewNRGBA(image.Rect(0, 0, cols*cw, rows*ch))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	for i, t := range tiles {
		at := image.Pt((i%cols)*cw, (i/cols)*ch)
		draw.Draw(sheet, t.Bounds().Sub(t.Bounds().Min).Add(at), t, t.Bounds().Min, draw.Over)
	}
	return sheet
}
