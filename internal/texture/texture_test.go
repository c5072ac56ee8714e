package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HugoSmits86/nativewebp"

	"comic-lens-renderer/internal/raster"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{v, 128, 255 - v, 255})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func samePixels(t *testing.T, got, want *image.NRGBA) {
	t.Helper()
	if got.Bounds() != want.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), want.Bounds())
	}
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("Pix[%d] = %d, want %d", i, got.Pix[i], want.Pix[i])
		}
	}
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.png")
	want := checker(5, 3)
	writePNG(t, path, want)
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	samePixels(t, got, want)
}

func TestLoadWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.webp")
	want := checker(4, 4)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := nativewebp.Encode(f, want, nil); err != nil {
		t.Fatal(err)
	}
	f.Close()
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	samePixels(t, got, want)
}

func TestLoadTGA(t *testing.T) {
	// 2×1 uncompressed 24-bit, top-left origin, pixels stored BGR.
	data := []byte{
		0, 0, 2, 0, 0, 0, 0, 0,
		0, 0, 0, 0,
		2, 0, 1, 0,
		24, 0x20,
		0, 0, 255, // red
		255, 0, 0, // blue
	}
	// TGA 2.0 footer: no extension or developer area.
	data = append(data, 0, 0, 0, 0, 0, 0, 0, 0)
	data = append(data, "TRUEVISION-XFILE.\x00"...)
	path := filepath.Join(t.TempDir(), "p.TGA")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	img, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c := img.NRGBAAt(0, 0); c != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel 0 = %v, want red", c)
	}
	if c := img.NRGBAAt(1, 0); c != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("pixel 1 = %v, want blue", c)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
	junk := filepath.Join(dir, "junk.png")
	os.WriteFile(junk, []byte("not an image"), 0644)
	if _, err := Load(junk); err == nil {
		t.Error("junk decoded without error")
	}
}

func TestDecodeSniffsFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker(3, 2)); err != nil {
		t.Fatal(err)
	}
	// A misleading extension must not route PNG data to another decoder.
	img, err := Decode(bytes.NewReader(buf.Bytes()), ".bin")
	if err != nil {
		t.Fatal(err)
	}
	samePixels(t, img, checker(3, 2))

	if _, err := Decode(bytes.NewReader([]byte("GIF")), ""); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("short input: err = %v, want ErrUnknownFormat", err)
	}
	if _, err := Decode(strings.NewReader("plain text, not pixels"), ".png"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("text: err = %v, want ErrUnknownFormat", err)
	}
}

func TestToNRGBAMovesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(3, 4, 5, 6))
	src.Set(3, 4, color.RGBA{10, 20, 30, 255})
	got := toNRGBA(src)
	if got.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if c := got.NRGBAAt(0, 0); c != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("origin pixel = %v", c)
	}
}

func TestCache(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), checker(2, 2))
	c := NewCache(dir)

	first := c.Resolve("a.png")
	if first == nil {
		t.Fatal("a.png not resolved")
	}
	if again := c.Resolve(filepath.Join(dir, "a.png")); again != first {
		t.Error("absolute and relative names should share one entry")
	}
	if c.Resolve("nope.png") != nil {
		t.Error("missing texture should resolve to nil")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2 (failures are cached)", c.Len())
	}

	var _ Resolver = c
}

func TestLoadTargets(t *testing.T) {
	dir := t.TempDir()
	p := func(n string) string { return filepath.Join(dir, n) }
	writePNG(t, p("color.png"), checker(4, 2))
	writePNG(t, p("normal.png"), checker(4, 2))
	depth := image.NewGray(image.Rect(0, 0, 4, 2))
	depth.SetGray(1, 1, color.Gray{Y: 255})
	writePNG(t, p("depth.png"), depth)

	rt, err := LoadTargets(p("color.png"), p("normal.png"), p("depth.png"))
	if err != nil {
		t.Fatal(err)
	}
	if rt.Width != 4 || rt.Height != 2 || !rt.Consistent() {
		t.Fatalf("targets %dx%d consistent=%v", rt.Width, rt.Height, rt.Consistent())
	}
	if rt.Depth[1*4+1] != 1 || rt.Depth[0] != 0 {
		t.Errorf("depth = %v", rt.Depth)
	}

	writePNG(t, p("small.png"), checker(2, 2))
	if _, err := LoadTargets(p("color.png"), p("small.png"), p("depth.png")); !errors.Is(err, raster.ErrSizeMismatch) {
		t.Errorf("err = %v, want ErrSizeMismatch", err)
	}
}
