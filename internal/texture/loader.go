package texture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnknownFormat is returned for data that matches no supported format.
var ErrUnknownFormat = errors.New("texture: unknown image format")

// The tga package registers itself with an empty magic string, which makes
// image.Decode hand every input to it. Formats are therefore matched here
// and decoded directly.
type format struct {
	magic  string // '?' matches any byte
	decode func(io.Reader) (image.Image, error)
}

var formats = []format{
	{"\x89PNG\r\n\x1a\n", png.Decode},
	{"\xff\xd8", jpeg.Decode},
	{"GIF8", gif.Decode},
	{"RIFF????WEBP", webp.Decode},
	{"BM", bmp.Decode},
}

func match(magic string, b []byte) bool {
	if len(b) < len(magic) {
		return false
	}
	for i := 0; i < len(magic); i++ {
		if magic[i] != '?' && magic[i] != b[i] {
			return false
		}
	}
	return true
}

// Load reads an image file and returns it as NRGBA. TGA has no magic number,
// so it is chosen by extension; everything else is sniffed.
func Load(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	img, err := Decode(bytes.NewReader(raw), filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes r. ext is a file extension hint such as ".tga".
func Decode(r io.Reader, ext string) (*image.NRGBA, error) {
	var decode func(io.Reader) (image.Image, error)
	if strings.EqualFold(ext, ".tga") {
		decode = tga.Decode
	} else {
		br := bufio.NewReader(r)
		// Peek returns what is available along with io.EOF for short inputs.
		head, _ := br.Peek(12)
		for _, f := range formats {
			if match(f.magic, head) {
				decode = f.decode
				break
			}
		}
		if decode == nil {
			return nil, ErrUnknownFormat
		}
		r = br
	}
	img, err := decode(r)
	if err != nil {
		return nil, err
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA with its origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
