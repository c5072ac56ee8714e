package lens

import (
	"runtime"

	"comic-lens-renderer/internal/compositor"
	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/shaderlib"
	"comic-lens-renderer/internal/style"
)

// Composer blends the lens into an already stylized frame. In LensStyle mode
// the lens shows the frame run through Style with the lens parameters. A
// Composer reuses a scratch buffer and must not be shared between goroutines.
type Composer struct {
	Style   *compositor.Compositor
	Workers int

	styled []float64
}

func NewComposer() *Composer {
	return &Composer{Style: compositor.New(), Workers: runtime.NumCPU()}
}

// Composite mixes the lens content into dst by the lens mask and draws the
// ink ring over the result. dst is a full-frame RGB buffer holding the main
// style. Nothing is touched while the lens is closed, and only pixels within
// the lens bounds are visited otherwise.
func (c *Composer) Composite(in *compositor.Inputs, mode style.LensMode, lensStyle *style.Params, s Shape, dst []float64) {
	if !s.Active() {
		return
	}
	w, h := in.Targets.Width, in.Targets.Height
	bounds := s.Bounds(w, h)
	if bounds.Empty() {
		return
	}

	var styled []float64
	if mode == style.LensStyle {
		if len(c.styled) != w*h*3 {
			c.styled = make([]float64, w*h*3)
		}
		c.Style.Render(in, lensStyle, bounds, c.styled)
		styled = c.styled
	}

	ink := compositor.InkColor()
	compositor.ParallelRows(bounds, c.Workers, func(x, y int) {
		uv := compositor.PixelUV(x, y, w, h)
		p := s.Deform(uv)
		i := (y*w + x) * 3
		col := shaderlib.RGB{dst[i], dst[i+1], dst[i+2]}

		if m := s.Mask(p); m > minMask {
			var lc shaderlib.RGB
			if styled != nil {
				lc = shaderlib.RGB{styled[i], styled[i+1], styled[i+2]}
			} else {
				lc = Content(mode, in, uv)
			}
			col = col.Mix(lc, m)
		}
		if r := s.Ring(p); r > 0 {
			col = col.Mix(ink, r)
		}
		col = col.Clamp01()
		dst[i], dst[i+1], dst[i+2] = col[0], col[1], col[2]
	})
}

// Content evaluates one of the per-pixel lens modes. LensStyle needs a
// compositor pass and falls back to the raw color here.
func Content(mode style.LensMode, in *compositor.Inputs, uv mathutil.Vec2) shaderlib.RGB {
	switch mode {
	case style.LensSketch:
		return Sketch(in, uv)
	case style.LensNormals:
		return Normals(in, uv)
	case style.LensVoid:
		return Void(in, uv)
	default:
		return in.Targets.SampleColor(uv)
	}
}
