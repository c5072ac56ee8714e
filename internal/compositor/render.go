package compositor

import (
	"image"
	"math"
	"runtime"
	"sync"

	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/raster"
	"comic-lens-renderer/internal/shaderlib"
	"comic-lens-renderer/internal/style"
)

// Compositor runs the stage list over a frame. It reuses scratch buffers
// between calls, so one Compositor must not render concurrently.
type Compositor struct {
	Stages  []Stage
	Workers int

	source []float64
	uvs    []mathutil.Vec2
}

func New() *Compositor {
	return &Compositor{Stages: DefaultStages(), Workers: runtime.NumCPU()}
}

// segment is a run of enabled stages that can be evaluated pixel by pixel
// without seeing neighbours. A non-nil barrier starts the segment.
type segment struct {
	barrier Stage
	stages  []Stage
}

func (c *Compositor) segments(p *style.Params) []segment {
	segs := []segment{{}}
	for _, s := range c.Stages {
		if !s.Enabled(p) {
			continue
		}
		if _, ok := s.(Barrier); ok {
			segs = append(segs, segment{barrier: s})
			continue
		}
		last := &segs[len(segs)-1]
		last.stages = append(last.stages, s)
	}
	return segs
}

// Render writes the stylized color for every pixel of region into dst, a
// full-frame RGB buffer. Pixels outside region are left untouched.
func (c *Compositor) Render(in *Inputs, p *style.Params, region image.Rectangle, dst []float64) {
	w, h := in.Targets.Width, in.Targets.Height
	region = region.Intersect(image.Rect(0, 0, w, h))
	if region.Empty() {
		return
	}
	segs := c.segments(p)
	if len(segs) == 1 {
		c.parallel(region, func(x, y int) {
			ctx := NewContext(in, p, PixelUV(x, y, w, h))
			col := in.Targets.SampleColor(ctx.UV)
			col = runStages(segs[0].stages, col, ctx)
			store(dst, y*w+x, col.Clamp01())
		})
		return
	}

	n := w * h
	if len(c.source) != n*3 {
		c.source = make([]float64, n*3)
		c.uvs = make([]mathutil.Vec2, n)
	}
	pad := BarrierPad(p)
	outer := region.Inset(-pad).Intersect(image.Rect(0, 0, w, h))

	c.parallel(outer, func(x, y int) {
		ctx := NewContext(in, p, PixelUV(x, y, w, h))
		col := in.Targets.SampleColor(ctx.UV)
		col = runStages(segs[0].stages, col, ctx)
		i := y*w + x
		store(c.source, i, col)
		c.uvs[i] = ctx.UV
	})

	for k, seg := range segs[1:] {
		last := k == len(segs)-2
		area := outer
		if last {
			area = region
		}
		src := c.source
		next := src
		if !last {
			next = make([]float64, len(src))
			copy(next, src)
		}
		c.parallel(area, func(x, y int) {
			i := y*w + x
			ctx := NewContext(in, p, PixelUV(x, y, w, h))
			ctx.UV = c.uvs[i]
			ctx.Source = src
			col := load(src, i)
			col = seg.barrier.Apply(col, ctx)
			col = runStages(seg.stages, col, ctx)
			if last {
				store(dst, i, col.Clamp01())
			} else {
				store(next, i, col)
			}
		})
		c.source = next
	}
}

// BarrierPad is how many pixels past a region the barrier taps can reach:
// the wobble displacement carried in the uv plus the plate offset, and the
// bilinear footprint on top.
func BarrierPad(p *style.Params) int {
	reach := math.Abs(p.CmykOffset)
	if style.Enabled(p.EnableWobble) {
		reach += math.Abs(p.WobbleAmount)
	}
	return int(math.Ceil(reach)) + 2
}

func runStages(stages []Stage, col shaderlib.RGB, ctx *Context) shaderlib.RGB {
	for _, s := range stages {
		col = s.Apply(col, ctx)
	}
	return col
}

func (c *Compositor) parallel(r image.Rectangle, fn func(x, y int)) {
	ParallelRows(r, c.Workers, fn)
}

// ParallelRows calls fn for every pixel of r, splitting rows across workers.
// Each row is visited by exactly one goroutine and the call returns after
// all of them finish.
func ParallelRows(r image.Rectangle, workers int, fn func(x, y int)) {
	if workers < 1 {
		workers = 1
	}
	rows := r.Dy()
	if workers > rows {
		workers = rows
	}
	var wg sync.WaitGroup
	for k := 0; k < workers; k++ {
		y0 := r.Min.Y + rows*k/workers
		y1 := r.Min.Y + rows*(k+1)/workers
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					fn(x, y)
				}
			}
		}()
	}
	wg.Wait()
}

// PixelUV returns the uv of the center of pixel (x, y), origin bottom-left.
func PixelUV(x, y, w, h int) mathutil.Vec2 {
	return mathutil.Vec2{(float64(x) + 0.5) / float64(w), 1 - (float64(y)+0.5)/float64(h)}
}

func store(buf []float64, i int, c shaderlib.RGB) {
	buf[i*3], buf[i*3+1], buf[i*3+2] = c[0], c[1], c[2]
}

func load(buf []float64, i int) shaderlib.RGB {
	return shaderlib.RGB{buf[i*3], buf[i*3+1], buf[i*3+2]}
}

// Frame composites the whole frame into a new buffer.
func (c *Compositor) Frame(in *Inputs, p *style.Params) []float64 {
	dst := make([]float64, in.Targets.Width*in.Targets.Height*3)
	c.Render(in, p, image.Rect(0, 0, in.Targets.Width, in.Targets.Height), dst)
	return dst
}

// Image is Frame converted to an 8-bit image.
func (c *Compositor) Image(in *Inputs, p *style.Params) *image.NRGBA {
	return raster.ToNRGBA(c.Frame(in, p), in.Targets.Width, in.Targets.Height)
}
