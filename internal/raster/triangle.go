package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// clipVertex is a vertex after the model-view-projection transform, carrying
// the attributes interpolated across the triangle.
type clipVertex struct {
	pos   mgl64.Vec4
	attrs [attrCount]float64
}

// Interpolated attributes: world position, shading normal, uv.
const (
	attrWorld  = 0
	attrNormal = 3
	attrUV     = 6
	attrCount  = 8
)

// screenVertex is a clipped vertex in pixel space.
type screenVertex struct {
	x, y  float64 // pixels, y down
	depth float64 // window depth [0,1]
	invW  float64
	attrs [attrCount]float64
}

// fragment receives a covered pixel index, its window depth and the
// perspective-correct attribute values.
type fragment func(pix int, depth float64, attrs *[attrCount]float64)

// clipNear clips a triangle against the near plane (z >= -w) and returns a
// polygon of up to four vertices in out.
func clipNear(in [3]clipVertex, out *[4]clipVertex) int {
	n := 0
	for i := 0; i < 3; i++ {
		a := in[i]
		b := in[(i+1)%3]
		da := a.pos[2] + a.pos[3]
		db := b.pos[2] + b.pos[3]
		if da >= 0 {
			out[n] = a
			n++
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			var v clipVertex
			for k := 0; k < 4; k++ {
				v.pos[k] = a.pos[k] + (b.pos[k]-a.pos[k])*t
			}
			for k := range v.attrs {
				v.attrs[k] = a.attrs[k] + (b.attrs[k]-a.attrs[k])*t
			}
			out[n] = v
			n++
		}
	}
	return n
}

func toScreen(v clipVertex, w, h int) screenVertex {
	invW := 1 / v.pos[3]
	nx := v.pos[0] * invW
	ny := v.pos[1] * invW
	nz := v.pos[2] * invW
	sv := screenVertex{
		x:     (nx*0.5 + 0.5) * float64(w),
		y:     (0.5 - ny*0.5) * float64(h),
		depth: nz*0.5 + 0.5,
		invW:  invW,
	}
	for k := range sv.attrs {
		sv.attrs[k] = v.attrs[k] * invW
	}
	return sv
}

// drawTriangle clips, projects and scan-converts one triangle, depth-testing
// against zbuf (less wins) and calling frag for every visible pixel.
//
// This is the HOT PATH: no allocation per pixel.
func drawTriangle(in [3]clipVertex, w, h int, zbuf []float64, frag fragment) {
	var poly [4]clipVertex
	n := clipNear(in, &poly)
	if n < 3 {
		return
	}
	var sv [4]screenVertex
	for i := 0; i < n; i++ {
		sv[i] = toScreen(poly[i], w, h)
	}
	for i := 1; i+1 < n; i++ {
		rasterize(sv[0], sv[i], sv[i+1], w, h, zbuf, frag)
	}
}

func rasterize(v0, v1, v2 screenVertex, w, h int, zbuf []float64, frag fragment) {
	area := (v1.x-v0.x)*(v2.y-v0.y) - (v1.y-v0.y)*(v2.x-v0.x)
	if area > -1e-12 && area < 1e-12 {
		return
	}
	invArea := 1 / area

	minX := int(math.Floor(math.Min(v0.x, math.Min(v1.x, v2.x))))
	maxX := int(math.Ceil(math.Max(v0.x, math.Max(v1.x, v2.x))))
	minY := int(math.Floor(math.Min(v0.y, math.Min(v1.y, v2.y))))
	maxY := int(math.Ceil(math.Max(v0.y, math.Max(v1.y, v2.y))))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > w-1 {
		maxX = w - 1
	}
	if maxY > h-1 {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	var attrs [attrCount]float64
	for sy := minY; sy <= maxY; sy++ {
		py := float64(sy) + 0.5
		rowOff := sy * w
		for sx := minX; sx <= maxX; sx++ {
			px := float64(sx) + 0.5
			// Barycentric weights, normalized so they are positive inside
			// regardless of winding.
			b0 := ((v1.x-px)*(v2.y-py) - (v1.y-py)*(v2.x-px)) * invArea
			b1 := ((v2.x-px)*(v0.y-py) - (v2.y-py)*(v0.x-px)) * invArea
			b2 := 1 - b0 - b1
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			depth := b0*v0.depth + b1*v1.depth + b2*v2.depth
			if depth < 0 || depth > 1 {
				continue
			}
			idx := rowOff + sx
			if depth >= zbuf[idx] {
				continue
			}

			iw := b0*v0.invW + b1*v1.invW + b2*v2.invW
			if iw <= 0 {
				continue
			}
			inv := 1 / iw
			for k := range attrs {
				attrs[k] = (b0*v0.attrs[k] + b1*v1.attrs[k] + b2*v2.attrs[k]) * inv
			}
			zbuf[idx] = depth
			frag(idx, depth, &attrs)
		}
	}
}
