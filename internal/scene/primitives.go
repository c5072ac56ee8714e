package scene

import (
	"math"

	"comic-lens-renderer/internal/mathutil"
)

// Plane builds a w×h grid in the XY plane facing +Z.
func Plane(w, h float64, seg int) *Mesh {
	if seg < 1 {
		seg = 1
	}
	m := &Mesh{}
	n := mathutil.Vec3{0, 0, 1}
	for iy := 0; iy <= seg; iy++ {
		v := float64(iy) / float64(seg)
		for ix := 0; ix <= seg; ix++ {
			u := float64(ix) / float64(seg)
			m.addVertex(mathutil.Vec3{(u - 0.5) * w, (0.5 - v) * h, 0}, n, [2]float64{u, 1 - v})
		}
	}
	row := seg + 1
	for iy := 0; iy < seg; iy++ {
		for ix := 0; ix < seg; ix++ {
			a := iy*row + ix
			b := (iy+1)*row + ix
			c := (iy+1)*row + ix + 1
			d := iy*row + ix + 1
			m.Tris = append(m.Tris, [3]int{a, b, d}, [3]int{b, c, d})
		}
	}
	return m
}

// Sphere builds a UV sphere.
func Sphere(r float64, wSeg, hSeg int) *Mesh {
	m := &Mesh{}
	grid := make([][]int, hSeg+1)
	for iy := 0; iy <= hSeg; iy++ {
		v := float64(iy) / float64(hSeg)
		grid[iy] = make([]int, wSeg+1)
		for ix := 0; ix <= wSeg; ix++ {
			u := float64(ix) / float64(wSeg)
			p := mathutil.Vec3{
				-r * math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi),
				r * math.Cos(v*math.Pi),
				r * math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi),
			}
			grid[iy][ix] = m.addVertex(p, p.Normalize(), [2]float64{u, 1 - v})
		}
	}
	for iy := 0; iy < hSeg; iy++ {
		for ix := 0; ix < wSeg; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				m.Tris = append(m.Tris, [3]int{a, b, d})
			}
			if iy != hSeg-1 {
				m.Tris = append(m.Tris, [3]int{b, c, d})
			}
		}
	}
	return m
}

// Cylinder builds a capped frustum along Y centred on the origin.
func Cylinder(rTop, rBottom, height float64, seg int) *Mesh {
	m := &Mesh{}
	half := height / 2
	slope := (rBottom - rTop) / height
	var ring [2][]int
	for y := 0; y <= 1; y++ {
		radius := float64(y)*(rBottom-rTop) + rTop
		ring[y] = make([]int, seg+1)
		for x := 0; x <= seg; x++ {
			u := float64(x) / float64(seg)
			sin, cos := math.Sincos(u * 2 * math.Pi)
			p := mathutil.Vec3{radius * sin, -float64(y)*height + half, radius * cos}
			n := mathutil.Vec3{sin, slope, cos}.Normalize()
			ring[y][x] = m.addVertex(p, n, [2]float64{u, 1 - float64(y)})
		}
	}
	for x := 0; x < seg; x++ {
		a, b := ring[0][x], ring[1][x]
		c, d := ring[1][x+1], ring[0][x+1]
		m.Tris = append(m.Tris, [3]int{a, b, d}, [3]int{b, c, d})
	}
	m.cap(half, rTop, seg, mathutil.Vec3{0, 1, 0})
	m.cap(-half, rBottom, seg, mathutil.Vec3{0, -1, 0})
	return m
}

func (m *Mesh) cap(y, radius float64, seg int, n mathutil.Vec3) {
	if radius <= 0 {
		return
	}
	center := m.addVertex(mathutil.Vec3{0, y, 0}, n, [2]float64{0.5, 0.5})
	first := len(m.Positions)
	for x := 0; x <= seg; x++ {
		sin, cos := math.Sincos(float64(x) / float64(seg) * 2 * math.Pi)
		m.addVertex(mathutil.Vec3{radius * sin, y, radius * cos}, n, [2]float64{sin*0.5 + 0.5, cos*0.5 + 0.5})
	}
	for x := 0; x < seg; x++ {
		m.Tris = append(m.Tris, m.oriented([3]int{center, first + x, first + x + 1}, n))
	}
}

// oriented swaps the winding of t when its geometric normal opposes want.
func (m *Mesh) oriented(t [3]int, want mathutil.Vec3) [3]int {
	a, b, c := m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]]
	if b.Sub(a).Cross(c.Sub(a)).Dot(want) < 0 {
		t[1], t[2] = t[2], t[1]
	}
	return t
}

// Torus builds a ring in the XY plane.
func Torus(radius, tube float64, radialSeg, tubularSeg int) *Mesh {
	m := &Mesh{}
	for j := 0; j <= radialSeg; j++ {
		for i := 0; i <= tubularSeg; i++ {
			u := float64(i) / float64(tubularSeg) * 2 * math.Pi
			v := float64(j) / float64(radialSeg) * 2 * math.Pi
			p := mathutil.Vec3{
				(radius + tube*math.Cos(v)) * math.Cos(u),
				(radius + tube*math.Cos(v)) * math.Sin(u),
				tube * math.Sin(v),
			}
			center := mathutil.Vec3{radius * math.Cos(u), radius * math.Sin(u), 0}
			m.addVertex(p, p.Sub(center).Normalize(), [2]float64{float64(i) / float64(tubularSeg), float64(j) / float64(radialSeg)})
		}
	}
	row := tubularSeg + 1
	for j := 1; j <= radialSeg; j++ {
		for i := 1; i <= tubularSeg; i++ {
			a := row*j + i - 1
			b := row*(j-1) + i - 1
			c := row*(j-1) + i
			d := row*j + i
			m.Tris = append(m.Tris, [3]int{a, b, d}, [3]int{b, c, d})
		}
	}
	return m
}

// TorusKnot builds a (p,q) torus knot tube.
func TorusKnot(radius, tube float64, tubularSeg, radialSeg, p, q int) *Mesh {
	curve := func(u float64) mathutil.Vec3 {
		quOverP := float64(q) / float64(p) * u
		cs := math.Cos(quOverP)
		return mathutil.Vec3{
			radius * (2 + cs) * 0.5 * math.Cos(u),
			radius * (2 + cs) * 0.5 * math.Sin(u),
			radius * math.Sin(quOverP) * 0.5,
		}
	}
	m := &Mesh{}
	for i := 0; i <= tubularSeg; i++ {
		u := float64(i) / float64(tubularSeg) * float64(p) * 2 * math.Pi
		p1 := curve(u)
		p2 := curve(u + 0.01)
		tangent := p2.Sub(p1)
		n := p2.Add(p1)
		b := tangent.Cross(n)
		n = b.Cross(tangent)
		b = b.Normalize()
		n = n.Normalize()
		for j := 0; j <= radialSeg; j++ {
			v := float64(j) / float64(radialSeg) * 2 * math.Pi
			cx := -tube * math.Cos(v)
			cy := tube * math.Sin(v)
			pos := p1.Add(n.Scale(cx)).Add(b.Scale(cy))
			m.addVertex(pos, pos.Sub(p1).Normalize(), [2]float64{float64(i) / float64(tubularSeg), float64(j) / float64(radialSeg)})
		}
	}
	row := radialSeg + 1
	for j := 1; j <= tubularSeg; j++ {
		for i := 1; i <= radialSeg; i++ {
			a := row*(j-1) + i - 1
			b := row*j + i - 1
			c := row*j + i
			d := row*(j-1) + i
			m.Tris = append(m.Tris, [3]int{a, b, d}, [3]int{b, c, d})
		}
	}
	return m
}

var phi = (1 + math.Sqrt(5)) / 2

var icosahedronVerts = []mathutil.Vec3{
	{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
	{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
	{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
}

var icosahedronTris = [][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

var dodecahedronVerts = func() []mathutil.Vec3 {
	r := 1 / phi
	return []mathutil.Vec3{
		{-1, -1, -1}, {-1, -1, 1}, {-1, 1, -1}, {-1, 1, 1},
		{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
		{0, -r, -phi}, {0, -r, phi}, {0, r, -phi}, {0, r, phi},
		{-r, -phi, 0}, {-r, phi, 0}, {r, -phi, 0}, {r, phi, 0},
		{-phi, 0, -r}, {phi, 0, -r}, {-phi, 0, r}, {phi, 0, r},
	}
}()

// Twelve pentagons, three triangles each.
var dodecahedronTris = [][3]int{
	{3, 11, 7}, {3, 7, 15}, {3, 15, 13},
	{7, 19, 17}, {7, 17, 6}, {7, 6, 15},
	{17, 4, 8}, {17, 8, 10}, {17, 10, 6},
	{8, 0, 16}, {8, 16, 2}, {8, 2, 10},
	{0, 12, 1}, {0, 1, 18}, {0, 18, 16},
	{6, 10, 2}, {6, 2, 13}, {6, 13, 15},
	{2, 16, 18}, {2, 18, 3}, {2, 3, 13},
	{18, 1, 9}, {18, 9, 11}, {18, 11, 3},
	{4, 14, 12}, {4, 12, 0}, {4, 0, 8},
	{11, 9, 5}, {11, 5, 19}, {11, 19, 7},
	{19, 5, 14}, {19, 14, 4}, {19, 4, 17},
	{1, 12, 14}, {1, 14, 5}, {1, 5, 9},
}

func polyhedron(verts []mathutil.Vec3, tris [][3]int, radius float64) *Mesh {
	m := &Mesh{Tris: make([][3]int, len(tris))}
	for _, v := range verts {
		n := v.Normalize()
		m.addVertex(n.Scale(radius), n, [2]float64{})
	}
	copy(m.Tris, tris)
	return m
}

// Icosahedron builds a 20-face polyhedron of the given circumradius.
func Icosahedron(radius float64) *Mesh {
	return polyhedron(icosahedronVerts, icosahedronTris, radius)
}

// Dodecahedron builds a 12-face polyhedron of the given circumradius.
func Dodecahedron(radius float64) *Mesh {
	return polyhedron(dodecahedronVerts, dodecahedronTris, radius)
}
