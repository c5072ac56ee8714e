// Package scene holds the renderable content the comic pipeline draws: meshes,
// materials, lights, fog, the perspective camera and its auto-orbit.
package scene

import (
	"math"

	"comic-lens-renderer/internal/mathutil"
)

// Mesh is an indexed triangle list. Normals and UVs are per vertex and may be
// empty; Normals is filled by ComputeNormals when a loader leaves it out.
type Mesh struct {
	Positions []mathutil.Vec3
	Normals   []mathutil.Vec3
	UVs       [][2]float64
	Tris      [][3]int
}

func (m *Mesh) addVertex(p, n mathutil.Vec3, uv [2]float64) int {
	m.Positions = append(m.Positions, p)
	m.Normals = append(m.Normals, n)
	m.UVs = append(m.UVs, uv)
	return len(m.Positions) - 1
}

// ComputeNormals rebuilds smooth vertex normals by accumulating
// area-weighted face normals.
func (m *Mesh) ComputeNormals() {
	normals := make([]mathutil.Vec3, len(m.Positions))
	for _, t := range m.Tris {
		if !m.validTri(t) {
			continue
		}
		a, b, c := m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]]
		fn := b.Sub(a).Cross(c.Sub(a))
		for _, i := range t {
			normals[i] = normals[i].Add(fn)
		}
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}

func (m *Mesh) validTri(t [3]int) bool {
	n := len(m.Positions)
	return t[0] >= 0 && t[0] < n && t[1] >= 0 && t[1] < n && t[2] >= 0 && t[2] < n
}

// Bounds returns the axis-aligned box of all positions.
func (m *Mesh) Bounds() (lo, hi mathutil.Vec3) {
	if len(m.Positions) == 0 {
		return
	}
	lo = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range m.Positions {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi
}

// Normalize recenters the mesh on the origin and scales it so its largest
// extent equals size.
func (m *Mesh) Normalize(size float64) {
	lo, hi := m.Bounds()
	center := lo.Add(hi).Scale(0.5)
	ext := hi.Sub(lo)
	span := math.Max(ext[0], math.Max(ext[1], ext[2]))
	if span < 1e-9 {
		return
	}
	s := size / span
	for i, p := range m.Positions {
		m.Positions[i] = p.Sub(center).Scale(s)
	}
}
