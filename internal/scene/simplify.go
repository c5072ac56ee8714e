package scene

import (
	"github.com/fogleman/simplify"

	"comic-lens-renderer/internal/mathutil"
)

// Simplify decimates m to roughly factor×(triangle count) using quadric error
// collapse. UVs are dropped and smooth normals are recomputed.
func Simplify(m *Mesh, factor float64) *Mesh {
	if factor >= 1 || len(m.Tris) == 0 {
		return m
	}
	tris := make([]*simplify.Triangle, 0, len(m.Tris))
	for _, t := range m.Tris {
		if !m.validTri(t) {
			continue
		}
		a, b, c := m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]]
		tris = append(tris, simplify.NewTriangle(toSimplify(a), toSimplify(b), toSimplify(c)))
	}
	reduced := simplify.NewMesh(tris).Simplify(factor)

	out := &Mesh{}
	index := make(map[simplify.Vector]int)
	vertex := func(v simplify.Vector) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(out.Positions)
		out.Positions = append(out.Positions, mathutil.Vec3{v.X, v.Y, v.Z})
		index[v] = i
		return i
	}
	for _, t := range reduced.Triangles {
		out.Tris = append(out.Tris, [3]int{vertex(t.V1), vertex(t.V2), vertex(t.V3)})
	}
	out.ComputeNormals()
	return out
}

func toSimplify(v mathutil.Vec3) simplify.Vector {
	return simplify.Vector{X: v[0], Y: v[1], Z: v[2]}
}
