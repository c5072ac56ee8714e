package raster

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/scene"
	"comic-lens-renderer/internal/shaderlib"
)

// ErrBadMesh is returned when a triangle references a missing vertex.
var ErrBadMesh = errors.New("raster: triangle index out of range")

// Renderer draws a scene into RenderTargets: a lit color pass that also
// captures depth, then a normal pass with every material overridden.
type Renderer struct {
	NormalMaterial *scene.Material
}

func NewRenderer() *Renderer {
	return &Renderer{NormalMaterial: scene.NormalMaterial()}
}

// Render fills color, depth and normal buffers for the scene at time t.
func (r *Renderer) Render(sc *scene.Scene, cam *scene.Camera, t float64, rt *RenderTargets) error {
	if err := r.draw(sc, cam, t, rt, rt.Color, rt.Depth); err != nil {
		return fmt.Errorf("raster: color pass: %w", err)
	}
	if err := r.NormalPass(sc, cam, t, rt); err != nil {
		return fmt.Errorf("raster: normal pass: %w", err)
	}
	return nil
}

// NormalPass renders view-space normals with the scene's override material
// and background swapped out. Both are restored on every return path.
func (r *Renderer) NormalPass(sc *scene.Scene, cam *scene.Camera, t float64, rt *RenderTargets) error {
	prevOverride := sc.OverrideMaterial
	prevBackground := sc.Background
	defer func() {
		sc.OverrideMaterial = prevOverride
		sc.Background = prevBackground
	}()
	sc.OverrideMaterial = r.NormalMaterial
	sc.Background = nil
	return r.draw(sc, cam, t, rt, rt.Normal, rt.zbuf)
}

func (r *Renderer) draw(sc *scene.Scene, cam *scene.Camera, t float64, rt *RenderTargets, out, zbuf []float64) error {
	var bg shaderlib.RGB
	if sc.Background != nil {
		bg = *sc.Background
	}
	for i := 0; i < len(out); i += 3 {
		out[i], out[i+1], out[i+2] = bg[0], bg[1], bg[2]
	}
	for i := range zbuf {
		zbuf[i] = 1
	}

	view := cam.View()
	vp := cam.Projection().Mul4(view)
	lc := NewLightConfig(sc.Lights)
	eye := cam.Position

	for _, obj := range sc.Objects {
		if obj.Mesh == nil {
			continue
		}
		mat := obj.Material
		if sc.OverrideMaterial != nil {
			mat = sc.OverrideMaterial
		}
		if mat == nil {
			continue
		}
		model := obj.Model(t)
		mesh := obj.Mesh

		world := make([]mathutil.Vec3, len(mesh.Positions))
		clip := make([]mgl64.Vec4, len(mesh.Positions))
		for i, p := range mesh.Positions {
			wp := model.MulPoint(p)
			world[i] = wp
			clip[i] = vp.Mul4x1(mgl64.Vec4{wp[0], wp[1], wp[2], 1})
		}
		normals := make([]mathutil.Vec3, len(mesh.Positions))
		for i := range normals {
			if i < len(mesh.Normals) {
				normals[i] = model.MulDir(mesh.Normals[i]).Normalize()
			}
		}

		var albedo shaderlib.RGB
		if mat.Shading == scene.ShadeLit {
			albedo = SRGBToLinear(mat.Color)
		}

		flatShaded := mat.FlatShading || (obj.Material != nil && obj.Material.FlatShading)
		var flat mathutil.Vec3
		frag := func(pix int, depth float64, a *[attrCount]float64) {
			var c shaderlib.RGB
			n := flat
			if !flatShaded {
				n = mathutil.Vec3{a[attrNormal], a[attrNormal+1], a[attrNormal+2]}.Normalize()
			}
			switch mat.Shading {
			case scene.ShadeNormal:
				vn := view.Mul4x1(mgl64.Vec4{n[0], n[1], n[2], 0})
				v := mathutil.Vec3{vn[0], vn[1], vn[2]}.Normalize()
				c = shaderlib.RGB{v[0]*0.5 + 0.5, v[1]*0.5 + 0.5, v[2]*0.5 + 0.5}
			default:
				wp := mathutil.Vec3{a[attrWorld], a[attrWorld+1], a[attrWorld+2]}
				toEye := eye.Sub(wp).Normalize()
				if n.Dot(toEye) < 0 {
					n = n.Scale(-1)
				}
				base := albedo
				if mat.Texture != nil {
					base = base.Mul(SRGBToLinear(SampleTexture(mat.Texture, a[attrUV], a[attrUV+1])))
				}
				lit := lc.Shade(base, n, toEye, mat.Roughness)
				lit = ApplyFog(lit, sc.Fog, shaderlib.LinearizeDepth(depth, cam.Near, cam.Far))
				c = LinearToSRGB(lit)
			}
			j := pix * 3
			out[j], out[j+1], out[j+2] = c[0], c[1], c[2]
		}

		for _, tri := range mesh.Tris {
			for _, i := range tri {
				if i < 0 || i >= len(mesh.Positions) {
					return fmt.Errorf("%w: %s index %d of %d", ErrBadMesh, obj.Name, i, len(mesh.Positions))
				}
			}
			var cv [3]clipVertex
			for k, i := range tri {
				cv[k].pos = clip[i]
				cv[k].attrs[attrWorld] = world[i][0]
				cv[k].attrs[attrWorld+1] = world[i][1]
				cv[k].attrs[attrWorld+2] = world[i][2]
				cv[k].attrs[attrNormal] = normals[i][0]
				cv[k].attrs[attrNormal+1] = normals[i][1]
				cv[k].attrs[attrNormal+2] = normals[i][2]
				if i < len(mesh.UVs) {
					cv[k].attrs[attrUV] = mesh.UVs[i][0]
					cv[k].attrs[attrUV+1] = mesh.UVs[i][1]
				}
			}
			if flatShaded {
				a, b, c := world[tri[0]], world[tri[1]], world[tri[2]]
				flat = b.Sub(a).Cross(c.Sub(a)).Normalize()
			}
			drawTriangle(cv, rt.Width, rt.Height, zbuf, frag)
		}
	}
	return nil
}
