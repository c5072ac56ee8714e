package scene

import (
	"fmt"
	"image"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/shaderlib"
)

// TextureResolver looks up an image referenced by a model file.
type TextureResolver interface {
	Resolve(name string) *image.NRGBA
}

// LoadGLTF reads every triangle primitive of a .gltf or .glb file into one
// mesh. Node transforms are ignored. The returned material carries the base
// color factor of the first primitive that has one, and the first external
// base color texture tex can resolve. tex may be nil.
func LoadGLTF(path string, tex TextureResolver) (*Mesh, *Material, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("scene: open %s: %w", path, err)
	}

	mesh := &Mesh{}
	mat := &Material{Color: shaderlib.Gray(0.8), Roughness: 0.5}
	haveColor := false
	missingNormals := false

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, nil, fmt.Errorf("scene: read positions %s: %w", path, err)
			}

			var normals [][3]float32
			if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
				normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
			}
			var uvs [][2]float32
			if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
				uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
			}

			var indices []uint32
			if prim.Indices != nil {
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, nil, fmt.Errorf("scene: read indices %s: %w", path, err)
				}
			} else {
				indices = make([]uint32, len(positions))
				for k := range indices {
					indices[k] = uint32(k)
				}
			}

			base := len(mesh.Positions)
			for i, p := range positions {
				var n mathutil.Vec3
				if i < len(normals) {
					n = mathutil.Vec3{float64(normals[i][0]), float64(normals[i][1]), float64(normals[i][2])}
				} else {
					missingNormals = true
				}
				var uv [2]float64
				if i < len(uvs) {
					uv = [2]float64{float64(uvs[i][0]), float64(uvs[i][1])}
				}
				mesh.addVertex(mathutil.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}, n, uv)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.Tris = append(mesh.Tris, [3]int{
					base + int(indices[i]),
					base + int(indices[i+1]),
					base + int(indices[i+2]),
				})
			}

			if prim.Material != nil && int(*prim.Material) < len(doc.Materials) {
				if pbr := doc.Materials[*prim.Material].PBRMetallicRoughness; pbr != nil {
					if !haveColor && pbr.BaseColorFactor != nil {
						f := pbr.BaseColorFactor
						mat.Color = shaderlib.RGB{f[0], f[1], f[2]}
						haveColor = true
					}
					if mat.Texture == nil && tex != nil && pbr.BaseColorTexture != nil {
						mat.Texture = resolveTexture(doc, int(pbr.BaseColorTexture.Index), tex)
					}
				}
			}
		}
	}

	if len(mesh.Tris) == 0 {
		return nil, nil, fmt.Errorf("scene: no triangles found in %s", path)
	}
	if missingNormals {
		mesh.ComputeNormals()
	}
	return mesh, mat, nil
}

func resolveTexture(doc *gltf.Document, index int, tex TextureResolver) *image.NRGBA {
	if index < 0 || index >= len(doc.Textures) || doc.Textures[index].Source == nil {
		return nil
	}
	src := int(*doc.Textures[index].Source)
	if src >= len(doc.Images) {
		return nil
	}
	img := doc.Images[src]
	if img.URI == "" || img.IsEmbeddedResource() {
		return nil
	}
	return tex.Resolve(img.URI)
}
