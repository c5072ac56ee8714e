package scene

import (
	"image"

	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/shaderlib"
	"comic-lens-renderer/internal/style"
)

// Shading selects how the rasterizer colors a fragment.
type Shading int

const (
	// ShadeLit is the standard lit path (ambient + directional, fogged).
	ShadeLit Shading = iota
	// ShadeNormal writes the view-space normal encoded as n*0.5+0.5.
	ShadeNormal
)

type Material struct {
	Shading     Shading
	Color       shaderlib.RGB // sRGB albedo
	Roughness   float64
	FlatShading bool
	Texture     *image.NRGBA
}

// NormalMaterial is the override used for the normal pass.
func NormalMaterial() *Material {
	return &Material{Shading: ShadeNormal}
}

// Pose is an object placement at one instant.
type Pose struct {
	Position mathutil.Vec3
	Rotation mathutil.Vec3 // Euler XYZ, radians
}

// Object is one mesh instance. Animate, when set, maps the base pose to the
// pose at time t and must not mutate the object.
type Object struct {
	Name     string
	Mesh     *Mesh
	Material *Material
	Base     Pose
	Scale    float64
	Animate  func(base Pose, t float64) Pose
}

func (o *Object) PoseAt(t float64) Pose {
	if o.Animate == nil {
		return o.Base
	}
	return o.Animate(o.Base, t)
}

// Model returns the object-to-world transform at time t.
func (o *Object) Model(t float64) mathutil.Mat4 {
	p := o.PoseAt(t)
	s := o.Scale
	if s == 0 {
		s = 1
	}
	return mathutil.Compose(p.Position, mathutil.EulerMat3(p.Rotation), s)
}

type LightKind int

const (
	Ambient LightKind = iota
	Directional
)

// Light is an ambient or directional light. Directional lights shine from
// Position toward the origin.
type Light struct {
	Kind      LightKind
	Color     shaderlib.RGB
	Intensity float64
	Position  mathutil.Vec3
}

// Fog is exponential-squared distance fog.
type Fog struct {
	Color   shaderlib.RGB
	Density float64
}

type Scene struct {
	Objects []*Object
	Lights  []Light
	// Background clears the color target; nil clears to zero.
	Background *shaderlib.RGB
	Fog        *Fog
	// OverrideMaterial replaces every object material when set.
	OverrideMaterial *Material
	// Ground receives the per-preset ground color.
	Ground *Object
}

// Clone copies the scene graph so a renderer can change colors or swap
// materials without touching the original. Meshes are shared.
func (s *Scene) Clone() *Scene {
	c := &Scene{
		Objects:          make([]*Object, len(s.Objects)),
		Lights:           append([]Light(nil), s.Lights...),
		OverrideMaterial: s.OverrideMaterial,
	}
	if s.Background != nil {
		bg := *s.Background
		c.Background = &bg
	}
	if s.Fog != nil {
		f := *s.Fog
		c.Fog = &f
	}
	for i, o := range s.Objects {
		oc := *o
		if o.Material != nil {
			m := *o.Material
			oc.Material = &m
		}
		c.Objects[i] = &oc
		if o == s.Ground {
			c.Ground = &oc
		}
	}
	return c
}

// ApplyColors sets background, ground albedo and fog from a preset's scene
// colors.
func (s *Scene) ApplyColors(sc style.SceneColors) {
	bg := sc.Background
	s.Background = &bg
	if s.Ground != nil && s.Ground.Material != nil {
		s.Ground.Material.Color = sc.Ground
	}
	if s.Fog == nil {
		s.Fog = &Fog{}
	}
	s.Fog.Color = sc.Fog
	s.Fog.Density = sc.FogDensity
}
