package scene

import (
	"math"

	"comic-lens-renderer/internal/mathutil"
	"comic-lens-renderer/internal/shaderlib"
)

// DefaultLights is the bright comic rig: warm key, cool fill, rim from behind
// and a strong tinted ambient so shadows keep their color.
func DefaultLights() []Light {
	return []Light{
		{Kind: Directional, Color: shaderlib.Hex(0xfff5e0), Intensity: 3.0, Position: mathutil.Vec3{5, 10, 4}},
		{Kind: Ambient, Color: shaderlib.Hex(0xd0d4e8), Intensity: 2.2},
		{Kind: Directional, Color: shaderlib.Hex(0xb0c0e0), Intensity: 1.8, Position: mathutil.Vec3{-5, 6, -3}},
		{Kind: Directional, Color: shaderlib.Hex(0xffe8d0), Intensity: 0.8, Position: mathutil.Vec3{-2, 3, -6}},
	}
}

func ground(color shaderlib.RGB) *Object {
	return &Object{
		Name:     "ground",
		Mesh:     Plane(500, 500, 8),
		Material: &Material{Color: color, Roughness: 0.95},
		Base:     Pose{Rotation: mathutil.Vec3{-math.Pi / 2, 0, 0}},
	}
}

func newScene(lights []Light) *Scene {
	bg := shaderlib.Hex(0xf5f0e8)
	s := &Scene{
		Lights:     lights,
		Background: &bg,
		Fog:        &Fog{Color: shaderlib.Hex(0xf0ebe0), Density: 0.012},
	}
	s.Ground = ground(shaderlib.Hex(0xe8dfd0))
	s.Objects = append(s.Objects, s.Ground)
	return s
}

// NewDemo builds the primitive showcase: a torus knot hero surrounded by a
// sphere, dodecahedron, pillar, floating ring and a small icosahedron.
func NewDemo() *Scene {
	s := newScene(DefaultLights())
	s.Objects = append(s.Objects,
		&Object{
			Name:     "hero",
			Mesh:     TorusKnot(1.1, 0.38, 160, 24, 2, 3),
			Material: &Material{Color: shaderlib.Hex(0xe02020), Roughness: 0.3},
			Base:     Pose{Position: mathutil.Vec3{0, 2.2, 0}},
			Animate: func(b Pose, t float64) Pose {
				b.Rotation[1] = t * 0.2
				b.Rotation[0] = math.Sin(t*0.15) * 0.1
				return b
			},
		},
		&Object{
			Name:     "sphere",
			Mesh:     Sphere(0.85, 48, 32),
			Material: &Material{Color: shaderlib.Hex(0x2255cc), Roughness: 0.25},
			Base:     Pose{Position: mathutil.Vec3{-2.8, 0.85, 1.5}},
		},
		&Object{
			Name:     "dodecahedron",
			Mesh:     Dodecahedron(0.75),
			Material: &Material{Color: shaderlib.Hex(0xf0a020), Roughness: 0.35, FlatShading: true},
			Base:     Pose{Position: mathutil.Vec3{2.6, 0.85, 1.8}},
			Animate: func(b Pose, t float64) Pose {
				b.Rotation[1] = t * 0.35
				b.Rotation[2] = t * 0.2
				return b
			},
		},
		&Object{
			Name:     "pillar",
			Mesh:     Cylinder(0.4, 0.5, 2.4, 32),
			Material: &Material{Color: shaderlib.Hex(0x22aa55), Roughness: 0.4},
			Base:     Pose{Position: mathutil.Vec3{-1.2, 1.2, 3.0}},
		},
		&Object{
			Name:     "ring",
			Mesh:     Torus(0.6, 0.2, 24, 48),
			Material: &Material{Color: shaderlib.Hex(0xcc44aa), Roughness: 0.3},
			Base:     Pose{Position: mathutil.Vec3{1.5, 1.8, 2.8}, Rotation: mathutil.Vec3{math.Pi * 0.3, 0, 0}},
			Animate: func(b Pose, t float64) Pose {
				b.Rotation[2] = t * 0.4
				b.Position[1] = 1.8 + math.Sin(t*0.6)*0.3
				return b
			},
		},
		&Object{
			Name:     "icosahedron",
			Mesh:     Icosahedron(0.45),
			Material: &Material{Color: shaderlib.Hex(0xff6633), Roughness: 0.35, FlatShading: true},
			Base:     Pose{Position: mathutil.Vec3{3.2, 0.5, -0.5}},
			Animate: func(b Pose, t float64) Pose {
				b.Rotation[1] = t * -0.3
				b.Rotation[0] = t * 0.15
				return b
			},
		},
	)
	return s
}

// NewModelScene stages an imported model on a faceted pedestal under a
// brighter light rig. The model is recentred and scaled to fit.
func NewModelScene(model *Mesh, mat *Material) *Scene {
	lights := []Light{
		{Kind: Directional, Color: shaderlib.Hex(0xfff5e0), Intensity: 5.0, Position: mathutil.Vec3{5, 10, 4}},
		{Kind: Ambient, Color: shaderlib.Hex(0xd0d4e8), Intensity: 4.0},
		{Kind: Directional, Color: shaderlib.Hex(0xb0c0e0), Intensity: 3.5, Position: mathutil.Vec3{-5, 6, -3}},
		{Kind: Directional, Color: shaderlib.Hex(0xffe8d0), Intensity: 2.0, Position: mathutil.Vec3{-2, 3, -6}},
	}
	s := newScene(lights)
	if mat == nil {
		mat = &Material{Color: shaderlib.Gray(0.8), Roughness: 0.5}
	}
	model.Normalize(2)
	s.Objects = append(s.Objects,
		&Object{
			Name:     "pedestal",
			Mesh:     Cylinder(1.6, 1.8, 0.5, 8),
			Material: &Material{Color: shaderlib.Hex(0x888888), Roughness: 0.4, FlatShading: true},
			Base:     Pose{Position: mathutil.Vec3{0, 0.25, 0}},
		},
		&Object{
			Name:     "model",
			Mesh:     model,
			Material: mat,
			Base:     Pose{Position: mathutil.Vec3{0, 2.2, 0}, Rotation: mathutil.Vec3{math.Pi * 0.05, 0, 0}},
			Scale:    1.5,
			Animate: func(b Pose, t float64) Pose {
				b.Rotation[1] = t * 0.03 * 2 * math.Pi
				return b
			},
		},
	)
	return s
}
