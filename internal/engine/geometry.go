package engine

import rl "github.com/gen2brain/raylib-go/raylib"

type GeometryKind int

const (
	GeometryBox GeometryKind = iota
	GeometrySphere
	GeometryPlane
)

// Geometry describes mesh shape data. Instances are shared between meshes and
// must not be mutated after creation.
type Geometry struct {
	Kind GeometryKind

	// Box
	Width, Height, Depth float32

	// Sphere
	Radius         float32
	WidthSegments  int
	HeightSegments int

	// Plane, lying in local XY
	Size rl.Vector2
}

func NewBoxGeometry(width, height, depth float32) *Geometry {
	return &Geometry{Kind: GeometryBox, Width: width, Height: height, Depth: depth}
}

func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	return &Geometry{
		Kind:           GeometrySphere,
		Radius:         radius,
		WidthSegments:  widthSegments,
		HeightSegments: heightSegments,
	}
}

func NewPlaneGeometry(width, height float32) *Geometry {
	return &Geometry{Kind: GeometryPlane, Size: rl.Vector2{X: width, Y: height}}
}

// Extents returns the full size of the geometry along each local axis
func (g *Geometry) Extents() rl.Vector3 {
	switch g.Kind {
	case GeometryBox:
		return rl.Vector3{X: g.Width, Y: g.Height, Z: g.Depth}
	case GeometrySphere:
		d := 2 * g.Radius
		return rl.Vector3{X: d, Y: d, Z: d}
	case GeometryPlane:
		return rl.Vector3{X: g.Size.X, Y: g.Size.Y}
	}
	return rl.Vector3{}
}

// Material is a PBR-ish surface description used by the renderer
type Material struct {
	Color     rl.Color
	Metalness float32
	Roughness float32
}

func NewMaterial(color rl.Color, metalness, roughness float32) *Material {
	return &Material{Color: color, Metalness: metalness, Roughness: roughness}
}

// HexColor parses a 0xRRGGBB value into an opaque color
func HexColor(hex uint32) rl.Color {
	return rl.Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}
