package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
	ShapePlane
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapePlane:
		return "plane"
	}
	return "unknown"
}

// Shape is the collision geometry of a body, expressed in the body's local frame.
// Planes are infinite and face local +Z.
type Shape struct {
	Kind        ShapeKind
	Radius      float32
	HalfExtents rl.Vector3
}

func NewSphere(radius float32) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

func NewBox(halfExtents rl.Vector3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

func NewPlane() Shape {
	return Shape{Kind: ShapePlane}
}

// BoundingRadius returns the radius of a sphere enclosing the shape
func (s Shape) BoundingRadius() float32 {
	switch s.Kind {
	case ShapeSphere:
		return s.Radius
	case ShapeBox:
		return rl.Vector3Length(s.HalfExtents)
	}
	return float32(math.Inf(1))
}

// localInertia returns the diagonal of the inertia tensor for the given mass
func (s Shape) localInertia(mass float32) rl.Vector3 {
	switch s.Kind {
	case ShapeSphere:
		i := 2.0 / 5.0 * mass * s.Radius * s.Radius
		return rl.Vector3{X: i, Y: i, Z: i}
	case ShapeBox:
		x, y, z := 2*s.HalfExtents.X, 2*s.HalfExtents.Y, 2*s.HalfExtents.Z
		return rl.Vector3{
			X: mass / 12 * (y*y + z*z),
			Y: mass / 12 * (x*x + z*z),
			Z: mass / 12 * (x*x + y*y),
		}
	}
	return rl.Vector3{}
}
