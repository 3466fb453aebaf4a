package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func infiniteAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: rl.Vector3{X: -inf, Y: -inf, Z: -inf},
		Max: rl.Vector3{X: inf, Y: inf, Z: inf},
	}
}

// IsInfinite reports whether the box is unbounded on any axis
func (a AABB) IsInfinite() bool {
	return math.IsInf(float64(a.Max.X-a.Min.X), 1) ||
		math.IsInf(float64(a.Max.Y-a.Min.Y), 1) ||
		math.IsInf(float64(a.Max.Z-a.Min.Z), 1)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

// axis returns the min and max along axis 0=X, 1=Y, 2=Z
func (a AABB) axis(i int) (float32, float32) {
	switch i {
	case 0:
		return a.Min.X, a.Max.X
	case 1:
		return a.Min.Y, a.Max.Y
	}
	return a.Min.Z, a.Max.Z
}
