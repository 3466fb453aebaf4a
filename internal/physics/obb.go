package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, half extents and orientation
func NewOBB(center, halfSize rl.Vector3, q rl.Quaternion) OBB {
	return OBB{
		Center:   center,
		HalfSize: halfSize,
		Axes: [3]rl.Vector3{
			rotate(q, unitX),
			rotate(q, unitY),
			rotate(q, unitZ),
		},
	}
}

// NewOBBFromBody builds the OBB of a box-shaped body
func NewOBBFromBody(b *Body) OBB {
	return NewOBB(b.Position, b.Shape.HalfExtents, b.Quaternion)
}

func (o OBB) halfSize(i int) float32 {
	switch i {
	case 0:
		return o.HalfSize.X
	case 1:
		return o.HalfSize.Y
	}
	return o.HalfSize.Z
}

// project returns the half-length of the OBB's projection on axis
func (o OBB) project(axis rl.Vector3) float32 {
	return o.HalfSize.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	_, _, ok := a.Penetration(b)
	return ok
}

// Penetration finds the axis of minimum overlap between a and b.
// The returned normal points from a towards b. ok is false when a separating
// axis exists.
func (a OBB) Penetration(b OBB) (normal rl.Vector3, depth float32, ok bool) {
	t := rl.Vector3Subtract(b.Center, a.Center)
	depth = float32(math.MaxFloat32)

	// 3 face normals from each box, 9 edge cross products
	// edge axes must beat face axes clearly so resting boxes keep face normals
	testAxis := func(axis rl.Vector3, edge bool) bool {
		if rl.Vector3Length(axis) < 0.0001 {
			return true // parallel edges
		}
		axis = rl.Vector3Normalize(axis)

		dist := rl.Vector3DotProduct(t, axis)
		penetration := a.project(axis) + b.project(axis) - absf(dist)
		if penetration < 0 {
			return false
		}
		if edge && penetration > depth*0.95 {
			return true
		}
		if penetration < depth {
			depth = penetration
			if dist < 0 {
				normal = rl.Vector3Negate(axis)
			} else {
				normal = axis
			}
		}
		return true
	}

	for i := 0; i < 3; i++ {
		if !testAxis(a.Axes[i], false) {
			return rl.Vector3{}, 0, false
		}
	}
	for i := 0; i < 3; i++ {
		if !testAxis(b.Axes[i], false) {
			return rl.Vector3{}, 0, false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !testAxis(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j]), true) {
				return rl.Vector3{}, 0, false
			}
		}
	}

	return normal, depth, true
}

// Corners returns the 8 world-space corners
func (o OBB) Corners() [8]rl.Vector3 {
	var corners [8]rl.Vector3
	for i := 0; i < 8; i++ {
		c := o.Center
		sx, sy, sz := float32(1), float32(1), float32(1)
		if i&1 != 0 {
			sx = -1
		}
		if i&2 != 0 {
			sy = -1
		}
		if i&4 != 0 {
			sz = -1
		}
		c = rl.Vector3Add(c, rl.Vector3Scale(o.Axes[0], sx*o.HalfSize.X))
		c = rl.Vector3Add(c, rl.Vector3Scale(o.Axes[1], sy*o.HalfSize.Y))
		c = rl.Vector3Add(c, rl.Vector3Scale(o.Axes[2], sz*o.HalfSize.Z))
		corners[i] = c
	}
	return corners
}

// toLocal expresses a world point in the OBB's frame
func (o OBB) toLocal(point rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(point, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

// ContainsPoint tests whether point lies inside the box (boundary included)
func (o OBB) ContainsPoint(point rl.Vector3) bool {
	local := o.toLocal(point)
	return absf(local.X) <= o.HalfSize.X &&
		absf(local.Y) <= o.HalfSize.Y &&
		absf(local.Z) <= o.HalfSize.Z
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(center rl.Vector3, radius float32) bool {
	closest := ClosestPointOnOBB(o, center)
	d := rl.Vector3Subtract(center, closest)
	return rl.Vector3DotProduct(d, d) <= radius*radius
}

// ClosestPointOnOBB returns the closest point on or inside the OBB to the given point
func ClosestPointOnOBB(o OBB, point rl.Vector3) rl.Vector3 {
	local := o.toLocal(point)

	closestX := clampf(local.X, -o.HalfSize.X, o.HalfSize.X)
	closestY := clampf(local.Y, -o.HalfSize.Y, o.HalfSize.Y)
	closestZ := clampf(local.Z, -o.HalfSize.Z, o.HalfSize.Z)

	result := o.Center
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[0], closestX))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[1], closestY))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[2], closestZ))

	return result
}
