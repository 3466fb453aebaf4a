package physics

import rl "github.com/gen2brain/raylib-go/raylib"

const containSlop = 0.001

// collide appends the contacts between a and b to dst. Every contact normal
// points from a towards b.
func collide(a, b *Body, dst []Contact) []Contact {
	switch {
	case a.Shape.Kind == ShapeSphere && b.Shape.Kind == ShapeSphere:
		return collideSphereSphere(a, b, dst)
	case a.Shape.Kind == ShapeSphere && b.Shape.Kind == ShapePlane:
		return collideSpherePlane(a, b, dst)
	case a.Shape.Kind == ShapeBox && b.Shape.Kind == ShapePlane:
		return collideBoxPlane(a, b, dst)
	case a.Shape.Kind == ShapeSphere && b.Shape.Kind == ShapeBox:
		return collideSphereBox(a, b, dst)
	case a.Shape.Kind == ShapeBox && b.Shape.Kind == ShapeBox:
		return collideBoxBox(a, b, dst)
	case a.Shape.Kind == ShapePlane && b.Shape.Kind == ShapePlane:
		return dst
	}

	// Remaining combinations are the mirrored ones above
	n := len(dst)
	dst = collide(b, a, dst)
	for i := n; i < len(dst); i++ {
		dst[i] = dst[i].Flipped()
	}
	return dst
}

func collideSphereSphere(a, b *Body, dst []Contact) []Contact {
	diff := rl.Vector3Subtract(b.Position, a.Position)
	dist := rl.Vector3Length(diff)
	minDist := a.Shape.Radius + b.Shape.Radius

	if dist >= minDist {
		return dst
	}

	normal := unitY
	if dist > 0.0001 {
		normal = rl.Vector3Scale(diff, 1/dist)
	}
	depth := minDist - dist
	point := rl.Vector3Add(a.Position, rl.Vector3Scale(normal, a.Shape.Radius-depth/2))
	return append(dst, NewContact(a, b, point, normal, depth))
}

func planeNormal(plane *Body) rl.Vector3 {
	return rotate(plane.Quaternion, unitZ)
}

func collideSpherePlane(sphere, plane *Body, dst []Contact) []Contact {
	n := planeNormal(plane)
	dist := rl.Vector3DotProduct(rl.Vector3Subtract(sphere.Position, plane.Position), n) - sphere.Shape.Radius
	if dist >= 0 {
		return dst
	}
	point := rl.Vector3Subtract(sphere.Position, rl.Vector3Scale(n, sphere.Shape.Radius))
	return append(dst, NewContact(sphere, plane, point, rl.Vector3Negate(n), -dist))
}

func collideBoxPlane(box, plane *Body, dst []Contact) []Contact {
	n := planeNormal(plane)
	for _, corner := range NewOBBFromBody(box).Corners() {
		dist := rl.Vector3DotProduct(rl.Vector3Subtract(corner, plane.Position), n)
		if dist < 0 {
			dst = append(dst, NewContact(box, plane, corner, rl.Vector3Negate(n), -dist))
		}
	}
	return dst
}

// collideSphereBox handles rotated boxes via the OBB closest point
func collideSphereBox(sphere, box *Body, dst []Contact) []Contact {
	obb := NewOBBFromBody(box)
	center := sphere.Position
	radius := sphere.Shape.Radius

	closest := ClosestPointOnOBB(obb, center)
	diff := rl.Vector3Subtract(center, closest)
	dist := rl.Vector3Length(diff)

	if dist > 0.0001 {
		if dist >= radius {
			return dst
		}
		// diff points from box surface to sphere center
		normal := rl.Vector3Scale(diff, -1/dist)
		return append(dst, NewContact(sphere, box, closest, normal, radius-dist))
	}

	// Center is inside the box: push out through the nearest face
	local := obb.toLocal(center)
	coords := [3]float32{local.X, local.Y, local.Z}
	best := 0
	bestPen := obb.halfSize(0) - absf(coords[0])
	for i := 1; i < 3; i++ {
		if pen := obb.halfSize(i) - absf(coords[i]); pen < bestPen {
			best, bestPen = i, pen
		}
	}
	outward := obb.Axes[best]
	if coords[best] < 0 {
		outward = rl.Vector3Negate(outward)
	}
	return append(dst, NewContact(sphere, box, center, rl.Vector3Negate(outward), radius+bestPen))
}

func collideBoxBox(a, b *Body, dst []Contact) []Contact {
	obbA := NewOBBFromBody(a)
	obbB := NewOBBFromBody(b)

	normal, depth, ok := obbA.Penetration(obbB)
	if !ok {
		return dst
	}

	n := len(dst)
	projA := obbA.project(normal)
	projB := obbB.project(normal)

	for _, corner := range obbB.Corners() {
		if containsWithSlop(obbA, corner) {
			d := projA - rl.Vector3DotProduct(rl.Vector3Subtract(corner, obbA.Center), normal)
			dst = append(dst, NewContact(a, b, corner, normal, clampf(d, 0, depth)))
		}
	}
	for _, corner := range obbA.Corners() {
		if containsWithSlop(obbB, corner) {
			d := projB + rl.Vector3DotProduct(rl.Vector3Subtract(corner, obbB.Center), normal)
			dst = append(dst, NewContact(a, b, corner, normal, clampf(d, 0, depth)))
		}
	}

	// Edge-edge overlap: no corner inside, use the middle of the overlap
	if len(dst) == n {
		point := rl.Vector3Add(obbA.Center, rl.Vector3Scale(normal, projA-depth/2))
		dst = append(dst, NewContact(a, b, point, normal, depth))
	}
	return dst
}

func containsWithSlop(o OBB, point rl.Vector3) bool {
	local := o.toLocal(point)
	return absf(local.X) <= o.HalfSize.X+containSlop &&
		absf(local.Y) <= o.HalfSize.Y+containSlop &&
		absf(local.Z) <= o.HalfSize.Z+containSlop
}
