package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	unitX = rl.Vector3{X: 1}
	unitY = rl.Vector3{Y: 1}
	unitZ = rl.Vector3{Z: 1}
)

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// conjugate inverts a unit quaternion
func conjugate(q rl.Quaternion) rl.Quaternion {
	return rl.Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

func rotate(q rl.Quaternion, v rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(v, q)
}

func rotateInverse(q rl.Quaternion, v rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(v, conjugate(q))
}

// tangentBasis returns two unit vectors orthogonal to n and to each other
func tangentBasis(n rl.Vector3) (rl.Vector3, rl.Vector3) {
	var t1 rl.Vector3
	if absf(n.X) > 0.57735 {
		t1 = rl.Vector3{X: n.Y, Y: -n.X}
	} else {
		t1 = rl.Vector3{Y: n.Z, Z: -n.Y}
	}
	t1 = rl.Vector3Normalize(t1)
	t2 := rl.Vector3CrossProduct(n, t1)
	return t1, t2
}

// integrateQuaternion advances q by angular velocity w (rad/s, world frame) over dt
func integrateQuaternion(q rl.Quaternion, w rl.Vector3, dt float32) rl.Quaternion {
	spin := rl.QuaternionMultiply(rl.Quaternion{X: w.X, Y: w.Y, Z: w.Z, W: 0}, q)
	half := 0.5 * dt
	q.X += spin.X * half
	q.Y += spin.Y * half
	q.Z += spin.Z * half
	q.W += spin.W * half
	return rl.QuaternionNormalize(q)
}
