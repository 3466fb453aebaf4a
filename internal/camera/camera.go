package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	minPolar = 0.01
	maxPolar = math.Pi - 0.01
)

// Orbit circles a target point. Input adds angular and zoom velocity which
// Update applies and then decays by Damping, so motion eases out.
type Orbit struct {
	Target      rl.Vector3
	Fovy        float32
	Damping     float32 // 0 disables easing
	RotateSpeed float32 // radians per pixel of drag
	ZoomSpeed   float32
	MinDistance float32
	MaxDistance float32

	azimuth  float32 // around +Y, measured from +Z
	polar    float32 // from +Y
	distance float32

	azimuthDelta float32
	polarDelta   float32
	zoomDelta    float32
}

func NewOrbit(position, target rl.Vector3, fovy, damping float32) *Orbit {
	o := &Orbit{
		Target:      target,
		Fovy:        fovy,
		Damping:     damping,
		RotateSpeed: 0.005,
		ZoomSpeed:   0.1,
		MinDistance: 1,
		MaxDistance: 100,
	}
	offset := rl.Vector3Subtract(position, target)
	o.distance = rl.Vector3Length(offset)
	if o.distance > 0 {
		o.azimuth = float32(math.Atan2(float64(offset.X), float64(offset.Z)))
		o.polar = float32(math.Acos(float64(clamp(offset.Y/o.distance, -1, 1))))
	}
	return o
}

// Rotate queues a drag of dx, dy pixels
func (o *Orbit) Rotate(dx, dy float32) {
	o.azimuthDelta -= dx * o.RotateSpeed
	o.polarDelta -= dy * o.RotateSpeed
}

// Zoom queues a wheel movement; positive moves closer
func (o *Orbit) Zoom(wheel float32) {
	o.zoomDelta -= wheel * o.ZoomSpeed
}

// HandleInput reads mouse drag and wheel from raylib
func (o *Orbit) HandleInput() {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		o.Rotate(d.X, d.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		o.Zoom(wheel)
	}
}

// Update applies queued motion once per frame
func (o *Orbit) Update() {
	factor := o.Damping
	if factor <= 0 {
		factor = 1
	}

	o.azimuth += o.azimuthDelta * factor
	o.polar = clamp(o.polar+o.polarDelta*factor, minPolar, maxPolar)
	o.distance = clamp(o.distance*(1+o.zoomDelta*factor), o.MinDistance, o.MaxDistance)

	o.azimuthDelta *= 1 - factor
	o.polarDelta *= 1 - factor
	o.zoomDelta *= 1 - factor
}

// Position is the camera eye in world space
func (o *Orbit) Position() rl.Vector3 {
	sinPolar := float32(math.Sin(float64(o.polar)))
	offset := rl.Vector3{
		X: o.distance * sinPolar * float32(math.Sin(float64(o.azimuth))),
		Y: o.distance * float32(math.Cos(float64(o.polar))),
		Z: o.distance * sinPolar * float32(math.Cos(float64(o.azimuth))),
	}
	return rl.Vector3Add(o.Target, offset)
}

func (o *Orbit) Distance() float32 {
	return o.distance
}

// Moving reports whether queued motion is still being applied
func (o *Orbit) Moving() bool {
	const eps = 1e-5
	return abs(o.azimuthDelta) > eps || abs(o.polarDelta) > eps || abs(o.zoomDelta) > eps
}

func (o *Orbit) Camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   o.Position(),
		Target:     o.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       o.Fovy,
		Projection: rl.CameraPerspective,
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
