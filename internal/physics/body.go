package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.1 // units/sec - below this, body might sleep
	SleepAngularThreshold  = 0.1 // rad/sec - below this, body might sleep
	SleepTimeThreshold     = 1.0 // seconds of low velocity before sleeping
)

const defaultDamping = 0.01

type Body struct {
	ID       int
	Mass     float32 // 0 = static
	Shape    Shape
	Material *Material

	Position        rl.Vector3
	Quaternion      rl.Quaternion
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // rad/s, world frame

	LinearDamping  float32 // fraction of velocity lost per second
	AngularDamping float32

	// ReportCollisions queues collision events for this body on the world
	ReportCollisions bool
	AllowSleep       bool

	sleeping   bool
	sleepTimer float32

	invMass    float32
	invInertia rl.Vector3 // local frame diagonal

	force  rl.Vector3
	torque rl.Vector3

	// pseudo velocities from overlap resolution, cleared every step
	pushVelocity rl.Vector3
	pushAngular  rl.Vector3

	world *World
}

func NewBody(mass float32, shape Shape, material *Material) *Body {
	b := &Body{
		Mass:           mass,
		Shape:          shape,
		Material:       material,
		Quaternion:     rl.QuaternionIdentity(),
		LinearDamping:  defaultDamping,
		AngularDamping: defaultDamping,
		AllowSleep:     true,
	}
	b.updateMassProperties()
	return b
}

func (b *Body) updateMassProperties() {
	if b.Mass <= 0 {
		b.invMass = 0
		b.invInertia = rl.Vector3{}
		return
	}
	b.invMass = 1 / b.Mass
	inertia := b.Shape.localInertia(b.Mass)
	b.invInertia = rl.Vector3{X: invOrZero(inertia.X), Y: invOrZero(inertia.Y), Z: invOrZero(inertia.Z)}
}

func invOrZero(v float32) float32 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

func (b *Body) IsStatic() bool {
	return b.invMass == 0
}

func (b *Body) IsSleeping() bool {
	return b.sleeping
}

// Force returns the force accumulated for the next internal step
func (b *Body) Force() rl.Vector3 {
	return b.force
}

func (b *Body) Torque() rl.Vector3 {
	return b.torque
}

// Wake forces the body out of sleep state
func (b *Body) Wake() {
	b.sleeping = false
	b.sleepTimer = 0
}

// ApplyForce adds a world-space force acting at relativePoint, an offset from
// the center of mass in world orientation. Forces last for one internal step.
func (b *Body) ApplyForce(force, relativePoint rl.Vector3) {
	if b.IsStatic() {
		return
	}
	b.Wake()
	b.force = rl.Vector3Add(b.force, force)
	b.torque = rl.Vector3Add(b.torque, rl.Vector3CrossProduct(relativePoint, force))
}

// ApplyLocalForce is ApplyForce with force and point in the body frame
func (b *Body) ApplyLocalForce(localForce, localPoint rl.Vector3) {
	b.ApplyForce(b.VectorToWorld(localForce), b.VectorToWorld(localPoint))
}

// ApplyImpulse changes velocity immediately
func (b *Body) ApplyImpulse(impulse, relativePoint rl.Vector3) {
	if b.IsStatic() {
		return
	}
	b.Wake()
	b.applyImpulse(impulse, relativePoint)
}

// ApplyLocalImpulse is ApplyImpulse with impulse and point in the body frame
func (b *Body) ApplyLocalImpulse(localImpulse, localPoint rl.Vector3) {
	b.ApplyImpulse(b.VectorToWorld(localImpulse), b.VectorToWorld(localPoint))
}

func (b *Body) applyImpulse(impulse, relativePoint rl.Vector3) {
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(impulse, b.invMass))
	b.AngularVelocity = rl.Vector3Add(b.AngularVelocity,
		b.invInertiaWorld(rl.Vector3CrossProduct(relativePoint, impulse)))
}

// VelocityAt returns the velocity of a point at relativePoint from the center of mass
func (b *Body) VelocityAt(relativePoint rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(b.Velocity, rl.Vector3CrossProduct(b.AngularVelocity, relativePoint))
}

func (b *Body) VectorToWorld(local rl.Vector3) rl.Vector3 {
	return rotate(b.Quaternion, local)
}

// invInertiaWorld multiplies v by the world-frame inverse inertia tensor
func (b *Body) invInertiaWorld(v rl.Vector3) rl.Vector3 {
	if b.IsStatic() {
		return rl.Vector3{}
	}
	local := rotateInverse(b.Quaternion, v)
	local = rl.Vector3Multiply(local, b.invInertia)
	return rotate(b.Quaternion, local)
}

// KineticEnergy returns linear plus rotational kinetic energy
func (b *Body) KineticEnergy() float32 {
	if b.IsStatic() {
		return 0
	}
	linear := 0.5 * b.Mass * rl.Vector3DotProduct(b.Velocity, b.Velocity)
	inertia := b.Shape.localInertia(b.Mass)
	w := rotateInverse(b.Quaternion, b.AngularVelocity)
	angular := 0.5 * (inertia.X*w.X*w.X + inertia.Y*w.Y*w.Y + inertia.Z*w.Z*w.Z)
	return linear + angular
}

// AABB returns the world-space bounds of the body's shape
func (b *Body) AABB() AABB {
	switch b.Shape.Kind {
	case ShapeSphere:
		r := b.Shape.Radius
		return AABB{
			Min: rl.Vector3Subtract(b.Position, rl.Vector3{X: r, Y: r, Z: r}),
			Max: rl.Vector3Add(b.Position, rl.Vector3{X: r, Y: r, Z: r}),
		}
	case ShapeBox:
		h := b.Shape.HalfExtents
		ax := rotate(b.Quaternion, unitX)
		ay := rotate(b.Quaternion, unitY)
		az := rotate(b.Quaternion, unitZ)
		ext := rl.Vector3{
			X: absf(ax.X)*h.X + absf(ay.X)*h.Y + absf(az.X)*h.Z,
			Y: absf(ax.Y)*h.X + absf(ay.Y)*h.Y + absf(az.Y)*h.Z,
			Z: absf(ax.Z)*h.X + absf(ay.Z)*h.Y + absf(az.Z)*h.Z,
		}
		return AABB{Min: rl.Vector3Subtract(b.Position, ext), Max: rl.Vector3Add(b.Position, ext)}
	}
	return infiniteAABB()
}

// integrateVelocity applies gravity and accumulated forces
func (b *Body) integrateVelocity(gravity rl.Vector3, dt float32) {
	accel := rl.Vector3Add(gravity, rl.Vector3Scale(b.force, b.invMass))
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(accel, dt))
	b.AngularVelocity = rl.Vector3Add(b.AngularVelocity, rl.Vector3Scale(b.invInertiaWorld(b.torque), dt))

	b.Velocity = rl.Vector3Scale(b.Velocity, dampingFactor(b.LinearDamping, dt))
	b.AngularVelocity = rl.Vector3Scale(b.AngularVelocity, dampingFactor(b.AngularDamping, dt))
}

// dampingFactor is framerate independent: (1-damping)^dt
func dampingFactor(damping, dt float32) float32 {
	return float32(math.Pow(float64(1-damping), float64(dt)))
}

func (b *Body) pushVelocityAt(relativePoint rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(b.pushVelocity, rl.Vector3CrossProduct(b.pushAngular, relativePoint))
}

// integratePosition moves the body by its velocity plus any pseudo velocity
// from overlap resolution, then drops the pseudo velocity.
func (b *Body) integratePosition(dt float32) {
	v := rl.Vector3Add(b.Velocity, b.pushVelocity)
	w := rl.Vector3Add(b.AngularVelocity, b.pushAngular)
	b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(v, dt))
	b.Quaternion = integrateQuaternion(b.Quaternion, w, dt)
	b.pushVelocity = rl.Vector3{}
	b.pushAngular = rl.Vector3{}
}

func (b *Body) clearForces() {
	b.force = rl.Vector3{}
	b.torque = rl.Vector3{}
}

// trySleep puts the body to sleep after it stays slow for SleepTimeThreshold
func (b *Body) trySleep(dt float32) {
	if !b.AllowSleep || b.sleeping || b.IsStatic() {
		return
	}

	speedSq := rl.Vector3DotProduct(b.Velocity, b.Velocity)
	angSpeedSq := rl.Vector3DotProduct(b.AngularVelocity, b.AngularVelocity)

	if speedSq < SleepVelocityThreshold*SleepVelocityThreshold &&
		angSpeedSq < SleepAngularThreshold*SleepAngularThreshold {
		b.sleepTimer += dt
		if b.sleepTimer >= SleepTimeThreshold {
			b.sleeping = true
			b.Velocity = rl.Vector3{}
			b.AngularVelocity = rl.Vector3{}
		}
	} else {
		b.sleepTimer = 0
	}
}
