package physics

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixedStep = float32(1.0 / 60.0)

func newFloor() *Body {
	floor := NewBody(0, NewPlane(), nil)
	floor.Quaternion = rl.QuaternionFromAxisAngle(unitX, -math.Pi/2)
	return floor
}

func TestFloorNormalPointsUp(t *testing.T) {
	n := planeNormal(newFloor())
	assert.InDelta(t, 0, n.X, 1e-5)
	assert.InDelta(t, 1, n.Y, 1e-5)
	assert.InDelta(t, 0, n.Z, 1e-5)
}

func TestStepZeroDeltaRunsOneStep(t *testing.T) {
	w := NewWorld()
	assert.Equal(t, 1, w.Step(fixedStep, 0, 3))
	assert.Equal(t, uint64(1), w.StepCount())
	assert.InDelta(t, float64(fixedStep), w.Time(), 1e-9)
}

func TestStepAccumulatesSmallDeltas(t *testing.T) {
	w := NewWorld()
	assert.Equal(t, 0, w.Step(fixedStep, fixedStep/2, 3))
	assert.Equal(t, 1, w.Step(fixedStep, fixedStep/2, 3))
	assert.Equal(t, uint64(1), w.StepCount())
}

func TestStepExactFrameTakesOneStep(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 120; i++ {
		require.Equal(t, 1, w.Step(fixedStep, fixedStep, 3), "frame %d", i)
	}
}

func TestStepCapsSubStepsAndDropsBacklog(t *testing.T) {
	w := NewWorld()
	assert.Equal(t, 3, w.Step(fixedStep, 1.01, 3))
	// backlog was discarded, so a tiny frame does not catch up
	assert.Equal(t, 0, w.Step(fixedStep, 0.001, 3))
	assert.Less(t, w.accumulator, float64(fixedStep))
}

func TestFreeFallMatchesGravity(t *testing.T) {
	w := NewWorld(WithSleep(false))
	b := NewBody(1, NewSphere(0.5), nil)
	b.LinearDamping = 0
	w.AddBody(b)

	for i := 0; i < 60; i++ {
		w.Step(fixedStep, fixedStep, 3)
	}
	assert.InDelta(t, -9.82, b.Velocity.Y, 0.01)
	assert.Less(t, b.Position.Y, float32(-4.5))
}

func TestSphereRestsOnFloor(t *testing.T) {
	w := NewWorld()
	w.AddBody(newFloor())
	s := NewBody(1, NewSphere(0.5), nil)
	s.Position = rl.Vector3{Y: 2}
	w.AddBody(s)

	for i := 0; i < 300; i++ {
		w.Step(fixedStep, fixedStep, 3)
	}
	assert.InDelta(t, 0.5, s.Position.Y, 0.05)
	assert.InDelta(t, 0, s.Velocity.Y, 0.1)
}

func TestBoxRestsOnFloor(t *testing.T) {
	w := NewWorld()
	w.AddBody(newFloor())
	b := NewBody(0.2, NewBox(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}), nil)
	b.Position = rl.Vector3{Y: 1}
	w.AddBody(b)

	for i := 0; i < 300; i++ {
		w.Step(fixedStep, fixedStep, 3)
	}
	assert.InDelta(t, 0.5, b.Position.Y, 0.05)
}

func TestBodiesFallAsleep(t *testing.T) {
	w := NewWorld()
	w.AddBody(newFloor())
	s := NewBody(1, NewSphere(0.5), nil)
	s.Position = rl.Vector3{Y: 0.5}
	w.AddBody(s)

	for i := 0; i < 240; i++ {
		w.Step(fixedStep, fixedStep, 3)
	}
	assert.True(t, s.IsSleeping())

	s.ApplyForce(rl.Vector3{Y: 100}, rl.Vector3{})
	assert.False(t, s.IsSleeping())
}

func TestBeginEventOncePerContact(t *testing.T) {
	w := NewWorld()
	w.AddBody(newFloor())
	b := NewBody(0.2, NewBox(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}), nil)
	b.Position = rl.Vector3{Y: 2}
	b.ReportCollisions = true
	w.AddBody(b)

	var begins []CollisionEvent
	for i := 0; i < 180; i++ {
		w.Step(fixedStep, fixedStep, 3)
		for _, ev := range w.DrainCollisions() {
			if ev.Kind == CollisionBegin {
				begins = append(begins, ev)
			}
		}
	}

	require.NotEmpty(t, begins)
	first := begins[0]
	assert.Same(t, b, first.Body)
	assert.Same(t, b, first.Contact.BodyA)
	// falling 1.5m before touching gives a solid approach speed
	assert.Greater(t, first.Contact.ImpactVelocityAlongNormal(), float32(4))
}

func TestEventsOnlyForReportingBodies(t *testing.T) {
	w := NewWorld()
	w.AddBody(newFloor())
	s := NewBody(1, NewSphere(0.5), nil)
	s.Position = rl.Vector3{Y: 1}
	w.AddBody(s)

	for i := 0; i < 60; i++ {
		w.Step(fixedStep, fixedStep, 3)
	}
	assert.Empty(t, w.DrainCollisions())
}

func TestEndEventWhenBodiesSeparate(t *testing.T) {
	w := NewWorld(WithGravity(rl.Vector3{}), WithSleep(false))
	a := NewBody(1, NewSphere(0.5), nil)
	a.ReportCollisions = true
	b := NewBody(1, NewSphere(0.5), nil)
	b.Position = rl.Vector3{X: 0.9}
	w.AddBody(a)
	w.AddBody(b)

	w.Step(fixedStep, 0, 1)
	events := w.DrainCollisions()
	require.Len(t, events, 1)
	assert.Equal(t, CollisionBegin, events[0].Kind)

	b.Position = rl.Vector3{X: 5}
	w.Step(fixedStep, 0, 1)
	events = w.DrainCollisions()
	require.Len(t, events, 1)
	assert.Equal(t, CollisionEnd, events[0].Kind)
	assert.Same(t, b, events[0].Other)
}

func TestContactMaterialLookup(t *testing.T) {
	w := NewWorld()
	ice := NewMaterial("ice")
	rubber := NewMaterial("rubber")
	w.AddContactMaterial(NewContactMaterial(ice, rubber, 0.01, 0.9))

	cm := w.ContactMaterialFor(rubber, ice)
	assert.Equal(t, float32(0.9), cm.Restitution)
	assert.Equal(t, w.DefaultContactMaterial, w.ContactMaterialFor(ice, ice))
}

func TestAddBodyAssignsIDs(t *testing.T) {
	w := NewWorld(WithSleep(false))
	a := NewBody(1, NewSphere(1), nil)
	b := NewBody(1, NewSphere(1), nil)
	w.AddBody(a)
	w.AddBody(b)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.AllowSleep)
	assert.Len(t, w.Bodies(), 2)
}

func TestLocalForceAtCenterHasNoTorque(t *testing.T) {
	w := NewWorld(WithGravity(rl.Vector3{}))
	s := NewBody(1, NewSphere(0.5), nil)
	w.AddBody(s)

	s.ApplyLocalForce(rl.Vector3{Y: 500, Z: -1000}, rl.Vector3{})
	assert.Equal(t, rl.Vector3{}, s.Torque())

	w.Step(fixedStep, 0, 1)
	assert.Greater(t, s.Velocity.Y, float32(0))
	assert.Less(t, s.Velocity.Z, float32(0))
	// forces only act for a single step
	assert.Equal(t, rl.Vector3{}, s.Force())
}

func TestImpactVelocityMeasuredBeforeGravity(t *testing.T) {
	tests := []float32{0.5, 1.45, 1.55, 4}
	for _, speed := range tests {
		w := NewWorld()
		w.AddBody(newFloor())
		b := NewBody(0.2, NewBox(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}), nil)
		b.Position = rl.Vector3{Y: 0.49}
		b.Velocity = rl.Vector3{Y: -speed}
		b.ReportCollisions = true
		w.AddBody(b)

		w.Step(fixedStep, 0, 3)
		events := w.DrainCollisions()
		require.Len(t, events, 1, "speed %v", speed)
		assert.InDelta(t, speed, events[0].Contact.ImpactVelocityAlongNormal(), 1e-3, "speed %v", speed)
	}
}

func TestColumnOnSunkenBaseStaysUpright(t *testing.T) {
	for _, sleep := range []bool{true, false} {
		w := NewWorld(WithSleep(sleep))
		w.AddBody(newFloor())
		var column []*Body
		for y := 0; y < 3; y++ {
			b := NewBody(0.2, NewBox(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}), nil)
			b.Position = rl.Vector3{Y: float32(y)}
			w.AddBody(b)
			column = append(column, b)
		}
		top := column[2]

		var highest float32
		for i := 0; i < 600; i++ {
			w.Step(fixedStep, fixedStep, 3)
			if top.Position.Y > highest {
				highest = top.Position.Y
			}
		}

		// the base is pushed out of the floor without launching the column
		assert.Less(t, highest, float32(2.55), "sleep=%v", sleep)
		assert.Greater(t, top.Position.Y, float32(2.3), "sleep=%v", sleep)
		for _, b := range column {
			assert.InDelta(t, 0, b.Position.X, 0.05, "sleep=%v", sleep)
			assert.InDelta(t, 0, b.Position.Z, 0.05, "sleep=%v", sleep)
		}
		assert.InDelta(t, 0.5, column[0].Position.Y, 0.05, "sleep=%v", sleep)
	}
}

func TestDepenetrationKeepsMomentum(t *testing.T) {
	w := NewWorld(WithGravity(rl.Vector3{}), WithSleep(false))
	w.AddBody(newFloor())
	b := NewBody(0.2, NewBox(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}), nil)
	w.AddBody(b)

	for i := 0; i < 60; i++ {
		w.Step(fixedStep, fixedStep, 3)
	}
	assert.InDelta(t, 0.5, b.Position.Y, 0.02)
	assert.Equal(t, rl.Vector3{}, b.Velocity)
}
