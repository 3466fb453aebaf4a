package physics

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	restitutionThreshold = 0.2   // approach speeds below this do not bounce
	penetrationSlop      = 0.005 // overlap tolerated without correction
	penetrationBias      = 0.2   // share of remaining overlap removed per step
	maxPushSpeed         = 3.0   // cap on the separation speed used to resolve overlap
)

// constraint is the solver's view of one contact
type constraint struct {
	a, b   *Body
	normal rl.Vector3
	t1, t2 rl.Vector3
	rA, rB rl.Vector3

	normalMass   float32
	tangentMass1 float32
	tangentMass2 float32
	bias         float32 // restitution target along the normal
	pushBias     float32 // separation speed that removes the overlap
	friction     float32

	pushImpulse     float32
	normalImpulse   float32
	tangentImpulse1 float32
	tangentImpulse2 float32
}

// Sleeping bodies act as static until something wakes them
func solverInvMass(b *Body) float32 {
	if b.sleeping {
		return 0
	}
	return b.invMass
}

func solverInvInertia(b *Body, v rl.Vector3) rl.Vector3 {
	if b.sleeping {
		return rl.Vector3{}
	}
	return b.invInertiaWorld(v)
}

func applySolverImpulse(b *Body, impulse, r rl.Vector3) {
	if b.sleeping || b.IsStatic() {
		return
	}
	b.applyImpulse(impulse, r)
}

func effectiveMass(a, b *Body, rA, rB, dir rl.Vector3) float32 {
	k := solverInvMass(a) + solverInvMass(b)
	ra := rl.Vector3CrossProduct(solverInvInertia(a, rl.Vector3CrossProduct(rA, dir)), rA)
	rb := rl.Vector3CrossProduct(solverInvInertia(b, rl.Vector3CrossProduct(rB, dir)), rB)
	k += rl.Vector3DotProduct(dir, rl.Vector3Add(ra, rb))
	if k <= 0 {
		return 0
	}
	return 1 / k
}

func relativeVelocity(c *constraint) rl.Vector3 {
	return rl.Vector3Subtract(c.b.VelocityAt(c.rB), c.a.VelocityAt(c.rA))
}

func relativePushVelocity(c *constraint) rl.Vector3 {
	return rl.Vector3Subtract(c.b.pushVelocityAt(c.rB), c.a.pushVelocityAt(c.rA))
}

// prepareConstraints builds one constraint per contact of every manifold.
// Restitution uses the approach speed measured before this step's gravity.
func (w *World) prepareConstraints(dt float32) {
	w.constraints = w.constraints[:0]
	for i := range w.manifolds {
		m := &w.manifolds[i]
		for _, contact := range m.contacts {
			c := constraint{
				a:        m.a,
				b:        m.b,
				normal:   contact.Normal,
				rA:       rl.Vector3Subtract(contact.Point, m.a.Position),
				rB:       rl.Vector3Subtract(contact.Point, m.b.Position),
				friction: m.material.Friction,
			}
			c.t1, c.t2 = tangentBasis(c.normal)
			c.normalMass = effectiveMass(c.a, c.b, c.rA, c.rB, c.normal)
			c.tangentMass1 = effectiveMass(c.a, c.b, c.rA, c.rB, c.t1)
			c.tangentMass2 = effectiveMass(c.a, c.b, c.rA, c.rB, c.t2)

			if impact := contact.ImpactVelocityAlongNormal(); impact > restitutionThreshold {
				c.bias = m.material.Restitution * impact
			}
			if overlap := contact.Depth - penetrationSlop; overlap > 0 {
				c.pushBias = minf(penetrationBias*overlap/dt, maxPushSpeed)
			}
			w.constraints = append(w.constraints, c)
		}
	}
}

// solveVelocities runs sequential impulses with accumulated clamping
func (w *World) solveVelocities() {
	for iter := 0; iter < w.SolverIterations; iter++ {
		for i := range w.constraints {
			c := &w.constraints[i]
			if c.normalMass == 0 {
				continue
			}

			// Normal
			vn := rl.Vector3DotProduct(relativeVelocity(c), c.normal)
			lambda := (c.bias - vn) * c.normalMass
			old := c.normalImpulse
			c.normalImpulse = old + lambda
			if c.normalImpulse < 0 {
				c.normalImpulse = 0
			}
			lambda = c.normalImpulse - old
			w.applyConstraintImpulse(c, rl.Vector3Scale(c.normal, lambda))

			// Friction, bounded by the normal impulse
			maxFriction := c.friction * c.normalImpulse
			c.tangentImpulse1 = w.solveTangent(c, c.t1, c.tangentMass1, c.tangentImpulse1, maxFriction)
			c.tangentImpulse2 = w.solveTangent(c, c.t2, c.tangentMass2, c.tangentImpulse2, maxFriction)
		}
	}
}

func (w *World) solveTangent(c *constraint, t rl.Vector3, mass, accumulated, maxFriction float32) float32 {
	if mass == 0 {
		return accumulated
	}
	vt := rl.Vector3DotProduct(relativeVelocity(c), t)
	updated := clampf(accumulated-vt*mass, -maxFriction, maxFriction)
	w.applyConstraintImpulse(c, rl.Vector3Scale(t, updated-accumulated))
	return updated
}

func (w *World) applyConstraintImpulse(c *constraint, impulse rl.Vector3) {
	applySolverImpulse(c.a, rl.Vector3Negate(impulse), c.rA)
	applySolverImpulse(c.b, impulse, c.rB)
}

// solvePositions resolves overlap with pseudo velocities. They move bodies
// during position integration and are then discarded, so depenetration
// never changes real momentum.
func (w *World) solvePositions() {
	for iter := 0; iter < w.SolverIterations; iter++ {
		for i := range w.constraints {
			c := &w.constraints[i]
			if c.normalMass == 0 {
				continue
			}
			// Contacts without overlap still stop pseudo velocities from
			// driving bodies into each other, so a push travels up a stack.
			vn := rl.Vector3DotProduct(relativePushVelocity(c), c.normal)
			lambda := (c.pushBias - vn) * c.normalMass
			old := c.pushImpulse
			c.pushImpulse = old + lambda
			if c.pushImpulse < 0 {
				c.pushImpulse = 0
			}
			lambda = c.pushImpulse - old

			impulse := rl.Vector3Scale(c.normal, lambda)
			applyPushImpulse(c.a, rl.Vector3Negate(impulse), c.rA)
			applyPushImpulse(c.b, impulse, c.rB)
		}
	}
}

func applyPushImpulse(b *Body, impulse, r rl.Vector3) {
	if b.sleeping || b.IsStatic() {
		return
	}
	b.pushVelocity = rl.Vector3Add(b.pushVelocity, rl.Vector3Scale(impulse, b.invMass))
	b.pushAngular = rl.Vector3Add(b.pushAngular, b.invInertiaWorld(rl.Vector3CrossProduct(r, impulse)))
}
