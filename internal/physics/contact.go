package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Contact is a single touching point between two bodies
type Contact struct {
	BodyA, BodyB *Body
	Normal       rl.Vector3 // unit, from A towards B
	Point        rl.Vector3 // world space
	Depth        float32    // penetration, >= 0

	impactVelocity float32
}

// NewContact builds a contact and measures the impact velocity from the
// bodies' current motion.
func NewContact(a, b *Body, point, normal rl.Vector3, depth float32) Contact {
	c := Contact{BodyA: a, BodyB: b, Normal: normal, Point: point, Depth: depth}
	c.impactVelocity = c.relativeNormalVelocity()
	return c
}

// relativeNormalVelocity is positive when the contact points approach each other
func (c Contact) relativeNormalVelocity() float32 {
	va := c.BodyA.VelocityAt(rl.Vector3Subtract(c.Point, c.BodyA.Position))
	vb := c.BodyB.VelocityAt(rl.Vector3Subtract(c.Point, c.BodyB.Position))
	return rl.Vector3DotProduct(c.Normal, rl.Vector3Subtract(va, vb))
}

// ImpactVelocityAlongNormal returns the approach speed along the normal at
// the moment the contact was detected, before the solver ran.
func (c Contact) ImpactVelocityAlongNormal() float32 {
	return c.impactVelocity
}

// Flipped returns the same contact seen from body B
func (c Contact) Flipped() Contact {
	c.BodyA, c.BodyB = c.BodyB, c.BodyA
	c.Normal = rl.Vector3Negate(c.Normal)
	return c
}

type CollisionKind int

const (
	CollisionBegin CollisionKind = iota
	CollisionEnd
)

func (k CollisionKind) String() string {
	if k == CollisionBegin {
		return "begin"
	}
	return "end"
}

// CollisionEvent is queued for a body with ReportCollisions set. Contact is
// oriented so that Contact.BodyA == Body. End events carry no contact.
type CollisionEvent struct {
	Kind    CollisionKind
	Body    *Body
	Other   *Body
	Contact Contact
}

// pairKey identifies an unordered body pair
type pairKey struct {
	lo, hi int
}

func makePairKey(a, b *Body) pairKey {
	if a.ID > b.ID {
		return pairKey{lo: b.ID, hi: a.ID}
	}
	return pairKey{lo: a.ID, hi: b.ID}
}

// manifold groups the contacts found for one body pair during a step
type manifold struct {
	a, b     *Body
	contacts []Contact
	material ContactMaterial
}

// strongest returns the contact with the highest approach speed
func (m *manifold) strongest() Contact {
	best := m.contacts[0]
	for _, c := range m.contacts[1:] {
		if c.impactVelocity > best.impactVelocity {
			best = c
		}
	}
	return best
}
