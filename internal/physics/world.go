package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// DefaultGravity matches Earth gravity on the Y axis
var DefaultGravity = rl.Vector3{X: 0, Y: -9.82, Z: 0}

const (
	DefaultSolverIterations = 10

	// stepEpsilon absorbs float error when the frame delta equals the fixed step
	stepEpsilon = 1e-6
)

type World struct {
	Gravity                rl.Vector3
	SolverIterations       int
	AllowSleep             bool
	DefaultContactMaterial ContactMaterial

	broadphase       Broadphase
	contactMaterials map[materialPair]ContactMaterial
	bodies           []*Body
	nextID           int

	accumulator float64
	time        float64
	stepCount   uint64

	// Collision tracking for begin/end events
	activeCollisions  map[pairKey]bool // collisions from last step
	currentCollisions map[pairKey]bool // collisions this step
	pairBodies        map[pairKey][2]*Body
	events            []CollisionEvent

	// per-step scratch
	pairs       []Pair
	contacts    []Contact
	manifolds   []manifold
	constraints []constraint

	logger *zap.Logger
}

type Option func(*World)

func WithGravity(g rl.Vector3) Option {
	return func(w *World) { w.Gravity = g }
}

func WithBroadphase(bp Broadphase) Option {
	return func(w *World) { w.broadphase = bp }
}

func WithSolverIterations(n int) Option {
	return func(w *World) { w.SolverIterations = n }
}

func WithSleep(allow bool) Option {
	return func(w *World) { w.AllowSleep = allow }
}

func WithLogger(l *zap.Logger) Option {
	return func(w *World) { w.logger = l }
}

func NewWorld(opts ...Option) *World {
	w := &World{
		Gravity:           DefaultGravity,
		SolverIterations:  DefaultSolverIterations,
		AllowSleep:        true,
		broadphase:        NewSAPBroadphase(),
		contactMaterials:  make(map[materialPair]ContactMaterial),
		activeCollisions:  make(map[pairKey]bool),
		currentCollisions: make(map[pairKey]bool),
		pairBodies:        make(map[pairKey][2]*Body),
		logger:            zap.NewNop(),
	}
	w.DefaultContactMaterial = ContactMaterial{Friction: 0.3, Restitution: 0}
	for _, opt := range opts {
		opt(w)
	}
	w.logger.Debug("physics world created",
		zap.String("broadphase", w.broadphase.Name()),
		zap.Int("solver_iterations", w.SolverIterations),
		zap.Bool("allow_sleep", w.AllowSleep))
	return w
}

func (w *World) Broadphase() Broadphase {
	return w.broadphase
}

func (w *World) AddBody(b *Body) {
	w.nextID++
	b.ID = w.nextID
	b.world = w
	if !w.AllowSleep {
		b.AllowSleep = false
	}
	w.bodies = append(w.bodies, b)
}

func (w *World) Bodies() []*Body {
	return w.bodies
}

// AddContactMaterial registers a rule for the unordered pair (cm.A, cm.B)
func (w *World) AddContactMaterial(cm ContactMaterial) {
	w.contactMaterials[materialPair{cm.A, cm.B}] = cm
	w.contactMaterials[materialPair{cm.B, cm.A}] = cm
}

// ContactMaterialFor returns the rule for two materials, falling back to
// DefaultContactMaterial.
func (w *World) ContactMaterialFor(a, b *Material) ContactMaterial {
	if cm, ok := w.contactMaterials[materialPair{a, b}]; ok {
		return cm
	}
	return w.DefaultContactMaterial
}

// Time is the simulated time in seconds
func (w *World) Time() float64 {
	return w.time
}

// StepCount is the number of internal steps taken so far
func (w *World) StepCount() uint64 {
	return w.stepCount
}

// Step advances the world by fixed-size internal steps. dt is the real time
// since the last call; it fills an accumulator that is drained in steps of
// fixed, at most maxSubSteps per call. A zero dt runs exactly one step.
// When the cap is reached the remaining backlog is dropped so a stalled frame
// never schedules extra work later. Returns the internal steps taken.
func (w *World) Step(fixed, dt float32, maxSubSteps int) int {
	if dt == 0 {
		w.internalStep(fixed)
		return 1
	}

	w.accumulator += float64(dt)
	substeps := 0
	for w.accumulator+stepEpsilon >= float64(fixed) && substeps < maxSubSteps {
		w.internalStep(fixed)
		w.accumulator -= float64(fixed)
		substeps++
	}
	if w.accumulator < 0 {
		w.accumulator = 0
	}

	if w.accumulator >= float64(fixed) {
		dropped := w.accumulator
		w.accumulator = math.Mod(w.accumulator, float64(fixed))
		w.logger.Debug("physics backlog dropped",
			zap.Float64("dropped_seconds", dropped-w.accumulator),
			zap.Int("max_sub_steps", maxSubSteps))
	}
	return substeps
}

// DrainCollisions returns the collision events queued since the last drain
func (w *World) DrainCollisions() []CollisionEvent {
	events := w.events
	w.events = nil
	return events
}

func (w *World) internalStep(dt float32) {
	for k := range w.currentCollisions {
		delete(w.currentCollisions, k)
	}

	// 1. Broad-phase
	w.pairs = w.broadphase.Pairs(w.bodies, w.pairs[:0])

	// 2. Narrow-phase. Impact velocities are measured here, from the motion
	// the bodies arrived with, before this step's gravity and forces.
	w.manifolds = w.manifolds[:0]
	w.contacts = w.contacts[:0]
	for _, p := range w.pairs {
		start := len(w.contacts)
		w.contacts = collide(p.A, p.B, w.contacts)
		if len(w.contacts) == start {
			continue
		}
		m := manifold{
			a:        p.A,
			b:        p.B,
			contacts: w.contacts[start:len(w.contacts):len(w.contacts)],
			material: w.ContactMaterialFor(p.A.Material, p.B.Material),
		}
		w.manifolds = append(w.manifolds, m)
		w.recordCollision(p.A, p.B, m.strongest())
	}

	// 3. Forces and gravity
	for _, b := range w.bodies {
		if b.IsStatic() || b.sleeping {
			continue
		}
		b.integrateVelocity(w.Gravity, dt)
	}

	// 4. Solve velocities, then overlap
	w.prepareConstraints(dt)
	w.solveVelocities()
	w.solvePositions()

	// 5. Integrate positions, clear forces, sleep
	for _, b := range w.bodies {
		if b.IsStatic() {
			continue
		}
		b.clearForces()
		if b.sleeping {
			continue
		}
		b.integratePosition(dt)
		b.trySleep(dt)
	}

	w.dispatchCollisionEnds()

	w.time += float64(dt)
	w.stepCount++
}

// recordCollision marks a pair as touching this step, wakes sleeping bodies
// hit hard enough and queues begin events for new pairs.
func (w *World) recordCollision(a, b *Body, first Contact) {
	key := makePairKey(a, b)
	w.currentCollisions[key] = true
	w.pairBodies[key] = [2]*Body{a, b}

	relSpeed := rl.Vector3Length(rl.Vector3Subtract(a.Velocity, b.Velocity))
	if relSpeed > SleepVelocityThreshold*2 {
		if a.sleeping && !a.IsStatic() {
			a.Wake()
		}
		if b.sleeping && !b.IsStatic() {
			b.Wake()
		}
	}

	if w.activeCollisions[key] {
		return
	}
	if a.ReportCollisions {
		w.events = append(w.events, CollisionEvent{Kind: CollisionBegin, Body: a, Other: b, Contact: first})
	}
	if b.ReportCollisions {
		w.events = append(w.events, CollisionEvent{Kind: CollisionBegin, Body: b, Other: a, Contact: first.Flipped()})
	}
}

// dispatchCollisionEnds queues end events and swaps the tracking buffers
func (w *World) dispatchCollisionEnds() {
	for key := range w.activeCollisions {
		if w.currentCollisions[key] {
			continue
		}
		bodies := w.pairBodies[key]
		delete(w.pairBodies, key)
		a, b := bodies[0], bodies[1]
		if a == nil || b == nil {
			continue
		}
		if a.ReportCollisions {
			w.events = append(w.events, CollisionEvent{Kind: CollisionEnd, Body: a, Other: b})
		}
		if b.ReportCollisions {
			w.events = append(w.events, CollisionEvent{Kind: CollisionEnd, Body: b, Other: a})
		}
	}

	// Swap buffers
	w.activeCollisions, w.currentCollisions = w.currentCollisions, w.activeCollisions
}
