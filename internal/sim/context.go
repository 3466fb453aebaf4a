package sim

import (
	"fmt"
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"playground/internal/config"
	"playground/internal/engine"
	"playground/internal/physics"
)

// SoundPlayer plays the impact sound, rewinding it if it is already playing
type SoundPlayer interface {
	Restart()
}

// CameraController advances camera damping once per frame
type CameraController interface {
	Update()
}

// SceneRenderer draws the scene with the current camera
type SceneRenderer interface {
	Render(scene *engine.Scene)
}

type nopSound struct{}

func (nopSound) Restart() {}

// Context holds everything one simulation run needs. It is not safe for
// concurrent use; the driver calls Frame and Dispatch from a single loop.
type Context struct {
	World    *physics.World
	Scene    *engine.Scene
	Registry *Registry
	Floor    *engine.Mesh
	Ground   *physics.Body

	// Impacts fires for every collision loud enough to play the sound
	Impacts engine.EventWithArg[Impact]
	// CreateSphere and CreateBox are bound to the GUI buttons
	CreateSphere engine.Event
	CreateBox    engine.Event

	cfg      *config.Config
	clock    Clock
	logger   *zap.Logger
	rng      *rand.Rand
	sound    SoundPlayer
	camera   CameraController
	renderer SceneRenderer
	// broadphase overrides the one named in the config
	broadphase physics.Broadphase

	boxGeometry    *engine.Geometry
	sphereGeometry *engine.Geometry
	boxMaterial    *engine.Material
	sphereMaterial *engine.Material
	bodyMaterial   *physics.Material

	previous   float64
	frame      uint64
	state      LoopState
	lastImpact Impact
}

type Option func(*Context)

func WithClock(c Clock) Option {
	return func(ctx *Context) { ctx.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(ctx *Context) { ctx.logger = l }
}

func WithSeed(seed int64) Option {
	return func(ctx *Context) { ctx.rng = rand.New(rand.NewSource(seed)) }
}

func WithSound(s SoundPlayer) Option {
	return func(ctx *Context) { ctx.sound = s }
}

func WithCamera(c CameraController) Option {
	return func(ctx *Context) { ctx.camera = c }
}

func WithRenderer(r SceneRenderer) Option {
	return func(ctx *Context) { ctx.renderer = r }
}

// WithBroadphase replaces the broadphase named by physics.broadphase.
// The "gpu" setting needs one, since the device is opened by the caller.
func WithBroadphase(bp physics.Broadphase) Option {
	return func(ctx *Context) { ctx.broadphase = bp }
}

// New builds the world, the scene with its floor and the shared render
// resources. It spawns nothing; call PopulateInitial for the startup batch.
func New(cfg *config.Config, opts ...Option) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx := &Context{
		Scene:    engine.NewScene("playground"),
		Registry: NewRegistry(),
		cfg:      cfg,
		logger:   zap.NewNop(),
		sound:    nopSound{},
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	if ctx.clock == nil {
		ctx.clock = NewSystemClock()
	}
	if ctx.rng == nil {
		ctx.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	bp, err := ctx.newBroadphase()
	if err != nil {
		return nil, fmt.Errorf("physics world: %w", err)
	}
	g := cfg.Physics.Gravity
	ctx.World = physics.NewWorld(
		physics.WithGravity(rl.Vector3{X: g[0], Y: g[1], Z: g[2]}),
		physics.WithBroadphase(bp),
		physics.WithSolverIterations(cfg.Physics.SolverIterations),
		physics.WithSleep(cfg.Physics.AllowSleep),
		physics.WithLogger(ctx.logger.Named("physics")),
	)

	ctx.bodyMaterial = physics.NewMaterial("default")
	ctx.World.DefaultContactMaterial = physics.NewContactMaterial(
		ctx.bodyMaterial, ctx.bodyMaterial,
		cfg.Physics.Friction, cfg.Physics.Restitution)
	ctx.World.AddContactMaterial(ctx.World.DefaultContactMaterial)

	ctx.Scene.Background = engine.HexColor(cfg.Window.Background)
	ctx.boxGeometry = engine.NewBoxGeometry(1, 1, 1)
	ctx.sphereGeometry = engine.NewSphereGeometry(1, 20, 20)
	ctx.boxMaterial = engine.NewMaterial(rl.White, cfg.Spawn.Metalness, cfg.Spawn.Roughness)
	ctx.sphereMaterial = engine.NewMaterial(rl.White, cfg.Spawn.Metalness, cfg.Spawn.Roughness)

	ctx.addFloor()

	ctx.CreateSphere.AddListener(func() { ctx.SpawnRandomSphere() })
	ctx.CreateBox.AddListener(func() { ctx.SpawnRandomBox() })

	ctx.previous = ctx.clock.Elapsed()
	return ctx, nil
}

func (c *Context) newBroadphase() (physics.Broadphase, error) {
	if c.broadphase != nil {
		return c.broadphase, nil
	}
	name := c.cfg.Physics.Broadphase
	if name == "gpu" {
		c.logger.Warn("no gpu broadphase was opened, falling back to sap")
		name = "sap"
	}
	return physics.NewBroadphase(name)
}

// addFloor creates the static ground body and its mesh. Both face +Y.
func (c *Context) addFloor() {
	floorRotation := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, -math.Pi/2)

	size := c.cfg.Window.FloorSize
	floorMaterial := engine.NewMaterial(engine.HexColor(c.cfg.Window.FloorColor), c.cfg.Spawn.Metalness, c.cfg.Spawn.Roughness)
	c.Floor = engine.NewMesh("floor", engine.NewPlaneGeometry(size, size), floorMaterial)
	c.Floor.SetRotation(floorRotation)
	c.Floor.ReceiveShadow = true
	c.Scene.Add(c.Floor)

	c.Ground = physics.NewBody(0, physics.NewPlane(), c.bodyMaterial)
	c.Ground.Quaternion = floorRotation
	c.World.AddBody(c.Ground)
}

func (c *Context) Config() *config.Config {
	return c.cfg
}

func (c *Context) Logger() *zap.Logger {
	return c.logger
}

// LastImpact returns the most recent impact that played the sound
func (c *Context) LastImpact() Impact {
	return c.lastImpact
}
