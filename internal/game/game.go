package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"playground/internal/audio"
	"playground/internal/camera"
	"playground/internal/compute"
	"playground/internal/config"
	"playground/internal/engine"
	"playground/internal/render"
	"playground/internal/sim"
)

// Game owns the window and drives the simulation one frame per display refresh
type Game struct {
	cfg    *config.Config
	logger *zap.Logger

	sim      *sim.Context
	orbit    *camera.Orbit
	renderer *render.Renderer
	device   *audio.Device

	pending []sim.Command
	stats   sim.FrameStats
}

func New(cfg *config.Config, logger *zap.Logger) *Game {
	return &Game{cfg: cfg, logger: logger}
}

// Run opens the window and blocks until it is closed
func (g *Game) Run() error {
	w := g.cfg.Window
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(w.TargetFPS)

	g.device = audio.Open(g.logger.Named("audio"))
	defer g.device.Close()
	hit := g.device.LoadOrSynth(g.cfg.Impact.Sound, g.cfg.Impact.Volume)

	c := g.cfg.Camera
	g.orbit = camera.NewOrbit(vec(c.Position), vec(c.Target), c.Fovy, c.Damping)
	l := g.cfg.Light
	light := render.NewDirectionalLight(vec(l.Position), engine.HexColor(l.Color), l.Intensity, l.Ambient)
	light.Shadows = l.Shadows
	g.renderer = render.NewRenderer(g.orbit, w.AxesLength, light)
	defer g.renderer.Unload()
	g.renderer.Overlay = func() {
		g.drawHUD()
		g.drawPanel()
	}
	initGuiStyle()

	opts := []sim.Option{
		sim.WithLogger(g.logger.Named("sim")),
		sim.WithSound(hit),
		sim.WithCamera(g.orbit),
		sim.WithRenderer(g.renderer),
	}
	if g.cfg.Physics.Broadphase == "gpu" {
		bp, release, err := compute.OpenBroadphase(g.logger.Named("compute"))
		if err != nil {
			g.logger.Warn("gpu broadphase unavailable", zap.Error(err))
		} else {
			defer release()
			opts = append(opts, sim.WithBroadphase(bp))
		}
	}
	ctx, err := sim.New(g.cfg, opts...)
	if err != nil {
		return err
	}
	g.sim = ctx
	g.sim.PopulateInitial()

	g.logger.Info("window opened",
		zap.Int32("width", w.Width),
		zap.Int32("height", w.Height),
		zap.String("broadphase", g.sim.World.Broadphase().Name()))

	for !rl.WindowShouldClose() {
		g.Update()
		g.stats = g.sim.Frame()
	}

	g.logger.Info("window closed",
		zap.Uint64("frames", g.sim.FrameCount()),
		zap.Uint64("physics_steps", g.sim.World.StepCount()),
		zap.Int("objects", g.sim.Registry.Len()))
	return nil
}

// Update polls input and dispatches everything queued since the last frame,
// including button clicks from the previous overlay pass.
func (g *Game) Update() {
	if !g.overPanel(rl.GetMousePosition()) {
		g.orbit.HandleInput()
	}

	// Any key kicks the sphere
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.queue(sim.CommandKick)
	}

	for _, cmd := range g.drain() {
		if !g.sim.Dispatch(cmd) {
			g.logger.Debug("command had no target", zap.Stringer("command", cmd))
		}
	}
}

func (g *Game) queue(cmd sim.Command) {
	g.pending = append(g.pending, cmd)
}

func (g *Game) drain() []sim.Command {
	cmds := g.pending
	g.pending = nil
	return cmds
}

func (g *Game) overPanel(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, panelRect(int32(rl.GetScreenWidth())))
}

func vec(v config.Vec3) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}
