package sim

import (
	"go.uber.org/zap"
)

type LoopState int

const (
	StateIdle LoopState = iota
	StateStepping
	StateRendered
)

func (s LoopState) String() string {
	switch s {
	case StateStepping:
		return "stepping"
	case StateRendered:
		return "rendered"
	}
	return "idle"
}

type FrameStats struct {
	Frame      uint64
	Delta      float64
	SubSteps   int
	Collisions int
	Impacts    int
}

// Frame runs one animation frame: step the world with the measured delta,
// route collision events, copy body transforms onto meshes, then update the
// camera and render. The step always happens before the copy so no mesh is
// drawn with a transform older than the latest step.
func (c *Context) Frame() FrameStats {
	elapsed := c.clock.Elapsed()
	delta := elapsed - c.previous
	c.previous = elapsed
	c.frame++

	c.state = StateStepping
	phys := c.cfg.Physics
	stats := FrameStats{Frame: c.frame, Delta: delta}
	stats.SubSteps = c.World.Step(phys.FixedTimeStep, float32(delta), phys.MaxSubSteps)

	events := c.World.DrainCollisions()
	stats.Collisions = len(events)
	stats.Impacts = c.routeCollisions(events)

	c.syncMeshes()

	if c.camera != nil {
		c.camera.Update()
	}
	if c.renderer != nil {
		c.renderer.Render(c.Scene)
	}
	c.state = StateRendered

	if stats.SubSteps == phys.MaxSubSteps {
		c.logger.Debug("frame hit sub-step cap",
			zap.Uint64("frame", c.frame),
			zap.Float64("delta", delta))
	}

	c.state = StateIdle
	return stats
}

// syncMeshes copies body transforms onto their meshes. Boxes take position and
// orientation; spheres take position only since they look the same when spun.
func (c *Context) syncMeshes() {
	for _, h := range c.Registry.Boxes() {
		obj := c.Registry.objects[h]
		obj.Mesh.SetPosition(obj.Body.Position)
		obj.Mesh.SetRotation(obj.Body.Quaternion)
	}
	for _, h := range c.Registry.Spheres() {
		obj := c.Registry.objects[h]
		obj.Mesh.SetPosition(obj.Body.Position)
	}
}

// State reports where the loop is inside the current frame
func (c *Context) State() LoopState {
	return c.state
}

func (c *Context) FrameCount() uint64 {
	return c.frame
}
