package sim

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"playground/internal/physics"
)

// Impact describes a collision that played the hit sound
type Impact struct {
	Handle   Handle
	Velocity float32
	Point    rl.Vector3
	Frame    uint64
}

// Command is an input-driven action the driver queues between frames
type Command int

const (
	CommandKick Command = iota
	CommandSpawnBox
	CommandSpawnSphere
)

func (c Command) String() string {
	switch c {
	case CommandKick:
		return "kick"
	case CommandSpawnBox:
		return "spawn_box"
	case CommandSpawnSphere:
		return "spawn_sphere"
	}
	return "unknown"
}

// Dispatch runs cmd against the simulation. It reports false when the command
// had nothing to act on.
func (c *Context) Dispatch(cmd Command) bool {
	switch cmd {
	case CommandKick:
		return c.Kick()
	case CommandSpawnBox:
		c.CreateBox.Invoke()
		return true
	case CommandSpawnSphere:
		c.CreateSphere.Invoke()
		return true
	}
	c.logger.Warn("unknown command", zap.Int("command", int(cmd)))
	return false
}

// Kick pushes the first spawned sphere with the configured local force. In
// force mode the force acts for the next internal step only; in impulse mode
// the same momentum is added at once.
func (c *Context) Kick() bool {
	sphere, ok := c.Registry.FirstSphere()
	if !ok {
		return false
	}
	f, p := c.cfg.Kick.Force, c.cfg.Kick.Point
	force := rl.Vector3{X: f[0], Y: f[1], Z: f[2]}
	point := rl.Vector3{X: p[0], Y: p[1], Z: p[2]}
	if c.cfg.Kick.Mode == "impulse" {
		sphere.Body.ApplyLocalImpulse(rl.Vector3Scale(force, c.cfg.Physics.FixedTimeStep), point)
	} else {
		sphere.Body.ApplyLocalForce(force, point)
	}
	c.logger.Debug("kick",
		zap.Int("handle", int(sphere.Handle)),
		zap.String("mode", c.cfg.Kick.Mode))
	return true
}

// routeCollisions plays the hit sound for every new contact whose approach
// speed is strictly above the threshold. Returns the number of impacts.
func (c *Context) routeCollisions(events []physics.CollisionEvent) int {
	impacts := 0
	for _, ev := range events {
		if ev.Kind != physics.CollisionBegin {
			continue
		}
		v := ev.Contact.ImpactVelocityAlongNormal()
		if v <= c.cfg.Impact.Threshold {
			continue
		}

		c.sound.Restart()
		impacts++

		impact := Impact{Handle: -1, Velocity: v, Point: ev.Contact.Point, Frame: c.frame}
		if obj, ok := c.Registry.Lookup(ev.Body); ok {
			impact.Handle = obj.Handle
		}
		c.lastImpact = impact
		c.logger.Debug("impact",
			zap.Int("handle", int(impact.Handle)),
			zap.Float32("velocity", v))
		c.Impacts.Invoke(impact)
	}
	return impacts
}
