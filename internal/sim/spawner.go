package sim

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"playground/internal/engine"
	"playground/internal/physics"
)

// SpawnBox creates a box mesh and body pair. Dimensions are not validated.
func (c *Context) SpawnBox(width, height, depth float32, position rl.Vector3) TrackedObject {
	mesh := engine.NewMesh(fmt.Sprintf("box-%d", c.Registry.Len()), c.boxGeometry, c.boxMaterial)
	mesh.SetScale(rl.Vector3{X: width, Y: height, Z: depth})
	mesh.SetPosition(position)
	mesh.CastShadow = true

	half := rl.Vector3{X: width * 0.5, Y: height * 0.5, Z: depth * 0.5}
	body := physics.NewBody(c.cfg.Spawn.BoxMass, physics.NewBox(half), c.bodyMaterial)
	body.Position = position
	body.ReportCollisions = true

	return c.track(KindBox, mesh, body)
}

// SpawnSphere creates a sphere mesh and body pair. The radius is not validated.
func (c *Context) SpawnSphere(radius float32, position rl.Vector3) TrackedObject {
	mesh := engine.NewMesh(fmt.Sprintf("sphere-%d", c.Registry.Len()), c.sphereGeometry, c.sphereMaterial)
	mesh.SetScale(rl.Vector3{X: radius, Y: radius, Z: radius})
	mesh.SetPosition(position)
	mesh.CastShadow = true

	body := physics.NewBody(c.cfg.Spawn.SphereMass, physics.NewSphere(radius), c.bodyMaterial)
	body.Position = position

	return c.track(KindSphere, mesh, body)
}

func (c *Context) track(kind Kind, mesh *engine.Mesh, body *physics.Body) TrackedObject {
	obj := c.Registry.add(kind, mesh, body)
	c.Scene.Add(mesh)
	c.World.AddBody(body)

	c.logger.Debug("spawned",
		zap.Stringer("kind", kind),
		zap.Int("handle", int(obj.Handle)),
		zap.Float32("x", body.Position.X),
		zap.Float32("y", body.Position.Y),
		zap.Float32("z", body.Position.Z))
	return obj
}

// PopulateInitial spawns the startup batch: a grid of unit boxes with a small
// gap growing along X, then one sphere off to the side.
func (c *Context) PopulateInitial() {
	for i := 0; i < c.cfg.Spawn.GridColumns; i++ {
		x := float32(i)
		if i > 0 {
			x += float32(i) / 10
		}
		for row := 0; row < c.cfg.Spawn.GridRows; row++ {
			c.SpawnBox(1, 1, 1, rl.Vector3{X: x, Y: float32(row), Z: 0})
		}
	}
	c.SpawnSphere(0.5, rl.Vector3{X: 2, Y: 0, Z: 5})

	c.logger.Info("initial batch spawned",
		zap.Int("boxes", len(c.Registry.Boxes())),
		zap.Int("spheres", len(c.Registry.Spheres())))
}

// randomDropPosition picks a point above the floor within the spawn spread
func (c *Context) randomDropPosition() rl.Vector3 {
	spread := c.cfg.Spawn.Spread
	return rl.Vector3{
		X: (c.rng.Float32() - 0.5) * spread,
		Y: c.cfg.Spawn.DropHeight,
		Z: (c.rng.Float32() - 0.5) * spread,
	}
}

func (c *Context) SpawnRandomSphere() TrackedObject {
	return c.SpawnSphere(c.rng.Float32(), c.randomDropPosition())
}

func (c *Context) SpawnRandomBox() TrackedObject {
	w, h, d := c.rng.Float32(), c.rng.Float32(), c.rng.Float32()
	return c.SpawnBox(w, h, d, c.randomDropPosition())
}
