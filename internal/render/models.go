package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"playground/internal/engine"
)

// ModelCache turns shared geometry into GPU models, one model per geometry
// instance. Meshes that share a geometry share the model. A non-nil shader is
// assigned to every model's material.
type ModelCache struct {
	models map[*engine.Geometry]rl.Model
	shader *rl.Shader
}

func NewModelCache(shader *rl.Shader) *ModelCache {
	return &ModelCache{models: make(map[*engine.Geometry]rl.Model), shader: shader}
}

func (c *ModelCache) Model(g *engine.Geometry) rl.Model {
	if model, exists := c.models[g]; exists {
		return model
	}

	var mesh rl.Mesh
	switch g.Kind {
	case engine.GeometryBox:
		mesh = rl.GenMeshCube(g.Width, g.Height, g.Depth)
	case engine.GeometrySphere:
		mesh = rl.GenMeshSphere(g.Radius, int(g.HeightSegments), int(g.WidthSegments))
	case engine.GeometryPlane:
		// raylib planes lie in XZ; rotate into the local XY convention
		mesh = rl.GenMeshPlane(g.Size.X, g.Size.Y, 1, 1)
	}
	model := rl.LoadModelFromMesh(mesh)
	if g.Kind == engine.GeometryPlane {
		model.Transform = rl.MatrixRotateX(rl.Pi / 2)
	}
	if c.shader != nil {
		model.Materials.Shader = *c.shader
	}
	c.models[g] = model
	return model
}

func (c *ModelCache) Len() int {
	return len(c.models)
}

func (c *ModelCache) Unload() {
	for _, model := range c.models {
		rl.UnloadModel(model)
	}
	c.models = make(map[*engine.Geometry]rl.Model)
}
