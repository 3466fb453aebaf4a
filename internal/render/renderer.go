package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"playground/internal/engine"
)

// CameraSource provides the camera used for the current frame
type CameraSource interface {
	Camera3D() rl.Camera3D
}

// Renderer draws a scene graph with raylib. Overlay runs after the 3D pass
// inside the same BeginDrawing block, for GUI and HUD.
type Renderer struct {
	Camera     CameraSource
	AxesLength float32
	Light      Light
	Overlay    func()

	models   *ModelCache
	lighting *lightingShader
	culled   int
}

// NewRenderer compiles the lighting shader, so it needs an open window.
// Without a valid shader meshes are drawn unlit in their material color.
func NewRenderer(cam CameraSource, axesLength float32, light Light) *Renderer {
	r := &Renderer{
		Camera:     cam,
		AxesLength: axesLength,
		Light:      light,
	}
	var shader *rl.Shader
	if lighting, ok := loadLightingShader(); ok {
		r.lighting = lighting
		shader = &lighting.shader
	}
	r.models = NewModelCache(shader)
	return r
}

func (r *Renderer) Render(scene *engine.Scene) {
	camera := r.Camera.Camera3D()
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	frustum := ExtractFrustum(camera, aspect)

	if r.lighting != nil {
		r.lighting.setLight(r.Light)
		r.lighting.setView(camera.Position)
	}

	rl.BeginDrawing()
	rl.ClearBackground(scene.Background)

	rl.BeginMode3D(camera)
	r.culled = 0
	scene.Traverse(func(m *engine.Mesh) {
		if m.Geometry == nil || m.Material == nil {
			return
		}
		if !Visible(&frustum, m) {
			r.culled++
			return
		}
		r.drawMesh(m)
	})
	if r.Light.Shadows {
		drawShadows(shadowBlobs(scene, r.Light))
	}
	if r.AxesLength > 0 {
		drawAxes(r.AxesLength)
	}
	rl.EndMode3D()

	if r.Overlay != nil {
		r.Overlay()
	}
	rl.EndDrawing()
}

func (r *Renderer) drawMesh(m *engine.Mesh) {
	model := r.models.Model(m.Geometry)
	base := model.Transform
	model.Transform = rl.MatrixMultiply(base, m.Matrix())

	if r.lighting != nil {
		r.lighting.setSurface(m.Material.Metalness, m.Material.Roughness)
	}
	rl.DrawModel(model, rl.Vector3Zero(), 1.0, m.Material.Color)
	if m.Geometry.Kind == engine.GeometryBox {
		rl.DrawModelWires(model, rl.Vector3Zero(), 1.0, rl.Fade(rl.Black, 0.4))
	}
}

// Visible reports whether a mesh's bounding sphere touches the frustum.
// Planes are unbounded and always drawn.
func Visible(f *Frustum, m *engine.Mesh) bool {
	if m.Geometry.Kind == engine.GeometryPlane {
		return true
	}
	radius := rl.Vector3Length(m.Size()) / 2
	return f.ContainsSphere(m.Transform.Position, radius)
}

func drawAxes(length float32) {
	origin := rl.Vector3Zero()
	rl.DrawLine3D(origin, rl.Vector3{X: length}, rl.Red)
	rl.DrawLine3D(origin, rl.Vector3{Y: length}, rl.Green)
	rl.DrawLine3D(origin, rl.Vector3{Z: length}, rl.Blue)
}

// Culled is the number of meshes skipped in the last Render
func (r *Renderer) Culled() int {
	return r.culled
}

func (r *Renderer) Unload() {
	r.models.Unload()
	if r.lighting != nil {
		r.lighting.unload()
	}
}
