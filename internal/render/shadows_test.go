package render

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playground/internal/engine"
)

func shadowScene() (*engine.Scene, *engine.Mesh) {
	scene := engine.NewScene("test")
	floor := engine.NewMesh("floor", engine.NewPlaneGeometry(100, 100), nil)
	floor.ReceiveShadow = true
	scene.Add(floor)

	box := engine.NewMesh("box", engine.NewBoxGeometry(1, 1, 2), nil)
	box.CastShadow = true
	box.SetPosition(rl.Vector3{Y: 2})
	scene.Add(box)
	return scene, box
}

func TestShadowFallsAlongLight(t *testing.T) {
	scene, _ := shadowScene()
	light := NewDirectionalLight(rl.Vector3{X: 1, Y: 1}, rl.White, 0.6, 0.67)

	blobs := shadowBlobs(scene, light)
	require.Len(t, blobs, 1)
	assert.InDelta(t, -2, blobs[0].Center.X, 1e-4, "light from +x pushes the shadow to -x")
	assert.InDelta(t, shadowLift, blobs[0].Center.Y, 1e-5)
	assert.InDelta(t, 0, blobs[0].Center.Z, 1e-5)
	assert.InDelta(t, 1, blobs[0].Radius, 1e-5)
	assert.Greater(t, blobs[0].Alpha, float32(0))
}

func TestShadowFadesWithHeight(t *testing.T) {
	scene, box := shadowScene()
	light := NewDirectionalLight(rl.Vector3{Y: 1}, rl.White, 0.6, 0.67)

	low := shadowBlobs(scene, light)[0].Alpha
	box.SetPosition(rl.Vector3{Y: 8})
	high := shadowBlobs(scene, light)[0].Alpha
	assert.Less(t, high, low)

	box.SetPosition(rl.Vector3{Y: shadowFade + 1})
	assert.Empty(t, shadowBlobs(scene, light))
}

func TestShadowNeedsCasterAndReceiver(t *testing.T) {
	light := NewDirectionalLight(rl.Vector3{Y: 1}, rl.White, 0.6, 0.67)

	scene, box := shadowScene()
	box.CastShadow = false
	assert.Empty(t, shadowBlobs(scene, light))

	scene, box = shadowScene()
	box.SetPosition(rl.Vector3{Y: -1})
	assert.Empty(t, shadowBlobs(scene, light), "below every receiver")

	scene, _ = shadowScene()
	light.Direction = rl.Vector3{Y: 1}
	assert.Empty(t, shadowBlobs(scene, light), "light from below")
}
