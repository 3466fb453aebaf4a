package render

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"

	"playground/internal/engine"
)

func testCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.Vector3{Z: 10},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       75,
		Projection: rl.CameraPerspective,
	}
}

func TestFrustumContainsTarget(t *testing.T) {
	f := ExtractFrustum(testCamera(), 16.0/9.0)

	assert.True(t, f.ContainsPoint(rl.Vector3{}))
	assert.False(t, f.ContainsPoint(rl.Vector3{Z: 20}), "behind the camera")
	assert.False(t, f.ContainsPoint(rl.Vector3{X: 500}), "far off to the side")
	assert.False(t, f.ContainsPoint(rl.Vector3{Z: -2000}), "beyond the far plane")
}

func TestFrustumSphereStraddlingEdge(t *testing.T) {
	f := ExtractFrustum(testCamera(), 1)
	assert.False(t, f.ContainsSphere(rl.Vector3{X: 30}, 1))
	assert.True(t, f.ContainsSphere(rl.Vector3{X: 30}, 25))
}

func TestVisibleMeshes(t *testing.T) {
	f := ExtractFrustum(testCamera(), 1)

	box := engine.NewMesh("box", engine.NewBoxGeometry(1, 1, 1), nil)
	assert.True(t, Visible(&f, box))

	box.SetPosition(rl.Vector3{X: 100})
	assert.False(t, Visible(&f, box))

	box.SetScale(rl.Vector3{X: 300, Y: 300, Z: 300})
	assert.True(t, Visible(&f, box), "scale grows the bounds")

	floor := engine.NewMesh("floor", engine.NewPlaneGeometry(1000, 1000), nil)
	floor.SetPosition(rl.Vector3{Z: 5000})
	assert.True(t, Visible(&f, floor))
}
