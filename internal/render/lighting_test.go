package render

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestDirectionalLightPointsAtOrigin(t *testing.T) {
	l := NewDirectionalLight(rl.Vector3{X: 5, Y: 5, Z: 5}, rl.White, 0.6, 0.67)

	k := float32(-1 / math.Sqrt(3))
	assert.InDelta(t, k, l.Direction.X, 1e-5)
	assert.InDelta(t, k, l.Direction.Y, 1e-5)
	assert.InDelta(t, k, l.Direction.Z, 1e-5)
	assert.True(t, l.Shadows)
}

func TestLightUniformsScaleColor(t *testing.T) {
	l := NewDirectionalLight(rl.Vector3{Y: 1}, rl.Color{R: 255, G: 0, B: 51, A: 255}, 0.5, 2)

	assert.InDeltaSlice(t, []float32{0.5, 0, 0.1, 1}, l.ColorFloat(), 1e-5)
	assert.InDeltaSlice(t, []float32{2, 0, 0.4, 1}, l.AmbientFloat(), 1e-5)
}

func TestDiffuseFavoursLitFaces(t *testing.T) {
	l := NewDirectionalLight(rl.Vector3{Y: 10}, rl.White, 0.6, 0.5)

	assert.InDelta(t, 1.1, l.Diffuse(rl.Vector3{Y: 1}), 1e-5, "facing the light")
	assert.InDelta(t, 0.5, l.Diffuse(rl.Vector3{Y: -1}), 1e-5, "facing away keeps ambient")
	assert.InDelta(t, 0.5, l.Diffuse(rl.Vector3{X: 1}), 1e-5, "grazing")
}
