package camera

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestNewOrbitKeepsPosition(t *testing.T) {
	start := rl.Vector3{X: -8, Y: 8, Z: 8}
	o := NewOrbit(start, rl.Vector3{}, 75, 0.05)

	p := o.Position()
	assert.InDelta(t, start.X, p.X, 1e-4)
	assert.InDelta(t, start.Y, p.Y, 1e-4)
	assert.InDelta(t, start.Z, p.Z, 1e-4)
	assert.Equal(t, float32(75), o.Camera3D().Fovy)
}

func TestUpdateWithoutInputIsStable(t *testing.T) {
	o := NewOrbit(rl.Vector3{X: -8, Y: 8, Z: 8}, rl.Vector3{}, 75, 0.05)
	before := o.Position()
	for i := 0; i < 100; i++ {
		o.Update()
	}
	assert.Equal(t, before, o.Position())
	assert.False(t, o.Moving())
}

func TestDampingEasesOut(t *testing.T) {
	o := NewOrbit(rl.Vector3{Z: 10}, rl.Vector3{}, 75, 0.05)
	o.Rotate(-100, 0)

	o.Update()
	first := o.azimuth
	o.Update()
	second := o.azimuth - first

	// each frame applies 5% of what is left
	assert.InDelta(t, 0.5*0.05, first, 1e-5)
	assert.InDelta(t, 0.5*0.05*0.95, second, 1e-5)
	assert.True(t, o.Moving())

	for i := 0; i < 1000; i++ {
		o.Update()
	}
	assert.InDelta(t, 0.5, o.azimuth, 1e-3)
	assert.False(t, o.Moving())
	assert.InDelta(t, 10, o.Distance(), 1e-4)
}

func TestNoDampingAppliesImmediately(t *testing.T) {
	o := NewOrbit(rl.Vector3{Z: 10}, rl.Vector3{}, 75, 0)
	o.Rotate(-100, 0)
	o.Update()
	assert.InDelta(t, 0.5, o.azimuth, 1e-5)
	assert.False(t, o.Moving())
}

func TestZoomClampsDistance(t *testing.T) {
	o := NewOrbit(rl.Vector3{Z: 10}, rl.Vector3{}, 75, 0)
	for i := 0; i < 100; i++ {
		o.Zoom(5)
		o.Update()
	}
	assert.Equal(t, o.MinDistance, o.Distance())
}

func TestPolarClamped(t *testing.T) {
	o := NewOrbit(rl.Vector3{Z: 10}, rl.Vector3{}, 75, 0)
	o.Rotate(0, 10000)
	o.Update()
	assert.Greater(t, o.Position().Y, float32(9.9))
	assert.Less(t, o.Position().Y, float32(10))
}
