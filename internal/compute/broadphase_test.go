package compute

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playground/internal/physics"
)

func body(id int, shape physics.Shape, mass float32, pos rl.Vector3) *physics.Body {
	b := physics.NewBody(mass, shape, nil)
	b.ID = id
	b.Position = pos
	return b
}

func TestBoundingSpheresEncloseAABB(t *testing.T) {
	box := body(1, physics.NewBox(rl.Vector3{X: 1, Y: 2, Z: 3}), 1, rl.Vector3{X: 4})
	ball := body(2, physics.NewSphere(0.5), 1, rl.Vector3{Y: -2})

	spheres := boundingSpheres([]*physics.Body{box, ball}, nil)
	require.Len(t, spheres, 2)

	assert.InDelta(t, 4, spheres[0].X, 1e-5)
	assert.InDelta(t, math.Sqrt(1+4+9), spheres[0].Radius, 2e-3)

	assert.InDelta(t, -2, spheres[1].Y, 1e-5)
	// a sphere's AABB corner sits sqrt(3) radii out
	assert.InDelta(t, 0.5*math.Sqrt(3), spheres[1].Radius, 2e-3)
	assert.Greater(t, spheres[1].Radius, float32(0.5*math.Sqrt(3)))
}

func TestPairsWithoutDeviceUsesFallback(t *testing.T) {
	floor := body(1, physics.NewPlane(), 0, rl.Vector3{})
	a := body(2, physics.NewSphere(0.5), 1, rl.Vector3{Y: 0.4})
	b := body(3, physics.NewSphere(0.5), 1, rl.Vector3{Y: 1.2})

	bp := &Broadphase{fallback: physics.NewSAPBroadphase(), failed: true}
	pairs := bp.Pairs([]*physics.Body{floor, a, b}, nil)
	want := physics.NewSAPBroadphase().Pairs([]*physics.Body{floor, a, b}, nil)
	assert.ElementsMatch(t, want, pairs)
	assert.Len(t, pairs, 2)
}

func TestConfirmPairsFiltersLooseCandidates(t *testing.T) {
	// Two boxes whose enclosing spheres overlap but whose AABBs do not.
	half := rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}
	a := body(1, physics.NewBox(half), 1, rl.Vector3{})
	b := body(2, physics.NewBox(half), 1, rl.Vector3{X: 1.2, Y: 1.2})
	c := body(3, physics.NewSphere(0.5), 1, rl.Vector3{X: 0.8})
	bodies := []*physics.Body{a, b, c}

	candidates := []IndexPair{{A: 0, B: 1}, {A: 0, B: 2}, {A: 1, B: 7}}
	pairs := confirmPairs(bodies, candidates, nil)

	require.Len(t, pairs, 1)
	assert.Same(t, a, pairs[0].A)
	assert.Same(t, c, pairs[0].B)
}

func TestConfirmPairsSkipsStaticPairs(t *testing.T) {
	a := body(1, physics.NewSphere(0.5), 0, rl.Vector3{})
	b := body(2, physics.NewSphere(0.5), 0, rl.Vector3{X: 0.5})

	assert.Empty(t, confirmPairs([]*physics.Body{a, b}, []IndexPair{{A: 0, B: 1}}, nil))
}

func TestNewBroadphaseNeedsDevice(t *testing.T) {
	_, err := NewBroadphase(nil, nil, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}
