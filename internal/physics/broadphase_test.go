package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spheresInRow(n int, spacing float32) []*Body {
	w := NewWorld()
	for i := 0; i < n; i++ {
		b := NewBody(1, NewSphere(0.5), nil)
		b.Position = rl.Vector3{X: float32(i) * spacing}
		w.AddBody(b)
	}
	return w.Bodies()
}

func pairSet(pairs []Pair) map[pairKey]bool {
	set := make(map[pairKey]bool, len(pairs))
	for _, p := range pairs {
		set[makePairKey(p.A, p.B)] = true
	}
	return set
}

func TestNewBroadphase(t *testing.T) {
	bp, err := NewBroadphase("sap")
	require.NoError(t, err)
	assert.Equal(t, "sap", bp.Name())

	bp, err = NewBroadphase("grid")
	require.NoError(t, err)
	assert.Equal(t, "grid", bp.Name())

	_, err = NewBroadphase("octree")
	assert.Error(t, err)
}

func TestBroadphasesAgree(t *testing.T) {
	bodies := spheresInRow(20, 0.9)
	floor := newFloor()
	bodies = append(bodies, floor)

	sap := NewSAPBroadphase().Pairs(bodies, nil)
	grid := NewGridBroadphase(DefaultCellSize).Pairs(bodies, nil)

	assert.Equal(t, pairSet(sap), pairSet(grid))
	// 19 neighbouring overlaps plus every sphere against the floor
	assert.Len(t, sap, 19+20)
}

func TestBroadphaseSkipsIdlePairs(t *testing.T) {
	a := NewBody(0, NewSphere(0.5), nil)
	b := NewBody(0, NewSphere(0.5), nil)
	a.ID, b.ID = 1, 2

	assert.Empty(t, NewSAPBroadphase().Pairs([]*Body{a, b}, nil))
	assert.Empty(t, NewGridBroadphase(1).Pairs([]*Body{a, b}, nil))
}

func TestGridHandlesBodiesSpanningCells(t *testing.T) {
	a := NewBody(1, NewBox(rl.Vector3{X: 3, Y: 0.5, Z: 0.5}), nil)
	b := NewBody(1, NewSphere(0.5), nil)
	a.ID, b.ID = 1, 2
	b.Position = rl.Vector3{X: 2.8}

	pairs := NewGridBroadphase(1).Pairs([]*Body{a, b}, nil)
	assert.Len(t, pairs, 1)
}
