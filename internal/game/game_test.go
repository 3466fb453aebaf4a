package game

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"playground/internal/config"
	"playground/internal/sim"
)

func TestQueueDrainsInOrder(t *testing.T) {
	g := New(config.Default(), zap.NewNop())
	g.queue(sim.CommandSpawnBox)
	g.queue(sim.CommandKick)

	assert.Equal(t, []sim.Command{sim.CommandSpawnBox, sim.CommandKick}, g.drain())
	assert.Empty(t, g.drain())
}

func TestPanelRectAnchoredTopRight(t *testing.T) {
	r := panelRect(1280)
	assert.Equal(t, float32(1280-panelWidth-panelPadding), r.X)
	assert.True(t, rl.CheckCollisionPointRec(rl.Vector2{X: 1200, Y: 20}, r))
	assert.False(t, rl.CheckCollisionPointRec(rl.Vector2{X: 100, Y: 20}, r))
}
