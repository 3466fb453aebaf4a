package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"playground/internal/config"
	"playground/internal/physics"
)

func TestHeadlessRun(t *testing.T) {
	res, err := runHeadless(context.Background(), config.Default(), zap.NewNop(), headlessOptions{
		Frames:    180,
		FrameTime: 1.0 / 60.0,
		Seed:      1,
		KickAt:    60,
	})
	require.NoError(t, err)

	assert.Equal(t, 180, res.Frames)
	assert.Equal(t, uint64(180), res.Steps)
	assert.Equal(t, 1, res.MaxSubSteps)
	assert.Len(t, res.Heights, 180)
	// the kick launches the sphere upwards
	peak := 0.0
	for _, h := range res.Heights[60:] {
		if h > peak {
			peak = h
		}
	}
	assert.Greater(t, peak, 1.5)
}

func TestHeadlessSlowFramesHitCap(t *testing.T) {
	res, err := runHeadless(context.Background(), config.Default(), zap.NewNop(), headlessOptions{
		Frames:    10,
		FrameTime: 0.5,
		KickAt:    -1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.MaxSubSteps)
	assert.Equal(t, uint64(30), res.Steps)
}

func TestHeadlessStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := runHeadless(ctx, config.Default(), zap.NewNop(), headlessOptions{Frames: 100, FrameTime: 0.01, KickAt: -1})
	require.NoError(t, err)
	assert.Zero(t, res.Frames)
}

func TestHeadlessRejectsNegativeFrames(t *testing.T) {
	_, err := runHeadless(context.Background(), config.Default(), zap.NewNop(), headlessOptions{Frames: -1})
	assert.Error(t, err)
}

func TestPrintHeadless(t *testing.T) {
	var buf bytes.Buffer
	printHeadless(&buf, headlessResult{
		Frames:  3,
		Steps:   3,
		Heights: []float64{3, 2, 1},
		Energy:  []float64{0, 5, 10},
	})
	out := buf.String()
	assert.Contains(t, out, "FRAMES")
	assert.Contains(t, out, "sphere height")
	assert.Contains(t, out, "kinetic energy")
}

func TestBenchAgrees(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runBench(&buf, []int{200}, 1, nil))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "200"))
}

func TestBenchExtraColumn(t *testing.T) {
	var buf bytes.Buffer
	extra := physics.NewGridBroadphase(2 * physics.DefaultCellSize)
	require.NoError(t, runBench(&buf, []int{100, 300}, 1, extra))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[0]), "GRID"))
}

func TestConfigCommandWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playground.yaml")
	root := newRootCmd()
	root.SetArgs([]string{"config", path, "--log-level", "error"})
	root.SetOut(&bytes.Buffer{})
	require.NoError(t, root.Execute())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", loaded.Log.Level)
}
