package main

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"text/tabwriter"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"playground/internal/compute"
	"playground/internal/physics"
)

func newBenchCmd() *cobra.Command {
	var bodies int
	var iterations int
	var gpu bool
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "compare broadphase strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts := []int{100, 500, 1000, 2000, 5000}
			if bodies > 0 {
				counts = []int{bodies}
			}
			var extra physics.Broadphase
			if gpu {
				bp, release, err := compute.OpenBroadphase(logger)
				if err != nil {
					logger.Warn("gpu broadphase unavailable", zap.Error(err))
				} else {
					defer release()
					extra = bp
				}
			}
			return runBench(cmd.OutOrStdout(), counts, iterations, extra)
		},
	}
	cmd.Flags().IntVar(&bodies, "bodies", 0, "single body count to test (default: a range)")
	cmd.Flags().IntVar(&iterations, "iterations", 10, "timed passes per strategy")
	cmd.Flags().BoolVar(&gpu, "gpu", false, "also time the WebGPU compute broadphase")
	return cmd
}

// benchBodies scatters spheres and boxes in a cube whose size grows with the
// count to keep density reasonable.
func benchBodies(count int, seed int64) []*physics.Body {
	rng := rand.New(rand.NewSource(seed))
	world := physics.NewWorld()
	spawnSize := float32(50.0) + float32(count)/100.0

	for i := 0; i < count; i++ {
		var shape physics.Shape
		if i%2 == 0 {
			shape = physics.NewSphere(0.5 + rng.Float32()*0.5)
		} else {
			half := 0.25 + rng.Float32()*0.5
			shape = physics.NewBox(rl.Vector3{X: half, Y: half, Z: half})
		}
		b := physics.NewBody(1, shape, nil)
		b.Position = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		world.AddBody(b)
	}
	return world.Bodies()
}

// runBench times SAP against the grid and, when extra is set, a third
// strategy. All strategies must report the same pair count.
func runBench(out io.Writer, counts []int, iterations int, extra physics.Broadphase) error {
	if iterations < 1 {
		return fmt.Errorf("iterations must be at least 1")
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := "BODIES\tSAP\tSAP PAIRS\tGRID\tGRID PAIRS\tSPEEDUP"
	if extra != nil {
		header += "\t" + strings.ToUpper(extra.Name())
	}
	fmt.Fprintln(w, header)

	for _, count := range counts {
		bodies := benchBodies(count, 42)
		sap := physics.NewSAPBroadphase()
		grid := physics.NewGridBroadphase(physics.DefaultCellSize)

		sapTime, sapPairs := timePairs(sap, bodies, iterations)
		gridTime, gridPairs := timePairs(grid, bodies, iterations)
		if sapPairs != gridPairs {
			return fmt.Errorf("%d bodies: broadphases disagree (%d vs %d pairs)", count, sapPairs, gridPairs)
		}

		speedup := float64(gridTime) / float64(sapTime)
		fmt.Fprintf(w, "%d\t%v\t%d\t%v\t%d\t%.1fx",
			count, sapTime.Round(time.Microsecond), sapPairs,
			gridTime.Round(time.Microsecond), gridPairs, speedup)
		if extra != nil {
			extraTime, extraPairs := timePairs(extra, bodies, iterations)
			if extraPairs != sapPairs {
				return fmt.Errorf("%d bodies: %s disagrees with sap (%d vs %d pairs)",
					count, extra.Name(), extraPairs, sapPairs)
			}
			fmt.Fprintf(w, "\t%v", extraTime.Round(time.Microsecond))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func timePairs(bp physics.Broadphase, bodies []*physics.Body, iterations int) (time.Duration, int) {
	// Warm up
	pairs := bp.Pairs(bodies, nil)

	start := time.Now()
	for i := 0; i < iterations; i++ {
		pairs = bp.Pairs(bodies, pairs[:0])
	}
	return time.Since(start) / time.Duration(iterations), len(pairs)
}
