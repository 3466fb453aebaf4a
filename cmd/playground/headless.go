package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"playground/internal/compute"
	"playground/internal/config"
	"playground/internal/sim"
)

type headlessOptions struct {
	Frames       int
	FrameTime    float64
	Seed         int64
	KickAt       int // frame index, negative disables
	ExtraBoxes   int
	ExtraSpheres int
}

type headlessResult struct {
	Frames      int
	Steps       uint64
	Collisions  int
	Impacts     int
	MaxSubSteps int
	// sampled once per frame for the first sphere
	Heights []float64
	Energy  []float64
}

func newHeadlessCmd() *cobra.Command {
	opts := headlessOptions{}
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "run the simulation without a window and report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			res, err := runHeadless(ctx, cfg, logger, opts)
			if err != nil {
				return err
			}
			printHeadless(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Frames, "frames", 600, "number of frames to simulate")
	cmd.Flags().Float64Var(&opts.FrameTime, "frame-time", 1.0/60.0, "seconds between frames")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "random seed for spawns")
	cmd.Flags().IntVar(&opts.KickAt, "kick-at", -1, "frame on which to kick the sphere")
	cmd.Flags().IntVar(&opts.ExtraBoxes, "boxes", 0, "random boxes to drop after the startup batch")
	cmd.Flags().IntVar(&opts.ExtraSpheres, "spheres", 0, "random spheres to drop after the startup batch")
	return cmd
}

// runHeadless drives the same frame loop as the window with a manual clock.
// Cancellation is checked between frames.
func runHeadless(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts headlessOptions) (headlessResult, error) {
	if opts.Frames < 0 || opts.FrameTime < 0 {
		return headlessResult{}, fmt.Errorf("frames and frame time must not be negative")
	}

	clock := &sim.ManualClock{}
	simOpts := []sim.Option{
		sim.WithClock(clock),
		sim.WithSeed(opts.Seed),
		sim.WithLogger(logger.Named("sim")),
	}
	if cfg.Physics.Broadphase == "gpu" {
		bp, release, err := compute.OpenBroadphase(logger.Named("compute"))
		if err != nil {
			logger.Warn("gpu broadphase unavailable", zap.Error(err))
		} else {
			defer release()
			simOpts = append(simOpts, sim.WithBroadphase(bp))
		}
	}
	s, err := sim.New(cfg, simOpts...)
	if err != nil {
		return headlessResult{}, err
	}
	s.PopulateInitial()
	for i := 0; i < opts.ExtraBoxes; i++ {
		s.Dispatch(sim.CommandSpawnBox)
	}
	for i := 0; i < opts.ExtraSpheres; i++ {
		s.Dispatch(sim.CommandSpawnSphere)
	}

	res := headlessResult{
		Heights: make([]float64, 0, opts.Frames),
		Energy:  make([]float64, 0, opts.Frames),
	}
	sphere, _ := s.Registry.FirstSphere()

	for frame := 0; frame < opts.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			logger.Info("headless run cancelled", zap.Int("frame", frame))
			break
		}
		if frame == opts.KickAt {
			s.Dispatch(sim.CommandKick)
		}

		clock.Advance(opts.FrameTime)
		stats := s.Frame()

		res.Frames++
		res.Collisions += stats.Collisions
		res.Impacts += stats.Impacts
		if stats.SubSteps > res.MaxSubSteps {
			res.MaxSubSteps = stats.SubSteps
		}
		res.Heights = append(res.Heights, float64(sphere.Body.Position.Y))
		res.Energy = append(res.Energy, float64(sphere.Body.KineticEnergy()))
	}
	res.Steps = s.World.StepCount()

	logger.Info("headless run finished",
		zap.Int("frames", res.Frames),
		zap.Uint64("steps", res.Steps),
		zap.Int("impacts", res.Impacts))
	return res, nil
}

func printHeadless(out io.Writer, res headlessResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAMES\tSTEPS\tMAX SUB-STEPS\tCOLLISIONS\tIMPACTS")
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\n", res.Frames, res.Steps, res.MaxSubSteps, res.Collisions, res.Impacts)
	w.Flush()

	if len(res.Heights) < 2 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(res.Heights,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("sphere height (m)")))
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(res.Energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("sphere kinetic energy (J)")))
}
