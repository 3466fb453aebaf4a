package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"playground/internal/config"
	"playground/internal/game"
	"playground/internal/logging"
)

var (
	configFile string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "playground",
		Short:             "rigid-body physics playground",
		SilenceUsage:      true,
		RunE:              runWindow,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the playground window",
		RunE:  runWindow,
	}

	rootCmd.AddCommand(runCmd, newHeadlessCmd(), newBenchCmd(), newConfigCmd())
	return rootCmd
}

// setup loads the config and builds the logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	l, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger = l
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	logger.Info("starting playground", zap.String("config", configFile))
	return game.New(cfg, logger).Run()
}
