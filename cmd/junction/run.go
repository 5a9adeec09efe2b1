package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/junctionhq/junction"
	"github.com/junctionhq/junction/config"
)

// newLogger creates a JSON logger for CLI use.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// runCmd runs the configured signal cycle until interrupted.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the signal cycle",
	Long: `Run the configured signal cycle.

The command will:
  - Load configuration from the specified YAML file (or use defaults)
  - Create a controller with the configured lights and conflict rules
  - Cycle through the phase plan, logging every transition

The cycle runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  junction run
  junction run -c junction.yaml
  junction run --config /etc/junction/config.yaml --debug`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (optional; defaults apply)")
	runCmd.Flags().Bool("debug", false, "log at debug level, including every transition")
}

func runRun(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	logger := newLogger(debug)

	configFile, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Info("config loaded",
			"initial_lights", len(cfg.Initial),
			"rules", len(cfg.Rules),
			"phases", len(cfg.Cycle.Phases),
		)
	} else {
		// no config file: parse empty input so defaults apply
		parsed, err := config.Parse(nil)
		if err != nil {
			return fmt.Errorf("failed to build default config: %w", err)
		}
		cfg = parsed
		logger.Info("no config file given, using defaults")
	}

	opts, err := config.BuildOptions(cfg)
	if err != nil {
		return fmt.Errorf("failed to build controller options: %w", err)
	}

	// log every accepted transition; this is the CLI's visible output
	opts = append(opts,
		junction.WithLogger(logger),
		junction.WithObserver(junction.ObserverFunc(func(c junction.StateChange) {
			logger.Info("signal changed",
				"seq", c.Seq,
				"cause", string(c.Cause),
				"direction", string(c.Direction),
				"light", string(c.Light),
				"state", c.State.String(),
			)
		})),
	)

	ctl, err := junction.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}

	phases, err := config.BuildPhases(cfg)
	if err != nil {
		return fmt.Errorf("failed to build phase plan: %w", err)
	}

	cycler, err := junction.NewCycler(ctl, phases,
		cfg.Cycle.Green.Duration(), cfg.Cycle.Yellow.Duration(), logger)
	if err != nil {
		return fmt.Errorf("failed to create cycler: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting cycle",
		"green_dwell", cfg.Cycle.Green.Duration().String(),
		"yellow_dwell", cfg.Cycle.Yellow.Duration().String(),
	)

	if err := cycler.Run(ctx); err != nil {
		return fmt.Errorf("cycle error: %w", err)
	}

	logger.Info("shutdown complete", "transitions", len(ctl.History()))
	return nil
}
