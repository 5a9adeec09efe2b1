package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/junctionhq/junction/config"
)

// validateCmd validates a config file without running the cycle.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a junction configuration file without running the cycle.

This command parses the YAML and validates all fields: directions, lights,
conflict rule pairs, phase plans, and dwell times. It's useful for CI/CD
pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  junction validate -c config.yaml
  junction validate --config /etc/junction/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	phases := len(cfg.Cycle.Phases)
	if phases == 0 {
		phases = 2 // standard two-phase plan applies
	}
	rules := len(cfg.Rules)
	if rules == 0 {
		rules = 4 // standard 4-way conflict set applies
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Green dwell:  %s\n", cfg.Cycle.Green.Duration())
	fmt.Printf("  Yellow dwell: %s\n", cfg.Cycle.Yellow.Duration())
	fmt.Printf("  Phases:       %d\n", phases)
	fmt.Printf("  Rules:        %d pair(s)\n", rules)

	return nil
}
