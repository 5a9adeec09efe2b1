// Package main is the entry point for the junction CLI.
//
// The controller can be used either as a library (SDK) or as a standalone
// binary with YAML configuration. This CLI provides the standalone binary
// approach.
//
// Usage:
//
//	junction run -c config.yaml      # Run the signal cycle
//	junction validate -c config.yaml # Validate configuration
//	junction version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "junction",
	Short: "A traffic-signal controller for a four-way intersection",
	Long: `Junction drives a conflict-checked traffic-signal controller.

It cycles a four-way intersection through a configurable phase plan,
logging every accepted transition, and refuses any step that would put
two conflicting directions on GREEN at the same time.

Quick start:
  1. Create a config file (junction.yaml) — or rely on the defaults
  2. Run: junction run -c junction.yaml
  3. Stop with Ctrl+C

Example config:
  cycle:
    green: 5s
    yellow: 2s
    phases:
      - [north, south]
      - [east, west]`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this junction binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("junction %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
