// Rokuremote-ctl is a command-line remote for Roku devices.
//
// It provides device discovery, direct control commands (key presses,
// text input, channel launching), and a full-screen interactive remote.
// Running without arguments launches the interactive remote.
//
// Usage:
//
//	rokuremote-ctl [command] [flags]
//
// See 'rokuremote-ctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/rokuremote/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rokuremote-ctl",
	Short: "Roku Remote Control Utility",
	Long: `A command-line remote for Roku devices.

Provides device discovery, direct control commands, and a full-screen
interactive remote driven from the keyboard.

If no command is specified, the interactive remote launches automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the interactive remote
		return runRemote(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rokuremote-ctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
