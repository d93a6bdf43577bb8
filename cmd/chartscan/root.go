// Package main provides the entry point for the chartscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for chartscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chartscan",
		Short: "Classify chart screenshot pixels into color categories",
		Long: `chartscan inspects trading chart screenshots for colored indicator markers.

It classifies every pixel with hand-tuned threshold rules (purple, blue,
yellow, orange, red, green), aggregates matches into an exact-color
histogram, and reports the most frequent matching colors with pixel counts
and percentages of the image area.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewColorsCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
