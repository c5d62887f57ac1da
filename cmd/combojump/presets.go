package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/combo-jump/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List difficulty presets",
	Long:  `Shows the difficulty presets accepted by --difficulty.`,
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func runPresets(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	presets := config.Presets()

	fmt.Fprintln(out, "Difficulty presets:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxLen := len("Name")
	for _, p := range presets {
		maxLen = max(maxLen, len(p.Preset))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxLen, "Name", "Description")
	fmt.Fprintf(out, "  %-*s  %s\n", maxLen, "----", "-----------")
	for _, p := range presets {
		fmt.Fprintf(out, "  %-*s  %s\n", maxLen, p.Preset, p.Description)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'combojump play --difficulty <name>' to use one.")
	return nil
}
