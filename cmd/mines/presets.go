package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List configured boards",
	Long: `Shows the presets from the active configuration. The default preset is
marked with an asterisk.

Presets are read from --config, ~/.mines/mines.yaml or ./configs/mines.yaml,
falling back to the built-in beginner, intermediate and expert boards.`,
	Run: runPresets,
}

func runPresets(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	names := cfg.Names()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, name := range names {
		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}

	fmt.Println("Available boards:")
	fmt.Println()
	fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxNameLen, "Name", "Height", "Width", "Mines")
	fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxNameLen, "----", "------", "-----", "-----")

	for _, name := range names {
		p := cfg.Presets[name]
		marker := " "
		if name == cfg.Default {
			marker = "*"
		}
		fmt.Printf("%s %-*s  %-6d  %-5d  %d\n", marker, maxNameLen, name, p.Height, p.Width, p.Mines)
	}

	fmt.Println()
	fmt.Println("Run 'mines play <name>' to play a board.")
}
