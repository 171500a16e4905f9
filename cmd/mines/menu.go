package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mines/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a preset picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a board.
Esc or b inside a game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start board
  Tab          - Best times
  Q            - Quit

Examples:
  mines menu
  mines menu --config ./boards.yaml
  mines menu --db ./results.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger()
	cfg := loadConfig()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	backend := tui.NewBackend(store)

	width, height := terminalSize()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, backend.Times, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update size with any changes
		if menuResult.Width > 0 && menuResult.Height > 0 {
			width, height = menuResult.Width, menuResult.Height
		}

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(cfg.Names(), backend.Results, width, height)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return // User quit from scoreboard
		}

		if menuResult.Preset == "" {
			return
		}

		backToMenu, runErr := tui.Run(tui.GameOptions{
			PresetName: menuResult.Preset,
			Preset:     cfg.Presets[menuResult.Preset],
			Seed:       flagSeed,
			Store:      backend.Saver,
			Logger:     logger,
			Width:      width,
			Height:     height,
		})
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			return
		}
		if !backToMenu {
			return
		}
	}
}
