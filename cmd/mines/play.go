package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/platform/tui"
)

var (
	flagHeight int
	flagWidth  int
	flagMines  int
)

var playCmd = &cobra.Command{
	Use:   "play [preset]",
	Short: "Play a board",
	Long: `Start playing the given preset, or the configured default.

Controls:
  Arrows/hjkl/wasd - Move cursor
  Space/Enter      - Open field (chord when on an opened number)
  F                - Toggle flag
  C                - Chord: open neighbors of a satisfied number
  R                - New board
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Any of --height, --width or --mines turns the board into a custom one;
missing values are taken from the preset.

Examples:
  mines play
  mines play intermediate
  mines play expert --seed 42
  mines play --height 8 --width 8 --mines 10`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addBoardFlags(playCmd)
}

// addBoardFlags registers the custom board overrides on cmd.
func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagHeight, "height", 0, "Board height (overrides preset)")
	cmd.Flags().IntVar(&flagWidth, "width", 0, "Board width (overrides preset)")
	cmd.Flags().IntVar(&flagMines, "mines", 0, "Number of mines (overrides preset)")
}

// resolveBoard picks the preset named in args, applying flag overrides.
func resolveBoard(cfg config.Config, args []string) (string, config.Preset) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	resolved, preset, err := cfg.Resolve(name, config.Overrides{
		Height: flagHeight,
		Width:  flagWidth,
		Mines:  flagMines,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'mines presets' to see available boards.")
		os.Exit(1)
	}
	return resolved, preset
}

// terminalSize returns the stdout size, falling back to 80x24.
func terminalSize() (width, height int) {
	width, height = 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func runPlay(_ *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()
	name, preset := resolveBoard(cfg, args)
	width, height := terminalSize()

	store := openStore(logger)
	backend := tui.NewBackend(store)

	_, runErr := tui.Run(tui.GameOptions{
		PresetName: name,
		Preset:     preset,
		Seed:       flagSeed,
		Store:      backend.Saver,
		Logger:     logger,
		Width:      width,
		Height:     height,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
