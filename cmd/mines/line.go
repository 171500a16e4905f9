package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mines/internal/minesweeper"
	"github.com/vovakirdan/tui-mines/internal/platform/tui"
	"github.com/vovakirdan/tui-mines/internal/session"
	"github.com/vovakirdan/tui-mines/internal/storage"
)

var lineCmd = &cobra.Command{
	Use:   "line [preset]",
	Short: "Play by typing commands",
	Long: `Play without the full-screen interface. Each line is one command;
rows and columns are zero-based.

Commands:
  o <row> <col>  - Open a field
  c <row> <col>  - Chord: open the neighbors of a satisfied number
  f <row> <col>  - Toggle a flag
  p              - Print the board
  q              - Quit

Examples:
  mines line
  mines line expert --seed 7
  printf 'o 0 0\np\n' | mines line --seed 1`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLine,
}

func init() {
	addBoardFlags(lineCmd)
}

func runLine(_ *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()
	name, preset := resolveBoard(cfg, args)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game, err := session.NewCustom(preset.Height, preset.Width, preset.Mines,
		rand.New(rand.NewSource(seed)), session.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	var saver tui.ResultSaver
	if store != nil {
		defer store.Close()
		saver = store
	}

	lp := &linePlayer{
		game:   game,
		preset: name,
		saver:  saver,
		logger: logger,
		out:    os.Stdout,
		prompt: term.IsTerminal(int(os.Stdin.Fd())),
	}
	fmt.Fprintf(lp.out, "%s %dx%d with %d mines\n", name, preset.Height, preset.Width, preset.Mines)
	if err := lp.play(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var errBadCommand = errors.New("unknown command, use o|c|f <row> <col>, p or q")

// linePlayer drives a game from text commands.
type linePlayer struct {
	game     *session.Game
	preset   string
	saver    tui.ResultSaver
	logger   *log.Logger
	out      io.Writer
	prompt   bool
	revealed map[minesweeper.Coord]minesweeper.FieldType
	saved    bool
}

// play reads commands until q, end of input, or a read error.
func (lp *linePlayer) play(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if lp.prompt {
			fmt.Fprint(lp.out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if quit := lp.exec(scanner.Text()); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the player quit.
func (lp *linePlayer) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "q", "quit":
		return true
	case "p", "print":
		lp.printBoard()
		return false
	}

	if len(fields) != 3 {
		fmt.Fprintln(lp.out, errBadCommand)
		return false
	}
	row, rowErr := strconv.Atoi(fields[1])
	col, colErr := strconv.Atoi(fields[2])
	if rowErr != nil || colErr != nil {
		fmt.Fprintln(lp.out, "row and column must be numbers")
		return false
	}

	switch fields[0] {
	case "o", "open":
		lp.afterOpen(lp.game.Open(row, col))
	case "c", "chord":
		lp.afterOpen(lp.game.OpenNeighbors(row, col))
	case "f", "flag":
		res, err := lp.game.ToggleFlag(row, col)
		if err != nil {
			lp.reportError(err)
			return false
		}
		fmt.Fprintln(lp.out, res)
		lp.printBoard()
	default:
		fmt.Fprintln(lp.out, errBadCommand)
	}
	return false
}

func (lp *linePlayer) afterOpen(info minesweeper.OpenInfo, err error) {
	if err != nil {
		lp.reportError(err)
		return
	}

	switch info.Result {
	case minesweeper.OpenIsFlagged:
		fmt.Fprintln(lp.out, "field is flagged")
	case minesweeper.OpenBoom:
		lp.revealed = info.Fields
		lp.printBoard()
		fmt.Fprintln(lp.out, "Boom! You hit a mine.")
		lp.saveResult()
	case minesweeper.OpenWinner:
		lp.revealed = info.Fields
		lp.printBoard()
		fmt.Fprintf(lp.out, "You win! Cleared in %s\n", lp.game.Elapsed().Round(time.Millisecond))
		lp.saveResult()
	default:
		lp.printBoard()
	}
}

func (lp *linePlayer) reportError(err error) {
	if errors.Is(err, session.ErrGameStopped) {
		fmt.Fprintln(lp.out, "game over, type q to quit")
		return
	}
	fmt.Fprintf(lp.out, "error: %v\n", err)
}

func (lp *linePlayer) printBoard() {
	fmt.Fprintf(lp.out, "mines left: %d\n", lp.game.MinesLeft())
	fmt.Fprint(lp.out, tui.PlainBoard(lp.game, lp.revealed))
}

// saveResult records the finished game once.
func (lp *linePlayer) saveResult() {
	if lp.saved || lp.saver == nil {
		return
	}
	lp.saved = true

	_, err := lp.saver.SaveResult(storage.Result{
		GameID:  lp.game.ID().String(),
		Preset:  lp.preset,
		Height:  lp.game.Height(),
		Width:   lp.game.Width(),
		Mines:   lp.game.MineCount(),
		Won:     lp.game.Won(),
		Elapsed: lp.game.Elapsed(),
	})
	if err != nil && lp.logger != nil {
		lp.logger.Warn("could not save result", "error", err)
	}
}
