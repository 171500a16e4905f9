// Package session wraps a minesweeper board with the lifecycle of one game:
// it refuses moves once the game is over, times the game and gives it an ID.
package session

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-mines/internal/minesweeper"
)

// ErrGameStopped is returned for moves made after a win or a loss.
var ErrGameStopped = errors.New("session: game is already stopped")

// Board is the part of *minesweeper.Board a game drives.
type Board interface {
	Open(row, col int) (minesweeper.OpenInfo, error)
	OpenNeighbors(row, col int) (minesweeper.OpenInfo, error)
	ToggleFlag(row, col int) (minesweeper.FlagResult, error)
	FieldInfo(row, col int) (minesweeper.FieldInfo, error)
	Height() int
	Width() int
	MineCount() int
	FlagCount() int
}

// State is the lifecycle stage of a game.
type State uint8

const (
	NotStarted State = iota
	Running
	Stopped
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Level is one of the classic board presets.
type Level uint8

const (
	Beginner Level = iota
	Intermediate
	Expert
)

// Size returns the board height, width and mine count of the level.
func (l Level) Size() (height, width, mines int) {
	switch l {
	case Intermediate:
		return 16, 16, 25
	case Expert:
		return 16, 30, 99
	default:
		return 10, 10, 10
	}
}

// String returns the lowercase preset name of the level.
func (l Level) String() string {
	switch l {
	case Intermediate:
		return "intermediate"
	case Expert:
		return "expert"
	default:
		return "beginner"
	}
}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces time.Now as the game's time source.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// WithLogger sets the logger used for start and stop events.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Game is a single minesweeper game. Not safe for concurrent use.
type Game struct {
	id    uuid.UUID
	board Board
	state State
	won   bool

	startedAt time.Time
	stoppedAt time.Time

	now    func() time.Time
	logger *log.Logger
}

// New wraps an existing board.
func New(board Board, opts ...Option) *Game {
	g := &Game{
		id:     uuid.New(),
		board:  board,
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewLevel starts a game on a randomly mined board of the given level.
func NewLevel(level Level, rng *rand.Rand, opts ...Option) (*Game, error) {
	h, w, m := level.Size()
	return NewCustom(h, w, m, rng, opts...)
}

// NewCustom starts a game on a randomly mined board of the given size.
func NewCustom(height, width, mines int, rng *rand.Rand, opts ...Option) (*Game, error) {
	board, err := minesweeper.New(height, width, mines, rng)
	if err != nil {
		return nil, err
	}
	return New(board, opts...), nil
}

// ID returns the unique identifier of this game.
func (g *Game) ID() uuid.UUID {
	return g.id
}

// State returns the lifecycle stage.
func (g *Game) State() State {
	return g.state
}

// Won reports whether the game stopped with a win.
func (g *Game) Won() bool {
	return g.state == Stopped && g.won
}

// Height returns the board height.
func (g *Game) Height() int {
	return g.board.Height()
}

// Width returns the board width.
func (g *Game) Width() int {
	return g.board.Width()
}

// MineCount returns the number of mines on the board.
func (g *Game) MineCount() int {
	return g.board.MineCount()
}

// MinesLeft is the mine count minus placed flags. It can go negative.
func (g *Game) MinesLeft() int {
	return g.board.MineCount() - g.board.FlagCount()
}

// Elapsed returns zero before the first move, the running time while the
// game is on, and the final time once it has stopped.
func (g *Game) Elapsed() time.Duration {
	switch g.state {
	case Running:
		return g.now().Sub(g.startedAt)
	case Stopped:
		return g.stoppedAt.Sub(g.startedAt)
	default:
		return 0
	}
}

// Open opens a field.
func (g *Game) Open(row, col int) (minesweeper.OpenInfo, error) {
	if g.state == Stopped {
		return minesweeper.OpenInfo{}, ErrGameStopped
	}
	info, err := g.board.Open(row, col)
	if err != nil {
		return info, err
	}
	g.startIfNeeded()
	g.stopIfFinished(info.Result)
	return info, nil
}

// OpenNeighbors chords around an opened numbered field.
func (g *Game) OpenNeighbors(row, col int) (minesweeper.OpenInfo, error) {
	if g.state == Stopped {
		return minesweeper.OpenInfo{}, ErrGameStopped
	}
	info, err := g.board.OpenNeighbors(row, col)
	if err != nil {
		return info, err
	}
	g.startIfNeeded()
	g.stopIfFinished(info.Result)
	return info, nil
}

// ToggleFlag flags or unflags a field.
func (g *Game) ToggleFlag(row, col int) (minesweeper.FlagResult, error) {
	if g.state == Stopped {
		return minesweeper.FlagNone, ErrGameStopped
	}
	result, err := g.board.ToggleFlag(row, col)
	if err != nil {
		return result, err
	}
	g.startIfNeeded()
	return result, nil
}

// FieldInfo returns the public view of a field. Allowed in any state.
func (g *Game) FieldInfo(row, col int) (minesweeper.FieldInfo, error) {
	return g.board.FieldInfo(row, col)
}

func (g *Game) startIfNeeded() {
	if g.state != NotStarted {
		return
	}
	g.state = Running
	g.startedAt = g.now()
	g.logger.Debug("game started", "id", g.id, "height", g.board.Height(), "width", g.board.Width())
}

func (g *Game) stopIfFinished(result minesweeper.OpenResult) {
	if result != minesweeper.OpenWinner && result != minesweeper.OpenBoom {
		return
	}
	g.state = Stopped
	g.won = result == minesweeper.OpenWinner
	g.stoppedAt = g.now()
	g.logger.Debug("game stopped", "id", g.id, "won", g.won, "elapsed", g.Elapsed())
}
