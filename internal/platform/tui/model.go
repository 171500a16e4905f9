package tui

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/minesweeper"
	"github.com/vovakirdan/tui-mines/internal/session"
	"github.com/vovakirdan/tui-mines/internal/storage"
)

// ResultSaver persists finished games.
// This lets the models save results without a hard dependency on *storage.Store.
type ResultSaver interface {
	SaveResult(r storage.Result) (int64, error)
}

// GameOptions configures a GameModel.
type GameOptions struct {
	PresetName string
	Preset     config.Preset
	Seed       int64 // 0 = random based on time
	Store      ResultSaver
	Logger     *log.Logger
	Width      int
	Height     int
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	wonStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	lostStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardFrame  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

// GameModel is the Bubble Tea model for one board.
type GameModel struct {
	opts     GameOptions
	rng      *rand.Rand
	game     *session.Game
	cursor   minesweeper.Coord
	revealed map[minesweeper.Coord]minesweeper.FieldType
	keys     GameKeyMap
	help     help.Model
	width    int
	height   int
	status   string

	quitting   bool
	backToMenu bool
	saved      bool // Whether the result of the current game has been saved
}

// NewGameModel creates a model with a freshly mined board.
func NewGameModel(opts GameOptions) (GameModel, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := GameModel{
		opts:   opts,
		rng:    rand.New(rand.NewSource(seed)),
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		width:  opts.Width,
		height: opts.Height,
	}
	if err := m.newGame(); err != nil {
		return GameModel{}, err
	}
	return m, nil
}

func (m *GameModel) newGame() error {
	p := m.opts.Preset
	game, err := session.NewCustom(p.Height, p.Width, p.Mines, m.rng, session.WithLogger(m.opts.Logger))
	if err != nil {
		return err
	}

	m.game = game
	m.cursor = minesweeper.C(p.Height/2, p.Width/2)
	m.revealed = map[minesweeper.Coord]minesweeper.FieldType{}
	m.status = ""
	m.saved = false
	return nil
}

// Init starts the clock.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(clockInterval)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m, tickCmd(clockInterval)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)

	case key.Matches(msg, m.keys.Open):
		m.open()
	case key.Matches(msg, m.keys.Chord):
		m.chord()
	case key.Matches(msg, m.keys.Flag):
		m.flag()

	case key.Matches(msg, m.keys.Restart):
		if err := m.newGame(); err != nil {
			m.status = err.Error()
		}
	}

	return m, nil
}

func (m *GameModel) moveCursor(dRow, dCol int) {
	next := minesweeper.C(m.cursor.Row+dRow, m.cursor.Col+dCol)
	if minesweeper.InBounds(m.game.Height(), m.game.Width(), next) {
		m.cursor = next
	}
}

// open opens the cell under the cursor, or chords when it is an opened number.
func (m *GameModel) open() {
	info, err := m.game.FieldInfo(m.cursor.Row, m.cursor.Col)
	if err == nil && info.State == minesweeper.Opened && info.Type.IsNumbered() {
		m.chord()
		return
	}
	result, err := m.game.Open(m.cursor.Row, m.cursor.Col)
	m.afterOpen(result, err)
}

func (m *GameModel) chord() {
	result, err := m.game.OpenNeighbors(m.cursor.Row, m.cursor.Col)
	m.afterOpen(result, err)
}

func (m *GameModel) flag() {
	if _, err := m.game.ToggleFlag(m.cursor.Row, m.cursor.Col); err != nil {
		m.setError(err)
	}
}

func (m *GameModel) afterOpen(info minesweeper.OpenInfo, err error) {
	if err != nil {
		m.setError(err)
		return
	}

	switch info.Result {
	case minesweeper.OpenIsFlagged:
		m.status = "Field is flagged"
	case minesweeper.OpenBoom, minesweeper.OpenWinner:
		m.revealed = info.Fields
		m.status = ""
		m.saveResult()
	default:
		m.status = ""
	}
}

func (m *GameModel) setError(err error) {
	if errors.Is(err, session.ErrGameStopped) {
		m.status = "Game over - press r for a new game"
		return
	}
	m.status = err.Error()
}

// saveResult records the finished game once.
func (m *GameModel) saveResult() {
	if m.saved || m.opts.Store == nil {
		return
	}
	m.saved = true

	p := m.opts.Preset
	_, err := m.opts.Store.SaveResult(storage.Result{
		GameID:  m.game.ID().String(),
		Preset:  m.opts.PresetName,
		Height:  p.Height,
		Width:   p.Width,
		Mines:   p.Mines,
		Won:     m.game.Won(),
		Elapsed: m.game.Elapsed(),
	})
	if err != nil {
		// Best-effort save, the game goes on regardless
		m.opts.Logger.Warn("could not save result", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("MINES - %s %s", m.opts.PresetName, m.opts.Preset)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Mines left: %-4d  Time: %s\n", m.game.MinesLeft(), formatElapsed(m.game.Elapsed()))

	b.WriteString(boardFrame.Render(StyledBoard(m.game, m.revealed, m.cursor)))
	b.WriteString("\n")

	switch {
	case m.game.State() == session.Stopped && m.game.Won():
		b.WriteString(wonStyle.Render(fmt.Sprintf("You win! Cleared in %s", formatElapsed(m.game.Elapsed()))))
	case m.game.State() == session.Stopped:
		b.WriteString(lostStyle.Render("Boom! You hit a mine."))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Game returns the running session.
func (m GameModel) Game() *session.Game {
	return m.game
}

// Cursor returns the cursor position.
func (m GameModel) Cursor() minesweeper.Coord {
	return m.cursor
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// formatElapsed renders a duration as m:ss.t
func formatElapsed(d time.Duration) string {
	d = d.Truncate(100 * time.Millisecond)
	minutes := int(d / time.Minute)
	seconds := d % time.Minute
	return fmt.Sprintf("%d:%04.1f", minutes, seconds.Seconds())
}

// Run starts the Bubble Tea program for a single game.
// Returns true if the user asked to go back to the menu.
func Run(opts GameOptions) (backToMenu bool, err error) {
	model, err := NewGameModel(opts)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
