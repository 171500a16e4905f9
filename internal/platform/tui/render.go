package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mines/internal/minesweeper"
)

// BoardSource is the read side of a game that the renderers need.
type BoardSource interface {
	Height() int
	Width() int
	FieldInfo(row, col int) (minesweeper.FieldInfo, error)
}

type cellKind int

const (
	cellClosed cellKind = iota
	cellFlag
	cellWrongFlag
	cellEmpty
	cellNumber
	cellMine
	cellHiddenMine // revealed after the game, never opened
)

var cellGlyphs = map[cellKind]string{
	cellClosed:     "#",
	cellFlag:       "F",
	cellWrongFlag:  "x",
	cellEmpty:      ".",
	cellMine:       "*",
	cellHiddenMine: "*",
}

// numberStyles follows the classic minesweeper palette.
var numberStyles = [9]lipgloss.Style{
	lipgloss.NewStyle(),
	lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var kindStyles = map[cellKind]lipgloss.Style{
	cellClosed:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	cellFlag:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	cellWrongFlag:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	cellEmpty:      lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	cellMine:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Bold(true),
	cellHiddenMine: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

var cursorStyle = lipgloss.NewStyle().Reverse(true)

// classify decides how a cell is drawn. revealed holds the field types
// handed out when the game stopped; it is empty while the game runs.
func classify(info minesweeper.FieldInfo, revealed minesweeper.FieldType, isRevealed bool) (cellKind, uint8) {
	switch info.State {
	case minesweeper.Opened:
		return kindOf(info.Type)
	case minesweeper.Flagged:
		if isRevealed && !revealed.IsMine() {
			return cellWrongFlag, 0
		}
		return cellFlag, 0
	}

	if !isRevealed {
		return cellClosed, 0
	}
	if revealed.IsMine() {
		return cellHiddenMine, 0
	}
	return kindOf(revealed)
}

func kindOf(t minesweeper.FieldType) (cellKind, uint8) {
	switch t.Kind {
	case minesweeper.KindMine:
		return cellMine, 0
	case minesweeper.KindNumbered:
		return cellNumber, t.Value
	default:
		return cellEmpty, 0
	}
}

func glyph(kind cellKind, value uint8) string {
	if kind == cellNumber {
		return fmt.Sprintf("%d", value)
	}
	return cellGlyphs[kind]
}

func cellAt(src BoardSource, revealed map[minesweeper.Coord]minesweeper.FieldType, row, col int) (cellKind, uint8) {
	info, err := src.FieldInfo(row, col)
	if err != nil {
		return cellClosed, 0
	}
	t, ok := revealed[minesweeper.C(row, col)]
	return classify(info, t, ok)
}

// PlainBoard renders the board as uncolored text with row and column
// indices, for line mode and logs.
func PlainBoard(src BoardSource, revealed map[minesweeper.Coord]minesweeper.FieldType) string {
	var b strings.Builder
	h, w := src.Height(), src.Width()

	if w > 10 {
		b.WriteString("    ")
		for c := range w {
			if c%10 == 0 {
				fmt.Fprintf(&b, "%d ", c/10)
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("    ")
	for c := range w {
		fmt.Fprintf(&b, "%d ", c%10)
	}
	b.WriteString("\n")

	for r := range h {
		fmt.Fprintf(&b, "%3d ", r)
		for c := range w {
			kind, value := cellAt(src, revealed, r, c)
			b.WriteString(glyph(kind, value))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// StyledBoard renders the board with lipgloss colors and the cursor highlighted.
func StyledBoard(src BoardSource, revealed map[minesweeper.Coord]minesweeper.FieldType, cursor minesweeper.Coord) string {
	var b strings.Builder
	h, w := src.Height(), src.Width()
	b.Grow(h * w * 12)

	for r := range h {
		if r > 0 {
			b.WriteRune('\n')
		}
		for c := range w {
			kind, value := cellAt(src, revealed, r, c)

			style := kindStyles[kind]
			if kind == cellNumber {
				style = numberStyles[value]
			}
			cell := " " + glyph(kind, value) + " "
			if cursor == minesweeper.C(r, c) {
				cell = cursorStyle.Inherit(style).Render(cell)
			} else {
				cell = style.Render(cell)
			}
			b.WriteString(cell)
		}
	}
	return b.String()
}
