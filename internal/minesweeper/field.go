// Package minesweeper implements the Minesweeper board engine: cell
// representation, mine placement with first-click relocation, flood-fill
// opening, chording, flagging and win/loss detection.
// It has no I/O and no rendering; front ends talk to it through Board.
package minesweeper

import (
	"fmt"
	"strconv"
)

// Coord is a (row, col) position on the board.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// FieldKind discriminates the variants of FieldType.
type FieldKind uint8

const (
	KindEmpty FieldKind = iota
	KindNumbered
	KindMine
)

// FieldType describes what a cell is: empty, numbered 1-8 or a mine.
// The zero value is Empty.
type FieldType struct {
	Kind  FieldKind
	Value uint8 // Mine-neighbor count, only meaningful for KindNumbered
}

var (
	Empty = FieldType{Kind: KindEmpty}
	Mine  = FieldType{Kind: KindMine}
)

// Numbered returns a numbered field type. n is clamped to [1, 8].
func Numbered(n uint8) FieldType {
	n = max(1, min(n, 8))
	return FieldType{Kind: KindNumbered, Value: n}
}

// typeForValue maps a computed neighbor count to a field type.
func typeForValue(n int) FieldType {
	if n == 0 {
		return Empty
	}
	return Numbered(uint8(n))
}

func validValue(n int) bool {
	return n > 0 && n < 9
}

// IsEmpty reports whether the field has no neighboring mines.
func (t FieldType) IsEmpty() bool {
	return t.Kind == KindEmpty
}

// IsNumbered reports whether the field carries a mine count.
func (t FieldType) IsNumbered() bool {
	return t.Kind == KindNumbered
}

// IsMine reports whether the field is a mine.
func (t FieldType) IsMine() bool {
	return t.Kind == KindMine
}

// String returns the single-character representation used by text front ends.
func (t FieldType) String() string {
	switch t.Kind {
	case KindNumbered:
		return strconv.Itoa(int(t.Value))
	case KindMine:
		return "X"
	default:
		return " "
	}
}

// FieldState describes what the player has done to a cell.
type FieldState uint8

const (
	Closed FieldState = iota
	Opened
	Flagged
)

// String returns a human-readable name for the state.
func (s FieldState) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Opened:
		return "Opened"
	case Flagged:
		return "Flagged"
	default:
		return "Unknown"
	}
}

// FieldInfo is the caller-facing view of a cell.
// Type is Empty unless State is Opened.
type FieldInfo struct {
	State FieldState
	Type  FieldType
}
