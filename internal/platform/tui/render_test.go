package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-mines/internal/minesweeper"
)

var fixtureMines = []minesweeper.Coord{
	minesweeper.C(0, 3),
	minesweeper.C(3, 0),
	minesweeper.C(3, 3),
	minesweeper.C(2, 2),
	minesweeper.C(4, 1),
}

func newFixture(t *testing.T) *minesweeper.Board {
	t.Helper()
	b, err := minesweeper.NewWithMines(5, 6, fixtureMines)
	if err != nil {
		t.Fatalf("NewWithMines() error = %v", err)
	}
	return b
}

func TestPlainBoardAfterCascade(t *testing.T) {
	b := newFixture(t)
	if _, err := b.Open(4, 5); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	want := strings.Join([]string{
		"    0 1 2 3 4 5 ",
		"  0 # # # # 1 . ",
		"  1 # # # # 1 . ",
		"  2 # # # # 1 . ",
		"  3 # # # # 1 . ",
		"  4 # # # # 1 . ",
		"",
	}, "\n")

	if got := PlainBoard(b, nil); got != want {
		t.Errorf("PlainBoard() =\n%s\nwant\n%s", got, want)
	}
}

func TestPlainBoardRevealsAfterBoom(t *testing.T) {
	b := newFixture(t)
	if _, err := b.Open(4, 5); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := b.ToggleFlag(0, 0); err != nil {
		t.Fatalf("ToggleFlag() error = %v", err)
	}
	if _, err := b.ToggleFlag(2, 2); err != nil {
		t.Fatalf("ToggleFlag() error = %v", err)
	}
	info, err := b.Open(0, 3)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if info.Result != minesweeper.OpenBoom {
		t.Fatalf("Open() result = %v, want Boom", info.Result)
	}

	lines := strings.Split(PlainBoard(b, info.Fields), "\n")
	tests := []struct {
		row, col int
		want     string
	}{
		{0, 0, "x"}, // flagged, not a mine
		{2, 2, "F"}, // flagged mine
		{0, 3, "*"}, // the mine that went off
		{3, 0, "*"}, // never opened
		{1, 1, "1"},
		{0, 1, "."},
	}
	for _, tt := range tests {
		line := lines[tt.row+1]
		got := string(line[4+2*tt.col])
		if got != tt.want {
			t.Errorf("cell (%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestPlainBoardWideHeader(t *testing.T) {
	b, err := minesweeper.New(2, 12, 1, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	lines := strings.Split(PlainBoard(b, nil), "\n")
	if !strings.HasPrefix(lines[0], "    0                   1 ") {
		t.Errorf("tens header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "    0 1 2 3 4 5 6 7 8 9 0 1 ") {
		t.Errorf("units header = %q", lines[1])
	}
	if len(lines) != 5 {
		t.Errorf("got %d lines, want 5", len(lines))
	}
}

func TestStyledBoardShape(t *testing.T) {
	b := newFixture(t)
	out := StyledBoard(b, nil, minesweeper.C(0, 0))
	if rows := strings.Count(out, "\n") + 1; rows != 5 {
		t.Errorf("StyledBoard() has %d rows, want 5", rows)
	}
	if !strings.Contains(out, "#") {
		t.Error("StyledBoard() has no closed cells")
	}
}
