package minesweeper

import (
	"errors"
	"math/rand"
	"testing"
)

// fixtureMines builds this 5x6 board (M = mine, E = empty):
//
//	E E 1 M 1 E
//	E 1 2 2 1 E
//	1 2 M 2 1 E
//	M 3 3 M 1 E
//	2 M 2 1 1 E
var fixtureMines = []Coord{C(0, 3), C(3, 0), C(3, 3), C(2, 2), C(4, 1)}

func newFixture(t *testing.T) *Board {
	t.Helper()
	b, err := NewWithMines(5, 6, fixtureMines)
	if err != nil {
		t.Fatalf("NewWithMines() error = %v", err)
	}
	return b
}

func mustOpen(t *testing.T, b *Board, row, col int) OpenInfo {
	t.Helper()
	info, err := b.Open(row, col)
	if err != nil {
		t.Fatalf("Open(%d, %d) error = %v", row, col, err)
	}
	return info
}

func mustChord(t *testing.T, b *Board, row, col int) OpenInfo {
	t.Helper()
	info, err := b.OpenNeighbors(row, col)
	if err != nil {
		t.Fatalf("OpenNeighbors(%d, %d) error = %v", row, col, err)
	}
	return info
}

func mustFlag(t *testing.T, b *Board, row, col int) {
	t.Helper()
	result, err := b.ToggleFlag(row, col)
	if err != nil {
		t.Fatalf("ToggleFlag(%d, %d) error = %v", row, col, err)
	}
	if result != FlagPlaced {
		t.Fatalf("ToggleFlag(%d, %d) = %v, expected Flagged", row, col, result)
	}
}

func assertFields(t *testing.T, got map[Coord]FieldType, expected map[Coord]FieldType) {
	t.Helper()
	if len(got) != len(expected) {
		t.Errorf("got %d fields %v, expected %d %v", len(got), got, len(expected), expected)
	}
	for c, want := range expected {
		have, ok := got[c]
		if !ok {
			t.Errorf("missing field %v", c)
			continue
		}
		if have != want {
			t.Errorf("field %v = %v, expected %v", c, have, want)
		}
	}
}

func TestFixtureLayout(t *testing.T) {
	b := newFixture(t)
	layout := [5]string{
		"  1X1 ",
		" 1221 ",
		"12X21 ",
		"X33X1 ",
		"2X211 ",
	}
	for r, row := range layout {
		for c, ch := range row {
			if got := b.cell(C(r, c)).Type().String(); got != string(ch) {
				t.Errorf("cell (%d,%d) = %q, expected %q", r, c, got, string(ch))
			}
		}
	}
}

func TestNewInvalidSizes(t *testing.T) {
	tests := []struct {
		name          string
		height, width int
		mines         int
		expected      error
	}{
		{"zero height", 0, 5, 1, ErrInvalidDimensions},
		{"negative width", 5, -1, 1, ErrInvalidDimensions},
		{"too many fields", MaxFields, 2, 1, ErrTooManyFields},
		{"no mines", 5, 5, 0, ErrTooFewMines},
		{"board full of mines", 5, 5, 25, ErrTooManyMines},
		{"more mines than fields", 2, 2, 10, ErrTooManyMines},
		{"single cell", 1, 1, 1, ErrTooManyMines},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.height, tc.width, tc.mines, rand.New(rand.NewSource(1)))
			if !errors.Is(err, tc.expected) {
				t.Errorf("New() error = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestNewWithMinesInvalid(t *testing.T) {
	if _, err := NewWithMines(3, 3, []Coord{C(3, 0)}); !errors.Is(err, ErrInvalidMineLocations) {
		t.Errorf("out of bounds mine error = %v, expected ErrInvalidMineLocations", err)
	}
	if _, err := NewWithMines(3, 3, nil); !errors.Is(err, ErrTooFewMines) {
		t.Errorf("no mines error = %v, expected ErrTooFewMines", err)
	}

	b, err := NewWithMines(3, 3, []Coord{C(1, 1), C(1, 1)})
	if err != nil {
		t.Fatalf("duplicate mines error = %v", err)
	}
	if b.MineCount() != 1 {
		t.Errorf("MineCount() = %d, expected 1", b.MineCount())
	}
}

func TestGenerateMineLocations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for range 50 {
		mines, err := GenerateMineLocations(4, 7, 27, rng)
		if err != nil {
			t.Fatal(err)
		}
		if mines.Size() != 27 {
			t.Fatalf("Size() = %d, expected 27", mines.Size())
		}
		mines.Each(func(c Coord) {
			if !InBounds(4, 7, c) {
				t.Errorf("mine %v out of bounds", c)
			}
		})
	}
}

func TestNewPlacesRequestedMines(t *testing.T) {
	b, err := New(16, 30, 99, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	if b.MineCount() != 99 {
		t.Errorf("MineCount() = %d, expected 99", b.MineCount())
	}
	if b.Height() != 16 || b.Width() != 30 {
		t.Errorf("size = %dx%d, expected 16x30", b.Height(), b.Width())
	}
}

func TestInvalidIndex(t *testing.T) {
	b := newFixture(t)

	if _, err := b.Open(5, 0); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("Open error = %v, expected ErrInvalidIndex", err)
	}
	if _, err := b.OpenNeighbors(0, 6); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("OpenNeighbors error = %v, expected ErrInvalidIndex", err)
	}
	if result, err := b.ToggleFlag(-1, 0); !errors.Is(err, ErrInvalidIndex) || result != FlagNone {
		t.Errorf("ToggleFlag = %v, %v, expected None, ErrInvalidIndex", result, err)
	}
	if _, err := b.FieldInfo(0, -1); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("FieldInfo error = %v, expected ErrInvalidIndex", err)
	}
}

func TestOpenCascade(t *testing.T) {
	b := newFixture(t)

	info := mustOpen(t, b, 1, 0)
	if info.Result != OpenOK {
		t.Fatalf("Result = %v, expected Ok", info.Result)
	}
	assertFields(t, info.Fields, map[Coord]FieldType{
		C(0, 0): Empty,
		C(0, 1): Empty,
		C(0, 2): Numbered(1),
		C(1, 0): Empty,
		C(1, 1): Numbered(1),
		C(1, 2): Numbered(2),
		C(2, 0): Numbered(1),
		C(2, 1): Numbered(2),
	})
	if b.OpenedCount() != 8 {
		t.Errorf("OpenedCount() = %d, expected 8", b.OpenedCount())
	}
}

func TestOpenCascadeStopsAtFlag(t *testing.T) {
	b := newFixture(t)
	mustFlag(t, b, 0, 1)

	info := mustOpen(t, b, 1, 0)
	assertFields(t, info.Fields, map[Coord]FieldType{
		C(0, 0): Empty,
		C(1, 0): Empty,
		C(1, 1): Numbered(1),
		C(2, 0): Numbered(1),
		C(2, 1): Numbered(2),
	})

	fi, err := b.FieldInfo(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if fi.State != Flagged {
		t.Errorf("flagged field state = %v, expected Flagged", fi.State)
	}
}

func TestOpenFlagged(t *testing.T) {
	b := newFixture(t)
	mustFlag(t, b, 0, 3)

	info := mustOpen(t, b, 0, 3)
	if info.Result != OpenIsFlagged {
		t.Errorf("Result = %v, expected IsFlagged", info.Result)
	}
	if len(info.Fields) != 0 {
		t.Errorf("Fields = %v, expected none", info.Fields)
	}
}

func TestOpenAlreadyOpened(t *testing.T) {
	b := newFixture(t)
	mustOpen(t, b, 1, 0)

	info := mustOpen(t, b, 0, 0)
	if info.Result != OpenOK || len(info.Fields) != 0 {
		t.Errorf("reopen = %+v, expected empty Ok", info)
	}
	if b.OpenedCount() != 8 {
		t.Errorf("OpenedCount() = %d, expected 8", b.OpenedCount())
	}
}

func TestFlagOpenedField(t *testing.T) {
	b := newFixture(t)
	mustOpen(t, b, 1, 1)

	result, err := b.ToggleFlag(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if result != FlagAlreadyOpened {
		t.Errorf("ToggleFlag() = %v, expected AlreadyOpened", result)
	}
	if b.FlagCount() != 0 {
		t.Errorf("FlagCount() = %d, expected 0", b.FlagCount())
	}
}

func TestFlagCount(t *testing.T) {
	b := newFixture(t)
	mustFlag(t, b, 0, 0)
	mustFlag(t, b, 4, 5)
	if b.FlagCount() != 2 {
		t.Errorf("FlagCount() = %d, expected 2", b.FlagCount())
	}

	if result, _ := b.ToggleFlag(0, 0); result != FlagRemoved {
		t.Errorf("ToggleFlag() = %v, expected FlagRemoved", result)
	}
	if b.FlagCount() != 1 {
		t.Errorf("FlagCount() = %d, expected 1", b.FlagCount())
	}
}

func TestChordCascade(t *testing.T) {
	b := newFixture(t)
	mustFlag(t, b, 0, 3)
	mustOpen(t, b, 1, 4)

	info := mustChord(t, b, 1, 4)
	if info.Result != OpenOK {
		t.Fatalf("Result = %v, expected Ok", info.Result)
	}
	assertFields(t, info.Fields, map[Coord]FieldType{
		C(0, 4): Numbered(1),
		C(0, 5): Empty,
		C(1, 3): Numbered(2),
		C(1, 5): Empty,
		C(2, 3): Numbered(2),
		C(2, 4): Numbered(1),
		C(2, 5): Empty,
		C(3, 4): Numbered(1),
		C(3, 5): Empty,
		C(4, 4): Numbered(1),
		C(4, 5): Empty,
	})
}

func TestChordWrongFlagBooms(t *testing.T) {
	b := newFixture(t)
	mustFlag(t, b, 1, 3)
	mustOpen(t, b, 1, 4)

	info := mustChord(t, b, 1, 4)
	if info.Result != OpenBoom {
		t.Fatalf("Result = %v, expected Boom", info.Result)
	}
	if len(info.Fields) != 30 {
		t.Errorf("Boom revealed %d fields, expected 30", len(info.Fields))
	}
	if info.Fields[C(0, 3)] != Mine {
		t.Errorf("field (0,3) = %v, expected mine", info.Fields[C(0, 3)])
	}
}

func TestChordAroundThree(t *testing.T) {
	b := newFixture(t)
	mustFlag(t, b, 2, 2)
	mustFlag(t, b, 3, 0)
	mustFlag(t, b, 4, 1)
	mustOpen(t, b, 3, 1)

	info := mustChord(t, b, 3, 1)
	if info.Result != OpenOK {
		t.Fatalf("Result = %v, expected Ok", info.Result)
	}
	assertFields(t, info.Fields, map[Coord]FieldType{
		C(2, 0): Numbered(1),
		C(2, 1): Numbered(2),
		C(3, 2): Numbered(3),
		C(4, 0): Numbered(2),
		C(4, 2): Numbered(2),
	})
}

func TestChordAroundThreeWrongFlags(t *testing.T) {
	b := newFixture(t)
	mustFlag(t, b, 2, 1)
	mustFlag(t, b, 3, 2)
	mustFlag(t, b, 4, 2)
	mustOpen(t, b, 3, 1)

	info := mustChord(t, b, 3, 1)
	if info.Result != OpenBoom {
		t.Errorf("Result = %v, expected Boom", info.Result)
	}
}

func TestChordFlagCountMismatch(t *testing.T) {
	b := newFixture(t)
	mustFlag(t, b, 2, 2)
	mustFlag(t, b, 3, 0)
	mustOpen(t, b, 3, 1)

	info := mustChord(t, b, 3, 1)
	if info.Result != OpenOK || len(info.Fields) != 0 {
		t.Errorf("chord = %+v, expected empty Ok", info)
	}
	if b.OpenedCount() != 1 {
		t.Errorf("OpenedCount() = %d, expected 1", b.OpenedCount())
	}
}

func TestChordNoOps(t *testing.T) {
	b := newFixture(t)

	// closed numbered field
	if info := mustChord(t, b, 1, 1); info.Result != OpenOK || len(info.Fields) != 0 {
		t.Errorf("chord on closed = %+v, expected empty Ok", info)
	}

	// opened empty field
	mustOpen(t, b, 0, 5)
	if info := mustChord(t, b, 0, 5); info.Result != OpenOK || len(info.Fields) != 0 {
		t.Errorf("chord on empty = %+v, expected empty Ok", info)
	}
}

func TestWin(t *testing.T) {
	b := newFixture(t)
	mines := make(map[Coord]bool)
	for _, m := range fixtureMines {
		mines[m] = true
	}

	for r := range 5 {
		for c := range 5 {
			if mines[C(r, c)] {
				continue
			}
			info := mustOpen(t, b, r, c)
			if info.Result != OpenOK {
				t.Fatalf("Open(%d, %d) = %v, expected Ok", r, c, info.Result)
			}
		}
	}

	info := mustOpen(t, b, 0, 5)
	if info.Result != OpenWinner {
		t.Fatalf("Result = %v, expected Winner", info.Result)
	}
	for _, m := range fixtureMines {
		if info.Fields[m] != Mine {
			t.Errorf("winner fields missing mine %v", m)
		}
	}
	for r := range 5 {
		if _, ok := info.Fields[C(r, 5)]; !ok {
			t.Errorf("winner fields missing (%d,5)", r)
		}
	}
	if b.OpenedCount() != 25 {
		t.Errorf("OpenedCount() = %d, expected 25", b.OpenedCount())
	}
}

func TestOpenAfterWinStaysWinner(t *testing.T) {
	b, err := NewWithMines(2, 2, []Coord{C(0, 0)})
	if err != nil {
		t.Fatal(err)
	}
	mustOpen(t, b, 0, 1)
	mustOpen(t, b, 1, 0)
	if info := mustOpen(t, b, 1, 1); info.Result != OpenWinner {
		t.Fatalf("Result = %v, expected Winner", info.Result)
	}
	if info := mustOpen(t, b, 1, 1); info.Result != OpenWinner {
		t.Errorf("reopen after win = %v, expected Winner", info.Result)
	}
}

func TestFirstClickMovesMine(t *testing.T) {
	b := newFixture(t)

	info := mustOpen(t, b, 0, 3)
	if info.Result != OpenOK {
		t.Fatalf("Result = %v, expected Ok", info.Result)
	}
	if info.Fields[C(0, 3)] != Numbered(1) {
		t.Errorf("field (0,3) = %v, expected 1", info.Fields[C(0, 3)])
	}
	if !b.cell(C(0, 2)).Type().IsMine() {
		t.Errorf("mine was not moved to (0,2)")
	}
	if b.MineCount() != 5 {
		t.Errorf("MineCount() = %d, expected 5", b.MineCount())
	}

	// numbers around both positions are recomputed
	expected := map[Coord]FieldType{
		C(0, 1): Numbered(1),
		C(0, 4): Empty,
		C(1, 1): Numbered(2),
		C(1, 2): Numbered(2),
		C(1, 3): Numbered(2),
		C(1, 4): Empty,
	}
	for c, want := range expected {
		if got := b.cell(c).Type(); got != want {
			t.Errorf("field %v = %v, expected %v", c, got, want)
		}
	}
}

func TestFirstClickThenBoom(t *testing.T) {
	b := newFixture(t)

	info := mustOpen(t, b, 3, 0)
	if info.Result != OpenOK {
		t.Fatalf("Result = %v, expected Ok", info.Result)
	}
	if info.Fields[C(3, 0)] != Numbered(2) {
		t.Errorf("field (3,0) = %v, expected 2", info.Fields[C(3, 0)])
	}
	if !b.cell(C(2, 0)).Type().IsMine() {
		t.Errorf("mine was not moved to (2,0)")
	}

	info = mustOpen(t, b, 4, 1)
	if info.Result != OpenBoom {
		t.Fatalf("Result = %v, expected Boom", info.Result)
	}
	if len(info.Fields) != 30 {
		t.Errorf("Boom revealed %d fields, expected 30", len(info.Fields))
	}
}

func TestFirstClickNeverBooms(t *testing.T) {
	for seed := range int64(200) {
		rng := rand.New(rand.NewSource(seed))
		b, err := New(8, 8, 20, rng)
		if err != nil {
			t.Fatal(err)
		}
		r, c := rng.Intn(8), rng.Intn(8)

		info := mustOpen(t, b, r, c)
		if info.Result == OpenBoom {
			t.Fatalf("seed %d: first open of (%d,%d) exploded", seed, r, c)
		}
		if b.MineCount() != 20 {
			t.Fatalf("seed %d: MineCount() = %d, expected 20", seed, b.MineCount())
		}
		assertConsistentValues(t, b)
	}
}

func TestFirstClickOnCrowdedBoard(t *testing.T) {
	// every cell except the last is a mine
	var mines []Coord
	for r := range 3 {
		for c := range 3 {
			if r == 2 && c == 2 {
				continue
			}
			mines = append(mines, C(r, c))
		}
	}
	b, err := NewWithMines(3, 3, mines)
	if err != nil {
		t.Fatal(err)
	}

	info := mustOpen(t, b, 0, 0)
	if info.Result != OpenWinner {
		t.Fatalf("Result = %v, expected Winner", info.Result)
	}
	if info.Fields[C(0, 0)] != Numbered(3) {
		t.Errorf("field (0,0) = %v, expected 3", info.Fields[C(0, 0)])
	}
	if !b.cell(C(2, 2)).Type().IsMine() {
		t.Error("mine was not moved to (2,2)")
	}
}

func TestBoomRevealsMineUnderFlag(t *testing.T) {
	b := newFixture(t)
	mustOpen(t, b, 1, 0)
	mustFlag(t, b, 0, 3)

	info := mustOpen(t, b, 2, 2)
	if info.Result != OpenBoom {
		t.Fatalf("Result = %v, expected Boom", info.Result)
	}
	for _, m := range fixtureMines {
		if info.Fields[m] != Mine {
			t.Errorf("boom fields missing mine %v", m)
		}
	}
}

func TestFieldInfoHidesClosed(t *testing.T) {
	b := newFixture(t)

	fi, err := b.FieldInfo(0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if fi.State != Closed || fi.Type != Empty {
		t.Errorf("FieldInfo() = %+v, expected closed and hidden", fi)
	}

	mustOpen(t, b, 0, 2)
	fi, err = b.FieldInfo(0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if fi.State != Opened || fi.Type != Numbered(1) {
		t.Errorf("FieldInfo() = %+v, expected opened 1", fi)
	}
}

func assertConsistentValues(t *testing.T, b *Board) {
	t.Helper()
	for r := range b.Height() {
		for c := range b.Width() {
			pos := C(r, c)
			typ := b.cell(pos).Type()
			if typ.IsMine() {
				if !b.mines.Has(pos) {
					t.Errorf("cell %v is a mine but not in the mine set", pos)
				}
				continue
			}
			value, err := FieldValue(b.Height(), b.Width(), pos, b.mines)
			if err != nil {
				t.Fatal(err)
			}
			if typ != typeForValue(value) {
				t.Errorf("cell %v = %v, expected value %d", pos, typ, value)
			}
		}
	}
}
