package minesweeper

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"
)

// MaxFields is the largest number of cells a board may have.
const MaxFields = 1 << 20

// Board owns the grid, the mine locations and the opened-cell counter.
// A Board is not safe for concurrent use; callers serialize access.
type Board struct {
	height int
	width  int
	mines  mapset.Set[Coord]
	cells  [][]Cell
	opened int // opened non-mine cells
	flags  int
}

// New creates a board with mineCount mines placed uniformly at random.
// A nil rng uses a time-seeded source.
func New(height, width, mineCount int, rng *rand.Rand) (*Board, error) {
	if err := checkFields(height, width); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	mines, err := GenerateMineLocations(height, width, mineCount, rng)
	if err != nil {
		return nil, err
	}
	return newBoard(height, width, mines)
}

// NewWithMines creates a board with mines at the given coordinates.
// Duplicate coordinates count once.
func NewWithMines(height, width int, mines []Coord) (*Board, error) {
	if err := checkFields(height, width); err != nil {
		return nil, err
	}

	set := mapset.New[Coord]()
	for _, m := range mines {
		if !InBounds(height, width, m) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMineLocations, m)
		}
		set.Put(m)
	}
	if err := checkMineCount(height, width, set.Size()); err != nil {
		return nil, err
	}
	return newBoard(height, width, set)
}

// GenerateMineLocations samples count distinct coordinates without replacement.
func GenerateMineLocations(height, width, count int, rng *rand.Rand) (mapset.Set[Coord], error) {
	if err := checkFields(height, width); err != nil {
		return mapset.Set[Coord]{}, err
	}
	if err := checkMineCount(height, width, count); err != nil {
		return mapset.Set[Coord]{}, err
	}

	// Partial Fisher-Yates over cell indices.
	candidates := make([]int, height*width)
	for i := range candidates {
		candidates[i] = i
	}
	mines := mapset.New[Coord]()
	k := len(candidates)
	for range count {
		i := rng.Intn(k)
		idx := candidates[i]
		mines.Put(Coord{Row: idx / width, Col: idx % width})
		k--
		candidates[i] = candidates[k]
	}
	return mines, nil
}

func checkFields(height, width int) error {
	if height <= 0 || width <= 0 {
		return ErrInvalidDimensions
	}
	if height > MaxFields/width {
		return ErrTooManyFields
	}
	return nil
}

func checkMineCount(height, width, count int) error {
	if count > height*width-1 {
		return ErrTooManyMines
	}
	if count < 1 {
		return ErrTooFewMines
	}
	return nil
}

func newBoard(height, width int, mines mapset.Set[Coord]) (*Board, error) {
	cells := make([][]Cell, height)
	for r := range height {
		cells[r] = make([]Cell, width)
		for c := range width {
			pos := Coord{Row: r, Col: c}
			if mines.Has(pos) {
				cells[r][c] = NewCell(Mine)
				continue
			}
			value, err := FieldValue(height, width, pos, mines)
			if err != nil {
				return nil, err
			}
			cells[r][c] = NewCell(typeForValue(value))
		}
	}

	return &Board{
		height: height,
		width:  width,
		mines:  mines,
		cells:  cells,
	}, nil
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// MineCount returns the number of mines on the board.
func (b *Board) MineCount() int {
	return b.mines.Size()
}

// OpenedCount returns the number of opened non-mine cells.
func (b *Board) OpenedCount() int {
	return b.opened
}

// FlagCount returns the number of flagged cells.
func (b *Board) FlagCount() int {
	return b.flags
}

// FieldInfo returns the public view of a cell.
func (b *Board) FieldInfo(row, col int) (FieldInfo, error) {
	c := Coord{Row: row, Col: col}
	if err := b.validate(c); err != nil {
		return FieldInfo{}, err
	}
	return b.cell(c).Info(), nil
}

// ToggleFlag flags or unflags a closed cell.
func (b *Board) ToggleFlag(row, col int) (FlagResult, error) {
	c := Coord{Row: row, Col: col}
	if err := b.validate(c); err != nil {
		return FlagNone, err
	}

	result := b.cell(c).ToggleFlag()
	switch result {
	case FlagPlaced:
		b.flags++
	case FlagRemoved:
		b.flags--
	}
	return result, nil
}

// Open opens a cell and cascades through connected empty cells.
// The first open of a game never hits a mine: the mine is moved first.
func (b *Board) Open(row, col int) (OpenInfo, error) {
	c := Coord{Row: row, Col: col}
	if err := b.validate(c); err != nil {
		return OpenInfo{}, err
	}

	cell := b.cell(c)
	if cell.State() == Flagged {
		return emptyOpenInfo(OpenIsFlagged), nil
	}

	if b.opened == 0 && cell.Type().IsMine() {
		if err := b.moveMine(c); err != nil {
			return OpenInfo{}, err
		}
	}

	f, err := NewFrontier(b.height, b.width, c, StackOrder)
	if err != nil {
		return OpenInfo{}, err
	}
	return b.fill(f), nil
}

// OpenNeighbors opens every unflagged neighbor of an opened numbered cell
// whose flagged-neighbor count equals its number. Anything else is a no-op.
func (b *Board) OpenNeighbors(row, col int) (OpenInfo, error) {
	c := Coord{Row: row, Col: col}
	if err := b.validate(c); err != nil {
		return OpenInfo{}, err
	}

	cell := b.cell(c)
	if cell.State() != Opened || !cell.Type().IsNumbered() {
		return emptyOpenInfo(OpenOK), nil
	}
	if b.flaggedNeighbors(c) != int(cell.Type().Value) {
		return emptyOpenInfo(OpenOK), nil
	}

	f, err := NewFrontier(b.height, b.width, c, StackOrder)
	if err != nil {
		return OpenInfo{}, err
	}
	f.SeedNeighbors(c)
	return b.fill(f), nil
}

// fill drains the frontier, opening cells and collecting what became visible.
func (b *Board) fill(f *Frontier) OpenInfo {
	fields := make(map[Coord]FieldType)
	boomed := false

	for c, ok := f.Next(); ok; c, ok = f.Next() {
		cell := b.cell(c)
		switch cell.Open() {
		case CellMultiOpen:
			b.opened++
			f.ExtendWithUnvisitedNeighbors(c)
		case CellSimpleOpen:
			b.opened++
		case CellBoom:
			// Keep draining so the traversal ends cleanly.
			boomed = true
		default:
			continue
		}
		fields[c] = cell.Type()
	}

	if boomed {
		return b.boomInfo()
	}

	if b.allFieldsOpen() {
		b.mines.Each(func(m Coord) {
			fields[m] = Mine
		})
		return OpenInfo{Result: OpenWinner, Fields: fields}
	}

	return OpenInfo{Result: OpenOK, Fields: fields}
}

func (b *Board) boomInfo() OpenInfo {
	fields := make(map[Coord]FieldType, b.height*b.width)
	for r := range b.height {
		for c := range b.width {
			fields[Coord{Row: r, Col: c}] = b.cells[r][c].Type()
		}
	}
	return OpenInfo{Result: OpenBoom, Fields: fields}
}

func (b *Board) allFieldsOpen() bool {
	return b.mines.Size()+b.opened == b.height*b.width
}

// moveMine relocates the mine at c to the nearest non-mine cell and
// recomputes the numbers around both positions.
func (b *Board) moveMine(c Coord) error {
	f, err := NewFrontier(b.height, b.width, c, QueueOrder)
	if err != nil {
		return err
	}

	var target Coord
	found := false
	for n, ok := f.Next(); ok; n, ok = f.Next() {
		if !b.mines.Has(n) {
			target, found = n, true
			break
		}
		f.ExtendWithUnvisitedNeighbors(n)
	}
	if !found {
		return ErrNoRelocationTarget
	}

	if err := b.cell(target).SetMine(); err != nil {
		return err
	}
	if err := b.cell(c).SetEmpty(); err != nil {
		return err
	}
	b.mines.Remove(c)
	b.mines.Put(target)

	affected := Neighbors(b.height, b.width, c)
	affected = append(affected, Neighbors(b.height, b.width, target)...)
	affected = append(affected, c)
	for _, pos := range affected {
		if b.mines.Has(pos) {
			continue
		}
		if err := b.recompute(pos); err != nil {
			return err
		}
	}
	return nil
}

func (b *Board) recompute(c Coord) error {
	value, err := FieldValue(b.height, b.width, c, b.mines)
	if err != nil {
		return err
	}
	if value == 0 {
		return b.cell(c).SetEmpty()
	}
	return b.cell(c).SetValue(value)
}

func (b *Board) flaggedNeighbors(c Coord) int {
	count := 0
	for _, n := range Neighbors(b.height, b.width, c) {
		if b.cell(n).State() == Flagged {
			count++
		}
	}
	return count
}

func (b *Board) validate(c Coord) error {
	if !InBounds(b.height, b.width, c) {
		return fmt.Errorf("%w: %v", ErrInvalidIndex, c)
	}
	return nil
}

func (b *Board) cell(c Coord) *Cell {
	return &b.cells[c.Row][c.Col]
}
