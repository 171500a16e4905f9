package minesweeper

// CellOpenResult is the outcome of opening a single cell.
type CellOpenResult uint8

const (
	CellAlreadyOpened CellOpenResult = iota
	CellIsFlagged
	CellSimpleOpen // numbered cell opened
	CellMultiOpen  // empty cell opened, neighbors should cascade
	CellBoom
)

// Cell is one grid position: what it is and what the player did to it.
type Cell struct {
	fieldType FieldType
	state     FieldState
}

// NewCell returns a closed cell of the given type.
func NewCell(t FieldType) Cell {
	return Cell{fieldType: t, state: Closed}
}

// Type returns the real type of the cell, visible or not.
func (c Cell) Type() FieldType {
	return c.fieldType
}

// State returns the player-facing state of the cell.
func (c Cell) State() FieldState {
	return c.state
}

// Info returns the public view: the type is hidden until the cell is opened.
func (c Cell) Info() FieldInfo {
	if c.state == Opened {
		return FieldInfo{State: c.state, Type: c.fieldType}
	}
	return FieldInfo{State: c.state, Type: Empty}
}

// Open opens the cell unless it is flagged or already open.
func (c *Cell) Open() CellOpenResult {
	switch c.state {
	case Flagged:
		return CellIsFlagged
	case Opened:
		return CellAlreadyOpened
	}

	c.state = Opened
	switch c.fieldType.Kind {
	case KindMine:
		return CellBoom
	case KindNumbered:
		return CellSimpleOpen
	default:
		return CellMultiOpen
	}
}

// ToggleFlag flips between Closed and Flagged. Opened cells are left alone.
func (c *Cell) ToggleFlag() FlagResult {
	switch c.state {
	case Flagged:
		c.state = Closed
		return FlagRemoved
	case Opened:
		return FlagAlreadyOpened
	default:
		c.state = Flagged
		return FlagPlaced
	}
}

// SetMine turns the cell into a mine.
func (c *Cell) SetMine() error {
	return c.setType(Mine)
}

// SetEmpty turns the cell into an empty field.
func (c *Cell) SetEmpty() error {
	return c.setType(Empty)
}

// SetValue turns the cell into a numbered field with n neighboring mines.
func (c *Cell) SetValue(n int) error {
	if c.state == Opened {
		return ErrOpenedFieldUpdate
	}
	if !validValue(n) {
		return ErrInvalidValue
	}
	c.fieldType = Numbered(uint8(n))
	return nil
}

// setType changes the type; revealed information is never rewritten.
func (c *Cell) setType(t FieldType) error {
	if c.state == Opened {
		return ErrOpenedFieldUpdate
	}
	c.fieldType = t
	return nil
}
