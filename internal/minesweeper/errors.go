package minesweeper

import "errors"

var (
	// Construction errors.
	ErrInvalidDimensions    = errors.New("minesweeper: board dimensions must be positive")
	ErrTooManyFields        = errors.New("minesweeper: too many fields")
	ErrTooManyMines         = errors.New("minesweeper: too many mines")
	ErrTooFewMines          = errors.New("minesweeper: too few mines")
	ErrInvalidMineLocations = errors.New("minesweeper: invalid mine locations")

	// Per-call errors.
	ErrInvalidIndex       = errors.New("minesweeper: invalid index")
	ErrNoRelocationTarget = errors.New("minesweeper: no free field to relocate the mine to")

	// Cell and geometry errors.
	ErrInvalidValue      = errors.New("minesweeper: field value must be between 1 and 8")
	ErrOpenedFieldUpdate = errors.New("minesweeper: an opened field can not be updated")
	ErrMineHasNoValue    = errors.New("minesweeper: a mine does not have a value")
)
