package minesweeper

import "github.com/zyedidia/generic/mapset"

// neighborOffsets lists the 8 compass offsets as (dRow, dCol), row by row.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// InBounds reports whether c lies on a height x width board.
func InBounds(height, width int, c Coord) bool {
	return c.Row >= 0 && c.Row < height && c.Col >= 0 && c.Col < width
}

// Neighbors returns the in-bounds neighbors of c in a fixed order.
// There is no wraparound, so corners have 3 neighbors and edges 5.
func Neighbors(height, width int, c Coord) []Coord {
	result := make([]Coord, 0, len(neighborOffsets))
	for _, off := range neighborOffsets {
		n := Coord{Row: c.Row + off[0], Col: c.Col + off[1]}
		if InBounds(height, width, n) {
			result = append(result, n)
		}
	}
	return result
}

// FieldValue counts the mines around c. A mine has no value.
func FieldValue(height, width int, c Coord, mines mapset.Set[Coord]) (int, error) {
	if mines.Has(c) {
		return 0, ErrMineHasNoValue
	}

	value := 0
	for _, n := range Neighbors(height, width, c) {
		if mines.Has(n) {
			value++
		}
	}
	return value, nil
}
