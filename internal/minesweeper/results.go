package minesweeper

// OpenResult is the outcome of an Open or OpenNeighbors call.
type OpenResult uint8

const (
	OpenOK OpenResult = iota
	OpenIsFlagged
	OpenBoom
	OpenWinner
)

// String returns a human-readable name for the result.
func (r OpenResult) String() string {
	switch r {
	case OpenOK:
		return "Ok"
	case OpenIsFlagged:
		return "IsFlagged"
	case OpenBoom:
		return "Boom"
	case OpenWinner:
		return "Winner"
	default:
		return "Unknown"
	}
}

// OpenInfo describes what changed during an open call.
// Fields holds every coordinate whose type became visible. On OpenBoom it
// holds every cell of the board; on OpenWinner it also holds every mine.
type OpenInfo struct {
	Result OpenResult
	Fields map[Coord]FieldType
}

func emptyOpenInfo(result OpenResult) OpenInfo {
	return OpenInfo{Result: result, Fields: map[Coord]FieldType{}}
}

// FlagResult is the outcome of a ToggleFlag call.
type FlagResult uint8

const (
	FlagNone FlagResult = iota // returned alongside an error
	FlagPlaced
	FlagRemoved
	FlagAlreadyOpened
)

// String returns a human-readable name for the result.
func (r FlagResult) String() string {
	switch r {
	case FlagNone:
		return "None"
	case FlagPlaced:
		return "Flagged"
	case FlagRemoved:
		return "FlagRemoved"
	case FlagAlreadyOpened:
		return "AlreadyOpened"
	default:
		return "Unknown"
	}
}
