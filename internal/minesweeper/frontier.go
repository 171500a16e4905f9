package minesweeper

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// VisitOrder selects which pending coordinate Frontier.Next hands out.
type VisitOrder uint8

const (
	// StackOrder returns the most recently added coordinate first.
	StackOrder VisitOrder = iota
	// QueueOrder returns the oldest coordinate first (breadth-first).
	QueueOrder
)

// Frontier is the work-list of a non-recursive traversal: coordinates still
// to visit, in insertion order and without duplicates, plus the set of
// coordinates already handed out. A coordinate is handed out at most once.
type Frontier struct {
	height  int
	width   int
	order   VisitOrder
	pending []Coord
	queued  mapset.Set[Coord]
	visited mapset.Set[Coord]
}

// NewFrontier creates a frontier holding only start.
func NewFrontier(height, width int, start Coord, order VisitOrder) (*Frontier, error) {
	if !InBounds(height, width, start) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndex, start)
	}

	f := &Frontier{
		height:  height,
		width:   width,
		order:   order,
		queued:  mapset.New[Coord](),
		visited: mapset.New[Coord](),
	}
	f.push(start)
	return f, nil
}

// Next removes one pending coordinate, marks it visited and returns it.
// The second result is false once nothing is pending.
func (f *Frontier) Next() (Coord, bool) {
	if len(f.pending) == 0 {
		return Coord{}, false
	}

	var c Coord
	if f.order == QueueOrder {
		c = f.pending[0]
		f.pending = f.pending[1:]
	} else {
		last := len(f.pending) - 1
		c = f.pending[last]
		f.pending = f.pending[:last]
	}

	f.queued.Remove(c)
	f.visited.Put(c)
	return c, true
}

// ExtendWithUnvisitedNeighbors queues every neighbor of c not visited yet.
func (f *Frontier) ExtendWithUnvisitedNeighbors(c Coord) {
	for _, n := range Neighbors(f.height, f.width, c) {
		if !f.visited.Has(n) {
			f.push(n)
		}
	}
}

// SeedNeighbors marks c as visited and replaces everything pending with the
// unvisited neighbors of c. Used to start a traversal around an open cell.
func (f *Frontier) SeedNeighbors(c Coord) {
	f.pending = f.pending[:0]
	f.queued = mapset.New[Coord]()
	f.visited.Put(c)
	f.ExtendWithUnvisitedNeighbors(c)
}

func (f *Frontier) push(c Coord) {
	if f.queued.Has(c) {
		return
	}
	f.queued.Put(c)
	f.pending = append(f.pending, c)
}
