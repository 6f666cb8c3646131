package gridgraph

import "errors"

var (
	// ErrEmptyGrid indicates a non-positive width or height.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one row and one column")
	// ErrOutOfBounds indicates a point outside the grid.
	ErrOutOfBounds = errors.New("gridgraph: point out of bounds")
	// ErrCellOccupied indicates the target cell already holds a task or an agent.
	ErrCellOccupied = errors.New("gridgraph: cell occupied")
	// ErrGridFull indicates no free cell is reachable.
	ErrGridFull = errors.New("gridgraph: no free cell")
)
