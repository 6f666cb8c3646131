package gridgraph

import "fmt"

// NewGrid constructs an empty width×height Grid.
// Returns ErrEmptyGrid if either dimension is not positive.
// Algorithmic complexity: O(W×H) time and memory.
func NewGrid(width, height int, opts GridOptions) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	// Precompute neighbor offsets based on connectivity
	var offsets [][2]int
	if opts.Conn == Conn8 {
		offsets = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	} else {
		offsets = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	}

	return &Grid{
		Width:           width,
		Height:          height,
		Conn:            opts.Conn,
		cells:           make([]Occupant, width*height),
		neighborOffsets: offsets,
	}, nil
}

// InBounds reports whether p lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// NeighborOffsets returns the precomputed neighbor offsets slice.
// Complexity: O(1).
func (g *Grid) NeighborOffsets() [][2]int {
	return g.neighborOffsets
}

// index maps p to a row-major index: y*Width + x.
func (g *Grid) index(p Point) int {
	return p.Y*g.Width + p.X
}

// Coordinate converts a row-major index back to a Point.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Point {
	return Point{X: idx % g.Width, Y: idx / g.Width}
}

// Place puts o on p. A cell holds at most one occupant, whatever its kind.
// Errors: ErrOutOfBounds, ErrCellOccupied.
// Complexity: O(1).
func (g *Grid) Place(p Point, o Occupant) error {
	if !g.InBounds(p) {
		return fmt.Errorf("place %v: %w", p, ErrOutOfBounds)
	}
	i := g.index(p)
	if g.cells[i].Kind != Empty {
		return fmt.Errorf("place %v: %w", p, ErrCellOccupied)
	}
	g.cells[i] = o
	g.occupied++

	return nil
}

// At returns the occupant of p and whether the cell is taken.
// Out-of-bounds points report (Occupant{}, false).
func (g *Grid) At(p Point) (Occupant, bool) {
	if !g.InBounds(p) {
		return Occupant{}, false
	}
	o := g.cells[g.index(p)]

	return o, o.Kind != Empty
}

// Free reports whether p is in bounds and unoccupied.
func (g *Grid) Free(p Point) bool {
	if !g.InBounds(p) {
		return false
	}

	return g.cells[g.index(p)].Kind == Empty
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int { return g.occupied }

// Clear empties every cell, keeping dimensions and connectivity.
// Complexity: O(W×H).
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Occupant{}
	}
	g.occupied = 0
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Occupant, len(g.cells))
	copy(cells, g.cells)

	return &Grid{
		Width:           g.Width,
		Height:          g.Height,
		Conn:            g.Conn,
		cells:           cells,
		occupied:        g.occupied,
		neighborOffsets: g.neighborOffsets,
	}
}

// Distance returns the number of grid steps between a and b under the
// grid's connectivity: Manhattan for Conn4, Chebyshev for Conn8.
// Complexity: O(1).
func (g *Grid) Distance(a, b Point) int {
	if g.Conn == Conn8 {
		return Chebyshev(a, b)
	}

	return Manhattan(a, b)
}

// Manhattan returns |ax-bx| + |ay-by|.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Chebyshev returns max(|ax-bx|, |ay-by|).
func Chebyshev(a, b Point) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return dx
	}

	return dy
}

// abs returns the absolute value of an int.
func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
