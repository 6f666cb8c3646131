package gridgraph

import "fmt"

// NearestFree returns the free cell closest to p in grid steps, exploring
// neighbors breadth-first in NeighborOffsets order, so ties resolve the
// same way on every call. p itself is returned when free.
//
// Errors: ErrOutOfBounds when p is outside the grid, ErrGridFull when every
// cell is occupied.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and the queue.
func (g *Grid) NearestFree(p Point) (Point, error) {
	if !g.InBounds(p) {
		return Point{}, fmt.Errorf("nearest free from %v: %w", p, ErrOutOfBounds)
	}
	if g.occupied >= len(g.cells) {
		return Point{}, ErrGridFull
	}

	seen := make([]bool, len(g.cells))
	start := g.index(p)
	queue := []int{start}
	seen[start] = true
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		if g.cells[u].Kind == Empty {
			return g.Coordinate(u), nil
		}
		up := g.Coordinate(u)
		for _, d := range g.neighborOffsets {
			v := Point{X: up.X + d[0], Y: up.Y + d[1]}
			if !g.InBounds(v) {
				continue
			}
			vi := g.index(v)
			if !seen[vi] {
				seen[vi] = true
				queue = append(queue, vi)
			}
		}
	}

	return Point{}, ErrGridFull
}
