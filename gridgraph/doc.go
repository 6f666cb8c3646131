// Package gridgraph models the rectangular board on which tasks and agents
// are placed for the bundle-allocation simulation.
//
// What:
//
//   - Grid holds Width×Height cells with at most one Occupant per cell
//     (a task or an agent, never both).
//   - Distance measures grid steps: Manhattan (Conn4) or Chebyshev (Conn8).
//   - NearestFree runs a BFS over neighbor offsets to the closest free cell.
//
// Complexity:
//
//   - Place, At, Free, Distance: O(1).
//   - NearestFree:               O(W×H×d), Memory: O(W×H) (d = 4 or 8).
//   - Clear, Clone:              O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid: non-positive width or height.
//   - ErrOutOfBounds: point outside the grid.
//   - ErrCellOccupied: the cell already holds an occupant.
//   - ErrGridFull: no free cell left.
package gridgraph
