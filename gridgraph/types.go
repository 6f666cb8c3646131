// Package gridgraph defines core types and options for the grid world
// shared by tasks and agents.
package gridgraph

import "fmt"

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// String returns "conn4" or "conn8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "conn8"
	}

	return "conn4"
}

// Point is an integer cell coordinate. Y grows upward when rendered.
type Point struct {
	X, Y int
}

// String formats the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Kind tells what sits on a cell.
type Kind int

const (
	// Empty marks a free cell (zero value).
	Empty Kind = iota
	// TaskCell marks a cell holding a task.
	TaskCell
	// AgentCell marks a cell holding an agent.
	AgentCell
)

// Occupant identifies the task or agent placed on a cell.
type Occupant struct {
	Kind Kind
	ID   int
}

// GridOptions contains tunable parameters for the grid.
type GridOptions struct {
	// Conn chooses 4- or 8-directional movement; it drives Distance and NearestFree.
	Conn Connectivity
}

// DefaultGridOptions returns GridOptions{Conn: Conn4}.
func DefaultGridOptions() GridOptions {
	return GridOptions{Conn: Conn4}
}

// Grid is a Width×Height board with at most one occupant per cell.
// cells is row-major: index = y*Width + x.
type Grid struct {
	Width, Height   int
	Conn            Connectivity
	cells           []Occupant
	occupied        int
	neighborOffsets [][2]int
}
