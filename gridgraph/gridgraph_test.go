package gridgraph_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/lvassign/gridgraph"
)

//----------------------------------------------------------------------------//
// NewGrid and InBounds Tests
//----------------------------------------------------------------------------//

// TestNewGrid_Errors verifies that NewGrid rejects empty dimensions.
func TestNewGrid_Errors(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"ZeroWidth", 0, 3},
		{"ZeroHeight", 3, 0},
		{"Negative", -1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gridgraph.NewGrid(tc.w, tc.h, gridgraph.DefaultGridOptions())
			if !errors.Is(err, gridgraph.ErrEmptyGrid) {
				t.Errorf("NewGrid(%d,%d) error = %v; want %v", tc.w, tc.h, err, gridgraph.ErrEmptyGrid)
			}
		})
	}
}

// TestInBounds checks InBounds on a 3×2 grid.
func TestInBounds(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 2, gridgraph.DefaultGridOptions())
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}

	for _, p := range []gridgraph.Point{{X: 0, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}} {
		if !g.InBounds(p) {
			t.Errorf("InBounds(%v)=false; want true", p)
		}
	}
	for _, p := range []gridgraph.Point{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: -1}} {
		if g.InBounds(p) {
			t.Errorf("InBounds(%v)=true; want false", p)
		}
	}
}

//----------------------------------------------------------------------------//
// Occupancy Tests
//----------------------------------------------------------------------------//

// TestPlace_CellOccupied verifies the one-occupant-per-cell rule across kinds.
func TestPlace_CellOccupied(t *testing.T) {
	g, _ := gridgraph.NewGrid(4, 4, gridgraph.DefaultGridOptions())
	p := gridgraph.Point{X: 1, Y: 2}

	if err := g.Place(p, gridgraph.Occupant{Kind: gridgraph.TaskCell, ID: 0}); err != nil {
		t.Fatalf("Place task: %v", err)
	}
	err := g.Place(p, gridgraph.Occupant{Kind: gridgraph.AgentCell, ID: 0})
	if !errors.Is(err, gridgraph.ErrCellOccupied) {
		t.Errorf("Place agent on task cell error = %v; want ErrCellOccupied", err)
	}
	err = g.Place(gridgraph.Point{X: 4, Y: 0}, gridgraph.Occupant{Kind: gridgraph.TaskCell, ID: 1})
	if !errors.Is(err, gridgraph.ErrOutOfBounds) {
		t.Errorf("Place out of bounds error = %v; want ErrOutOfBounds", err)
	}

	o, ok := g.At(p)
	if !ok || o.Kind != gridgraph.TaskCell || o.ID != 0 {
		t.Errorf("At(%v) = %+v,%v; want task 0", p, o, ok)
	}
	if g.Free(p) || g.Len() != 1 {
		t.Errorf("Free/Len mismatch: free=%v len=%d", g.Free(p), g.Len())
	}

	c := g.Clone()
	g.Clear()
	if g.Len() != 0 || !g.Free(p) {
		t.Errorf("Clear left occupants: len=%d", g.Len())
	}
	if c.Len() != 1 || c.Free(p) {
		t.Errorf("Clone must be independent of Clear on the original")
	}
}

//----------------------------------------------------------------------------//
// Distance & NearestFree Tests
//----------------------------------------------------------------------------//

// TestDistance compares Conn4 and Conn8 metrics.
func TestDistance(t *testing.T) {
	a, b := gridgraph.Point{X: 0, Y: 0}, gridgraph.Point{X: 3, Y: 4}

	g4, _ := gridgraph.NewGrid(10, 10, gridgraph.GridOptions{Conn: gridgraph.Conn4})
	if d := g4.Distance(a, b); d != 7 {
		t.Errorf("Conn4 Distance = %d; want 7", d)
	}
	g8, _ := gridgraph.NewGrid(10, 10, gridgraph.GridOptions{Conn: gridgraph.Conn8})
	if d := g8.Distance(a, b); d != 4 {
		t.Errorf("Conn8 Distance = %d; want 4", d)
	}
}

// TestNearestFree walks outward from an occupied cell and reports a full grid.
func TestNearestFree(t *testing.T) {
	g, _ := gridgraph.NewGrid(2, 2, gridgraph.DefaultGridOptions())
	origin := gridgraph.Point{X: 0, Y: 0}

	got, err := g.NearestFree(origin)
	if err != nil || got != origin {
		t.Fatalf("NearestFree on empty grid = %v,%v; want %v", got, err, origin)
	}

	_ = g.Place(origin, gridgraph.Occupant{Kind: gridgraph.AgentCell, ID: 0})
	got, err = g.NearestFree(origin)
	if err != nil {
		t.Fatalf("NearestFree error: %v", err)
	}
	// Offsets are N(0,-1) out of bounds, then E(1,0).
	if want := (gridgraph.Point{X: 1, Y: 0}); got != want {
		t.Errorf("NearestFree = %v; want %v", got, want)
	}

	_ = g.Place(gridgraph.Point{X: 1, Y: 0}, gridgraph.Occupant{Kind: gridgraph.TaskCell, ID: 0})
	_ = g.Place(gridgraph.Point{X: 0, Y: 1}, gridgraph.Occupant{Kind: gridgraph.TaskCell, ID: 1})
	_ = g.Place(gridgraph.Point{X: 1, Y: 1}, gridgraph.Occupant{Kind: gridgraph.TaskCell, ID: 2})
	if _, err = g.NearestFree(origin); !errors.Is(err, gridgraph.ErrGridFull) {
		t.Errorf("NearestFree on full grid error = %v; want ErrGridFull", err)
	}
	if _, err = g.NearestFree(gridgraph.Point{X: 5, Y: 5}); !errors.Is(err, gridgraph.ErrOutOfBounds) {
		t.Errorf("NearestFree out of bounds error = %v; want ErrOutOfBounds", err)
	}
}
