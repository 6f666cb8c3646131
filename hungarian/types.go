// Package hungarian defines options, results and sentinel errors for the
// assignment solvers.
package hungarian

import (
	"errors"
	"math"
)

// Sentinel errors for assignment operations.
var (
	// ErrInvalidShape indicates a nil, ragged or non-square cost matrix.
	// The underlying matrix sentinel stays reachable through errors.Is.
	ErrInvalidShape = errors.New("hungarian: invalid matrix shape")

	// ErrBadOptions indicates an unknown Objective or a negative/NaN Eps.
	ErrBadOptions = errors.New("hungarian: invalid options")

	// ErrTooLarge indicates BruteForce was asked for n > MaxBruteForceSize.
	ErrTooLarge = errors.New("hungarian: matrix too large for brute force")
)

const (
	// DefaultEps is the relative tolerance under which a reduced entry counts as zero.
	DefaultEps = 1e-9

	// MaxBruteForceSize bounds BruteForce (n! permutations).
	MaxBruteForceSize = 8

	// Unassigned marks a row without a starred zero in the extracted result.
	Unassigned = -1
)

// Objective selects whether the total is minimized or maximized.
type Objective int

const (
	// Minimize finds the assignment with the smallest total cost.
	Minimize Objective = iota
	// Maximize finds the assignment with the largest total (profit matrices).
	Maximize
)

// String returns "min" or "max".
func (o Objective) String() string {
	switch o {
	case Minimize:
		return "min"
	case Maximize:
		return "max"
	default:
		return "unknown"
	}
}

// Options configures Solve.
//
// Fields:
//   - Objective — Minimize (default) or Maximize.
//   - Eps       — zero tolerance used by the cover search, relative to the largest
//     absolute entry of the working matrix; 0 means exact comparison.
type Options struct {
	Objective Objective
	Eps       float64
}

// DefaultOptions returns Options{Objective: Minimize, Eps: DefaultEps}.
func DefaultOptions() Options {
	return Options{
		Objective: Minimize,
		Eps:       DefaultEps,
	}
}

// validate checks Options consistency.
func (o Options) validate() error {
	if o.Objective != Minimize && o.Objective != Maximize {
		return ErrBadOptions
	}
	if math.IsNaN(o.Eps) || math.IsInf(o.Eps, 0) || o.Eps < 0 {
		return ErrBadOptions
	}

	return nil
}

// Result holds the outcome of an assignment solver.
type Result struct {
	// Assignment maps row (worker) i to column (task) Assignment[i].
	// For a valid square input it is a permutation of 0..n-1.
	Assignment []int

	// Cost is the total of cost[i][Assignment[i]] over the ORIGINAL matrix,
	// regardless of Objective.
	Cost float64
}
