// SPDX-License-Identifier: MIT

// Package matrix: the public Matrix interface shared by the dense storage
// and by the assignment solvers that consume it.
package matrix

// Matrix is a rectangular table of costs: row i is a worker, column j a task.
// Solvers accept any implementation and only read through At.
type Matrix interface {
	// Rows returns the number of workers.
	Rows() int

	// Cols returns the number of tasks.
	Cols() int

	// At returns cost(i, j), or ErrOutOfRange outside the shape.
	At(i, j int) (float64, error)

	// Set writes cost(i, j); ErrOutOfRange outside the shape.
	Set(i, j int, v float64) error

	// Clone returns an independent deep copy. O(rows*cols).
	Clone() Matrix
}
