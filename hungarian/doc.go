// Package hungarian solves the linear assignment problem: given an n×n cost
// matrix, find a one-to-one worker→task mapping with minimal (or maximal)
// total cost.
//
// What:
//
//   - Solve runs the Kuhn–Munkres (Hungarian) algorithm with starred/primed
//     zeros and row/column covers, O(n³).
//   - SolveAssignment is the literal-input convenience wrapper.
//   - BruteForce enumerates all permutations for n ≤ MaxBruteForceSize and
//     serves as a reference oracle.
//   - TotalCost evaluates any assignment against the original matrix.
//
// Why:
//
//   - Worker/task dispatch with a known cost per pair.
//   - Teaching demos comparing exact assignment with market-based heuristics.
//
// Options:
//
//   - Options.Objective: Minimize (default) or Maximize.
//   - Options.Eps: tolerance for treating a reduced entry as zero, scaled by
//     the largest absolute cost.
//
// Errors:
//
//   - ErrInvalidShape: nil, ragged or non-square matrix.
//   - ErrBadOptions: unknown objective or invalid tolerance.
//   - ErrTooLarge: BruteForce beyond MaxBruteForceSize.
//   - matrix.ErrNaNInf: non-finite costs.
//
// Usage:
//
//	cost, _ := matrix.NewFromRows([][]float64{{4, 1, 3}, {2, 0, 5}, {3, 2, 2}})
//	res, err := hungarian.Solve(cost, nil)
//	// res.Assignment == [1 0 2], res.Cost == 5
package hungarian
