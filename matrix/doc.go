// Package matrix provides the dense cost-matrix storage consumed by the
// assignment solvers.
//
// The matrix package provides:
//
//   - Matrix, a minimal interface (Rows, Cols, At, Set, Clone).
//   - Dense, a bounds-checked row-major implementation that rejects NaN/Inf.
//   - NewFromRows for ingesting [][]float64 literals (UI input, YAML files).
//   - NewRandomCost for reproducible random instances.
//   - Central validators (ValidateNotNil, ValidateSquare, ValidateFinite).
//
// Errors are package sentinels (ErrOutOfRange, ErrDimensionMismatch,
// ErrNaNInf, ...) wrapped with call-site context; match them via errors.Is.
package matrix
