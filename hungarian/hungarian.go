package hungarian

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvassign/matrix"
)

// Hungarian — Kuhn–Munkres optimal assignment
//
// Description:
//
//	Given an n×n cost matrix, find a one-to-one row→column mapping with
//	minimal total cost. The solver works on a reduced copy of the matrix
//	and tracks "starred" zeros (the current matching) and "primed" zeros
//	(augmenting path candidates) together with row/column covers.
//
// Algorithm Outline:
//  1. Subtract each row's minimum from that row.
//  2. Subtract each column's minimum from that column.
//  3. Star zeros greedily when their row and column hold no star yet.
//  4. Cover every column that contains a star.
//  5. While fewer than n columns are covered:
//     a. find an uncovered zero; if none, let m be the minimum uncovered
//     value, add m to covered rows, subtract m from uncovered columns,
//     and retry;
//     b. prime it. If its row holds a star, cover the row and uncover the
//     star's column. Otherwise walk prime → star (same column) → prime
//     (same row) ..., flip stars and primes along the path, erase primes,
//     reset covers and cover starred columns again.
//  6. Row i is assigned to the column of its star (Unassigned if none).
//
// Complexity:
//
//	Time   = O(n³) worst case
//	Memory = O(n²)
//
// Errors:
//   - ErrInvalidShape — nil, ragged or non-square input.
//   - ErrBadOptions   — unknown Objective or invalid Eps.
//   - matrix.ErrNaNInf — non-finite entries.
//   - any error returned by cost.At.

// mask states for a reduced cell.
const (
	cellPlain uint8 = iota
	cellStar
	cellPrime
)

// SolveAssignment solves the minimum-cost assignment for a [][]float64 literal.
// Returns an empty slice for n == 0.
//
// Example:
//
//	a, _ := SolveAssignment([][]float64{{1, 2}, {2, 1}}) // [0 1]
func SolveAssignment(cost [][]float64) ([]int, error) {
	m, err := matrix.NewFromRows(cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}
	res, err := Solve(m, nil)
	if err != nil {
		return nil, err
	}

	return res.Assignment, nil
}

// Solve runs the Hungarian algorithm on cost.
// If opts is nil, DefaultOptions() is used. The input matrix is never mutated.
func Solve(cost matrix.Matrix, opts *Options) (Result, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return Result{}, err
	}
	n, err := validateCost(cost)
	if err != nil {
		return Result{}, err
	}
	if n == 0 {
		return Result{Assignment: []int{}}, nil
	}

	s, err := newMunkres(cost, n, o)
	if err != nil {
		return Result{}, err
	}
	s.reduce()
	s.starInitial()
	s.coverStarredColumns()
	for s.coveredColumns() < n {
		row, col, ok := s.findUncoveredZero()
		if !ok {
			s.adjust()
			continue
		}
		s.mask[s.at(row, col)] = cellPrime
		if starCol := s.findInRow(row, cellStar); starCol >= 0 {
			s.rowCover[row] = true
			s.colCover[starCol] = false
			continue
		}
		s.augment(row, col)
	}

	assignment := s.extract()
	total, err := TotalCost(cost, assignment)
	if err != nil {
		return Result{}, err
	}

	return Result{Assignment: assignment, Cost: total}, nil
}

// validateCost enforces NotNil → Square → Finite and returns n.
func validateCost(cost matrix.Matrix) (int, error) {
	if err := matrix.ValidateSquareNonNil(cost); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}
	if err := matrix.ValidateFinite(cost); err != nil {
		return 0, err
	}

	return cost.Rows(), nil
}

// munkres holds the working state of one solve.
//   - c is the reduced cost buffer (row-major, n*n).
//   - mask marks starred/primed zeros.
type munkres struct {
	n        int
	eps      float64
	c        []float64
	mask     []uint8
	rowCover []bool
	colCover []bool
}

// newMunkres copies cost into a flat buffer; Maximize reflects every entry
// around the global maximum so that minimizing the copy maximizes the input.
// The zero tolerance is o.Eps times the largest absolute working entry, so
// multiplying the whole matrix by a positive constant never changes the result.
func newMunkres(cost matrix.Matrix, n int, o Options) (*munkres, error) {
	s := &munkres{
		n:        n,
		c:        make([]float64, n*n),
		mask:     make([]uint8, n*n),
		rowCover: make([]bool, n),
		colCover: make([]bool, n),
	}
	var (
		i, j int
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if s.c[i*n+j], err = cost.At(i, j); err != nil {
				return nil, err
			}
		}
	}
	if o.Objective == Maximize {
		hi := math.Inf(-1)
		for _, v := range s.c {
			if v > hi {
				hi = v
			}
		}
		for i = range s.c {
			s.c[i] = hi - s.c[i]
		}
	}
	var scale float64
	for _, v := range s.c {
		scale = math.Max(scale, math.Abs(v))
	}
	s.eps = o.Eps * scale

	return s, nil
}

func (s *munkres) at(i, j int) int { return i*s.n + j }

func (s *munkres) isZero(v float64) bool { return math.Abs(v) <= s.eps }

// reduce performs steps 1 and 2 (row then column reduction).
func (s *munkres) reduce() {
	var i, j int
	var lo float64
	for i = 0; i < s.n; i++ {
		lo = math.Inf(1)
		for j = 0; j < s.n; j++ {
			lo = math.Min(lo, s.c[s.at(i, j)])
		}
		for j = 0; j < s.n; j++ {
			s.c[s.at(i, j)] -= lo
		}
	}
	for j = 0; j < s.n; j++ {
		lo = math.Inf(1)
		for i = 0; i < s.n; i++ {
			lo = math.Min(lo, s.c[s.at(i, j)])
		}
		for i = 0; i < s.n; i++ {
			s.c[s.at(i, j)] -= lo
		}
	}
}

// starInitial is step 3: greedy starring, covers are used as scratch and cleared.
func (s *munkres) starInitial() {
	var i, j int
	for i = 0; i < s.n; i++ {
		for j = 0; j < s.n; j++ {
			if s.isZero(s.c[s.at(i, j)]) && !s.rowCover[i] && !s.colCover[j] {
				s.mask[s.at(i, j)] = cellStar
				s.rowCover[i] = true
				s.colCover[j] = true
			}
		}
	}
	s.clearCovers()
}

// coverStarredColumns is step 4 (also reused after every augmentation).
func (s *munkres) coverStarredColumns() {
	var i, j int
	for i = 0; i < s.n; i++ {
		for j = 0; j < s.n; j++ {
			if s.mask[s.at(i, j)] == cellStar {
				s.colCover[j] = true
			}
		}
	}
}

func (s *munkres) clearCovers() {
	for i := range s.rowCover {
		s.rowCover[i] = false
		s.colCover[i] = false
	}
}

func (s *munkres) coveredColumns() int {
	k := 0
	for _, c := range s.colCover {
		if c {
			k++
		}
	}

	return k
}

// findUncoveredZero scans rows then columns in fixed order.
func (s *munkres) findUncoveredZero() (row, col int, ok bool) {
	var i, j int
	for i = 0; i < s.n; i++ {
		if s.rowCover[i] {
			continue
		}
		for j = 0; j < s.n; j++ {
			if !s.colCover[j] && s.isZero(s.c[s.at(i, j)]) {
				return i, j, true
			}
		}
	}

	return -1, -1, false
}

// adjust adds the minimum uncovered value to covered rows and subtracts it
// from uncovered columns. Existing starred/primed zeros keep their value.
func (s *munkres) adjust() {
	lo := math.Inf(1)
	var i, j int
	for i = 0; i < s.n; i++ {
		if s.rowCover[i] {
			continue
		}
		for j = 0; j < s.n; j++ {
			if !s.colCover[j] && s.c[s.at(i, j)] < lo {
				lo = s.c[s.at(i, j)]
			}
		}
	}
	for i = 0; i < s.n; i++ {
		if s.rowCover[i] {
			for j = 0; j < s.n; j++ {
				s.c[s.at(i, j)] += lo
			}
		}
	}
	for j = 0; j < s.n; j++ {
		if !s.colCover[j] {
			for i = 0; i < s.n; i++ {
				s.c[s.at(i, j)] -= lo
			}
		}
	}
}

// findInRow returns the first column in row i with the given mark, or -1.
func (s *munkres) findInRow(i int, mark uint8) int {
	for j := 0; j < s.n; j++ {
		if s.mask[s.at(i, j)] == mark {
			return j
		}
	}

	return -1
}

// findInCol returns the first row in column j with the given mark, or -1.
func (s *munkres) findInCol(j int, mark uint8) int {
	for i := 0; i < s.n; i++ {
		if s.mask[s.at(i, j)] == mark {
			return i
		}
	}

	return -1
}

// augment walks the alternating path from the primed zero (row, col),
// flips stars and primes along it, erases the remaining primes and
// re-covers starred columns.
func (s *munkres) augment(row, col int) {
	path := [][2]int{{row, col}}
	for {
		last := path[len(path)-1]
		r := s.findInCol(last[1], cellStar)
		if r < 0 {
			break
		}
		path = append(path, [2]int{r, last[1]})
		c := s.findInRow(r, cellPrime)
		if c < 0 {
			break // unreachable for a consistent mask: a starred row on the path is covered and primed
		}
		path = append(path, [2]int{r, c})
	}

	for _, p := range path {
		k := s.at(p[0], p[1])
		switch s.mask[k] {
		case cellStar:
			s.mask[k] = cellPlain
		case cellPrime:
			s.mask[k] = cellStar
		}
	}
	for k := range s.mask {
		if s.mask[k] == cellPrime {
			s.mask[k] = cellPlain
		}
	}
	s.clearCovers()
	s.coverStarredColumns()
}

// extract is step 6.
func (s *munkres) extract() []int {
	out := make([]int, s.n)
	for i := 0; i < s.n; i++ {
		out[i] = s.findInRow(i, cellStar)
		if out[i] < 0 {
			out[i] = Unassigned
		}
	}

	return out
}

// TotalCost sums cost[i][assignment[i]] over the original matrix, skipping
// Unassigned rows. len(assignment) must not exceed cost.Rows().
//
// Complexity: O(n).
func TotalCost(cost matrix.Matrix, assignment []int) (float64, error) {
	if err := matrix.ValidateNotNil(cost); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}
	if len(assignment) > cost.Rows() {
		return 0, fmt.Errorf("%w: %w", ErrInvalidShape, matrix.ErrDimensionMismatch)
	}
	var total float64
	for i, j := range assignment {
		if j == Unassigned {
			continue
		}
		v, err := cost.At(i, j)
		if err != nil {
			return 0, err
		}
		total += v
	}

	return total, nil
}
