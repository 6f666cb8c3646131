package hungarian

import (
	"math"

	"github.com/katalvlaran/lvassign/matrix"
)

// BruteForce enumerates every permutation (Heap's algorithm) and returns the
// best one for the requested objective. Ties keep the first permutation found.
// Intended as a reference oracle for small instances.
//
// Errors: ErrInvalidShape, matrix.ErrNaNInf, ErrTooLarge (n > MaxBruteForceSize),
// and any error returned by cost.At.
// Complexity: O(n·n!).
func BruteForce(cost matrix.Matrix, objective Objective) (Result, error) {
	if err := (Options{Objective: objective}).validate(); err != nil {
		return Result{}, err
	}
	n, err := validateCost(cost)
	if err != nil {
		return Result{}, err
	}
	if n > MaxBruteForceSize {
		return Result{}, ErrTooLarge
	}
	if n == 0 {
		return Result{Assignment: []int{}}, nil
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	best := make([]int, n)
	bestCost := math.Inf(1)
	if objective == Maximize {
		bestCost = math.Inf(-1)
	}

	consider := func() error {
		total, err := TotalCost(cost, perm)
		if err != nil {
			return err
		}
		if (objective == Minimize && total < bestCost) || (objective == Maximize && total > bestCost) {
			bestCost = total
			copy(best, perm)
		}

		return nil
	}

	// Iterative Heap's algorithm: c[k] is the loop counter of level k.
	c := make([]int, n)
	if err = consider(); err != nil {
		return Result{}, err
	}
	k := 0
	for k < n {
		if c[k] < k {
			if k%2 == 0 {
				perm[0], perm[k] = perm[k], perm[0]
			} else {
				perm[c[k]], perm[k] = perm[k], perm[c[k]]
			}
			if err = consider(); err != nil {
				return Result{}, err
			}
			c[k]++
			k = 0
			continue
		}
		c[k] = 0
		k++
	}

	return Result{Assignment: best, Cost: bestCost}, nil
}
