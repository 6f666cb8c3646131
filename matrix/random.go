// SPDX-License-Identifier: MIT

// Package matrix - deterministic random cost matrices.
//
// Goals:
//   - Determinism: same seed ⇒ identical matrix across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe; each call builds its own stream.
package matrix

import "math/rand"

const (
	// defaultRNGSeed is the fixed “zero” seed used when callers pass seed==0.
	defaultRNGSeed int64 = 1

	// DefaultRandomMax is the upper bound of generated integer costs.
	DefaultRandomMax = 30
)

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// NewRandomCost returns an n×n matrix of integer costs drawn uniformly from
// [1, maxValue]. maxValue<=0 falls back to DefaultRandomMax.
//
// Errors: ErrInvalidDimensions when n<=0.
// Complexity: O(n²).
func NewRandomCost(n, maxValue int, seed int64) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	if maxValue <= 0 {
		maxValue = DefaultRandomMax
	}

	r := rngFromSeed(seed)
	var i int
	for i = range m.data { // row-major fill keeps the stream order fixed
		m.data[i] = float64(r.Intn(maxValue) + 1)
	}

	return m, nil
}
