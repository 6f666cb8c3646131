package hungarian_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvassign/hungarian"
	"github.com/katalvlaran/lvassign/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const costDelta = 1e-6

// isPermutation reports whether a maps rows bijectively onto 0..n-1.
func isPermutation(a []int, n int) bool {
	if len(a) != n {
		return false
	}
	seen := make([]bool, n)
	for _, j := range a {
		if j < 0 || j >= n || seen[j] {
			return false
		}
		seen[j] = true
	}

	return true
}

// mustDense builds a *matrix.Dense or fails the test.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// TestSolveAssignment_KnownOptima covers the hand-checkable instances.
func TestSolveAssignment_KnownOptima(t *testing.T) {
	cases := []struct {
		name string
		cost [][]float64
		want []int
	}{
		{"single", [][]float64{{5}}, []int{0}},
		{"diagonal-cheap", [][]float64{{1, 2}, {2, 1}}, []int{0, 1}},
		{"identity-like", [][]float64{{0, 9, 9}, {9, 0, 9}, {9, 9, 0}}, []int{0, 1, 2}},
		{"anti-diagonal", [][]float64{{9, 1}, {1, 9}}, []int{1, 0}},
		{"three-by-three", [][]float64{{4, 1, 3}, {2, 0, 5}, {3, 2, 2}}, []int{1, 0, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := hungarian.SolveAssignment(tc.cost)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestSolve_CostOfObviousOptimum checks the reported total against the original matrix.
func TestSolve_CostOfObviousOptimum(t *testing.T) {
	res, err := hungarian.Solve(mustDense(t, [][]float64{{1, 2}, {2, 1}}), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, res.Assignment)
	assert.Equal(t, 2.0, res.Cost, "[0,1] costs 2, not 4")
}

// TestSolveAssignment_Empty verifies n == 0 returns an empty, non-nil slice.
func TestSolveAssignment_Empty(t *testing.T) {
	got, err := hungarian.SolveAssignment(nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// TestSolve_Degenerate covers all-equal rows and constant matrices.
func TestSolve_Degenerate(t *testing.T) {
	for _, rows := range [][][]float64{
		{{3, 3, 3}, {3, 3, 3}, {3, 3, 3}},
		{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}},
		{{0, 0}, {0, 0}},
		{{-4, -2}, {-1, -8}},
	} {
		m := mustDense(t, rows)
		res, err := hungarian.Solve(m, nil)
		require.NoError(t, err)
		assert.True(t, isPermutation(res.Assignment, len(rows)), "got %v", res.Assignment)

		ref, err := hungarian.BruteForce(m, hungarian.Minimize)
		require.NoError(t, err)
		assert.InDelta(t, ref.Cost, res.Cost, costDelta)
	}
}

// TestSolve_InvalidShape ensures malformed input fails fast.
func TestSolve_InvalidShape(t *testing.T) {
	_, err := hungarian.SolveAssignment([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, hungarian.ErrInvalidShape)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = hungarian.SolveAssignment([][]float64{{1, 2, 3}, {4, 5, 6}})
	assert.ErrorIs(t, err, hungarian.ErrInvalidShape)

	_, err = hungarian.Solve(nil, nil)
	assert.ErrorIs(t, err, hungarian.ErrInvalidShape)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = hungarian.SolveAssignment([][]float64{{math.NaN()}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestSolve_BadOptions ensures option validation runs before any work.
func TestSolve_BadOptions(t *testing.T) {
	m := mustDense(t, [][]float64{{1}})

	_, err := hungarian.Solve(m, &hungarian.Options{Objective: hungarian.Objective(9)})
	assert.ErrorIs(t, err, hungarian.ErrBadOptions)

	_, err = hungarian.Solve(m, &hungarian.Options{Eps: -1})
	assert.ErrorIs(t, err, hungarian.ErrBadOptions)
}

// TestSolve_DoesNotMutateInput checks the caller's matrix survives the reductions.
func TestSolve_DoesNotMutateInput(t *testing.T) {
	rows := [][]float64{{7, 3, 9}, {2, 8, 4}, {6, 5, 1}}
	m := mustDense(t, rows)

	_, err := hungarian.Solve(m, nil)
	require.NoError(t, err)
	assert.Equal(t, rows, m.ToRows())
}

// TestSolve_MatchesBruteForce_IntegerCosts cross-checks random integer instances.
func TestSolve_MatchesBruteForce_IntegerCosts(t *testing.T) {
	var seed int64
	for n := 1; n <= 5; n++ {
		for seed = 1; seed <= 40; seed++ {
			m, err := matrix.NewRandomCost(n, 9, seed)
			require.NoError(t, err)

			res, err := hungarian.Solve(m, nil)
			require.NoError(t, err)
			require.True(t, isPermutation(res.Assignment, n), "n=%d seed=%d got %v", n, seed, res.Assignment)

			ref, err := hungarian.BruteForce(m, hungarian.Minimize)
			require.NoError(t, err)
			assert.InDelta(t, ref.Cost, res.Cost, costDelta, "n=%d seed=%d\n%s", n, seed, m)
		}
	}
}

// TestSolve_MatchesBruteForce_RealCosts uses fractional and negative costs.
func TestSolve_MatchesBruteForce_RealCosts(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := 1 + r.Intn(5)
		rows := make([][]float64, n)
		for i := range rows {
			rows[i] = make([]float64, n)
			for j := range rows[i] {
				rows[i][j] = r.Float64()*200 - 100
			}
		}
		m := mustDense(t, rows)

		res, err := hungarian.Solve(m, nil)
		require.NoError(t, err)
		require.True(t, isPermutation(res.Assignment, n))

		ref, err := hungarian.BruteForce(m, hungarian.Minimize)
		require.NoError(t, err)
		assert.InDelta(t, ref.Cost, res.Cost, costDelta, "trial %d", trial)
	}
}

// TestSolve_Maximize cross-checks the reflected objective.
func TestSolve_Maximize(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 2}, {2, 1}})
	opts := hungarian.DefaultOptions()
	opts.Objective = hungarian.Maximize

	res, err := hungarian.Solve(m, &opts)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, res.Assignment)
	assert.Equal(t, 4.0, res.Cost)

	var seed int64
	for seed = 1; seed <= 30; seed++ {
		rm, err := matrix.NewRandomCost(4, 30, seed)
		require.NoError(t, err)
		got, err := hungarian.Solve(rm, &opts)
		require.NoError(t, err)
		ref, err := hungarian.BruteForce(rm, hungarian.Maximize)
		require.NoError(t, err)
		assert.InDelta(t, ref.Cost, got.Cost, costDelta, "seed %d", seed)
	}
}

// TestSolve_SmallMagnitudeCosts covers matrices whose entries sit below DefaultEps.
func TestSolve_SmallMagnitudeCosts(t *testing.T) {
	cases := []struct {
		name string
		cost [][]float64
		want []int
	}{
		{"two-by-two", [][]float64{{1e-10, 0}, {0, 1e-10}}, []int{1, 0}},
		{"three-by-three", [][]float64{
			{3e-10, 1e-10, 2e-10},
			{1e-10, 3e-10, 3e-10},
			{2e-10, 2e-10, 1e-10},
		}, []int{1, 0, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := mustDense(t, tc.cost)
			res, err := hungarian.Solve(m, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Assignment)

			ref, err := hungarian.BruteForce(m, hungarian.Minimize)
			require.NoError(t, err)
			assert.Equal(t, ref.Cost, res.Cost)
		})
	}
}

// TestSolve_ScaleInvariant multiplies random matrices by constants far from 1.
func TestSolve_ScaleInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, scale := range []float64{1e-12, 1e-6, 1, 1e9} {
		for trial := 0; trial < 50; trial++ {
			n := 1 + r.Intn(5)
			rows := make([][]float64, n)
			for i := range rows {
				rows[i] = make([]float64, n)
				for j := range rows[i] {
					rows[i][j] = (1 + r.Float64()*99) * scale
				}
			}
			m := mustDense(t, rows)

			res, err := hungarian.Solve(m, nil)
			require.NoError(t, err)
			require.True(t, isPermutation(res.Assignment, n))

			ref, err := hungarian.BruteForce(m, hungarian.Minimize)
			require.NoError(t, err)
			assert.InEpsilon(t, ref.Cost, res.Cost, 1e-6, "scale %g trial %d", scale, trial)
		}
	}
}

// failingMatrix serves the first limit reads and fails every read after that.
type failingMatrix struct {
	*matrix.Dense
	reads, limit int
}

func (f *failingMatrix) At(i, j int) (float64, error) {
	f.reads++
	if f.reads > f.limit {
		return 0, matrix.ErrOutOfRange
	}

	return f.Dense.At(i, j)
}

// TestSolve_ReadErrorPropagates checks that At errors after validation are returned.
func TestSolve_ReadErrorPropagates(t *testing.T) {
	rows := [][]float64{{1, 2}, {2, 1}}

	// ValidateFinite reads every entry once; the solver's own copy fails.
	_, err := hungarian.Solve(&failingMatrix{Dense: mustDense(t, rows), limit: 4}, nil)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = hungarian.BruteForce(&failingMatrix{Dense: mustDense(t, rows), limit: 4}, hungarian.Minimize)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestBruteForce_TooLarge guards the factorial blow-up.
func TestBruteForce_TooLarge(t *testing.T) {
	m, err := matrix.NewDense(hungarian.MaxBruteForceSize+1, hungarian.MaxBruteForceSize+1)
	require.NoError(t, err)

	_, err = hungarian.BruteForce(m, hungarian.Minimize)
	assert.ErrorIs(t, err, hungarian.ErrTooLarge)
}

// TestTotalCost skips unassigned rows and rejects oversize assignments.
func TestTotalCost(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 2}, {3, 4}})

	total, err := hungarian.TotalCost(m, []int{1, hungarian.Unassigned})
	require.NoError(t, err)
	assert.Equal(t, 2.0, total)

	_, err = hungarian.TotalCost(m, []int{0, 1, 0})
	assert.ErrorIs(t, err, hungarian.ErrInvalidShape)

	_, err = hungarian.TotalCost(m, []int{2})
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestObjective_String covers the flag spelling used by the CLI.
func TestObjective_String(t *testing.T) {
	assert.Equal(t, "min", hungarian.Minimize.String())
	assert.Equal(t, "max", hungarian.Maximize.String())
	assert.Equal(t, "unknown", hungarian.Objective(7).String())
}
