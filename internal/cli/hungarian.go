package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvassign/hungarian"
	"github.com/katalvlaran/lvassign/internal/render"
	"github.com/katalvlaran/lvassign/matrix"
	"github.com/katalvlaran/lvassign/scenario"
)

// ErrVerifyMismatch is returned by --verify when the brute-force optimum
// differs from the solver's.
var ErrVerifyMismatch = errors.New("cli: brute-force optimum differs from solver result")

type hungarianOptions struct {
	size     int
	seed     int64
	max      int
	maximize bool
	verify   bool
}

func newHungarianCommand(root *rootOptions) *cobra.Command {
	o := &hungarianOptions{}
	cmd := &cobra.Command{
		Use:   "hungarian",
		Short: "Solve an assignment problem exactly",
		Long: `Solve the assignment section of the scenario: every worker (row) gets
exactly one task (column) so that the total cost is minimal, or maximal
with --maximize.

Any of --size, --seed or --max replaces the scenario matrix with a random
one of integers in [1, max].`,
		Example: `  lvassign hungarian
  lvassign hungarian --size 6 --seed 42 --verify
  lvassign hungarian --config scenario.yaml --maximize`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHungarian(cmd, root, o)
		},
	}

	cmd.Flags().IntVar(&o.size, "size", scenario.DefaultRandomSize, "Side of the random cost matrix")
	cmd.Flags().Int64Var(&o.seed, "seed", 1, "Seed of the random cost matrix")
	cmd.Flags().IntVar(&o.max, "max", matrix.DefaultRandomMax, "Largest random cost")
	cmd.Flags().BoolVar(&o.maximize, "maximize", false, "Maximize the total instead of minimizing it")
	cmd.Flags().BoolVar(&o.verify, "verify", false, "Cross-check the optimum by brute force (n <= 8)")

	return cmd
}

func runHungarian(cmd *cobra.Command, root *rootOptions, o *hungarianOptions) error {
	s, err := root.scenario()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("size") || flags.Changed("seed") || flags.Changed("max") ||
		(s.Assignment.Cost == nil && s.Assignment.Random == nil) {
		s.Assignment.Cost = nil
		s.Assignment.Random = &scenario.RandomConfig{Size: o.size, Seed: o.seed, Max: o.max}
	}
	if o.maximize {
		s.Assignment.Objective = scenario.ObjectiveMax
	}

	cost, err := s.CostMatrix()
	if err != nil {
		return err
	}
	objective, err := s.Objective()
	if err != nil {
		return err
	}

	opts := hungarian.DefaultOptions()
	opts.Objective = objective
	res, err := hungarian.Solve(cost, &opts)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	root.log().Info("assignment solved",
		zap.Int("n", cost.Rows()),
		zap.Stringer("objective", objective),
		zap.Float64("cost", res.Cost))

	out := cmd.OutOrStdout()
	fmt.Fprint(out, render.Assignment(cost, res))

	if !o.verify {
		return nil
	}
	bf, err := hungarian.BruteForce(cost, objective)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if math.Abs(bf.Cost-res.Cost) > 1e-9*math.Max(1, math.Abs(bf.Cost)) {
		return fmt.Errorf("solver %v, brute force %v: %w", res.Cost, bf.Cost, ErrVerifyMismatch)
	}
	fmt.Fprintf(out, "Verified by brute force: %v\n", bf.Cost)

	return nil
}
