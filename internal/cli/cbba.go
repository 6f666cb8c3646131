package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvassign/cbba"
	"github.com/katalvlaran/lvassign/internal/render"
	"github.com/katalvlaran/lvassign/internal/tui"
	"github.com/katalvlaran/lvassign/scenario"
)

func newCBBACommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cbba",
		Short: "Simulate bundle allocation rounds",
		Long: `Agents bid on tasks, claim bundles up to their capacity, resolve
conflicts by highest bid (ties to the lowest agent id) and backfill
leftover tasks. Each round is recorded in the history.`,
	}
	cmd.AddCommand(newCBBARunCommand(root))
	cmd.AddCommand(newCBBATUICommand(root))

	return cmd
}

func newCBBARunCommand(root *rootOptions) *cobra.Command {
	var iterations int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every iteration and print the history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.scenario()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("iterations") {
				s.MaxIterations = iterations
				if err := s.Validate(); err != nil {
					return err
				}
			}

			return runCBBA(cmd, root, s)
		},
	}
	cmd.Flags().IntVarP(&iterations, "iterations", "n", cbba.DefaultMaxIterations, "Number of iterations (overrides the scenario)")

	return cmd
}

func runCBBA(cmd *cobra.Command, root *rootOptions, s *scenario.Scenario) error {
	sim, err := s.Simulation(root.log())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Board(sim.Grid(), sim.Tasks(), sim.Agents()))

	records, err := sim.Run()
	if err != nil {
		return fmt.Errorf("iteration %d: %w", sim.Iteration()+1, err)
	}
	fmt.Fprint(out, render.History(records))

	assigned := 0
	for _, a := range sim.Agents() {
		assigned += len(a.Bundle)
	}
	fmt.Fprintf(out, "\nAssigned %d of %d tasks after %d iterations\n", assigned, len(sim.Tasks()), sim.Iteration())
	root.log().Info("simulation finished",
		zap.String("simulation", sim.ID().String()),
		zap.Int("iterations", sim.Iteration()),
		zap.Int("assigned", assigned))

	return nil
}

func newCBBATUICommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Step through the simulation interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.scenario()
			if err != nil {
				return err
			}
			// The TUI owns the terminal; keep logs out of it.
			sim, err := s.Simulation(zap.NewNop())
			if err != nil {
				return err
			}
			m := tui.NewModel(sim, s.Populate)

			return tui.Run(cmd.Context(), m, tea.WithAltScreen())
		},
	}
}
