// Package lvassign is a small toolkit for allocating work to workers: an
// exact solver for square assignment problems and a round-by-round
// simulator of market-based bundle allocation.
//
// 🚀 What is lvassign?
//
//	Two complementary answers to "who does what":
//		• hungarian — Kuhn–Munkres: the exact minimum (or maximum) total cost
//		  when every worker takes exactly one task
//		• cbba      — agents bid, claim bundles up to their capacity and agree
//		  on one winner per task; locally optimal, conflict-free
//
// ✨ Why choose lvassign?
//
//   - Deterministic – seeded random matrices, fixed tie-breaking rules
//   - Pure phases – every allocation step returns fresh values
//   - Verified – the solver is cross-checked against brute force
//   - Scriptable – YAML scenarios and a CLI with an interactive mode
//
// Under the hood, everything is organized in subpackages:
//
//	matrix/    — dense cost matrices, validators, seeded random costs
//	hungarian/ — Solve, SolveAssignment, TotalCost, BruteForce
//	gridgraph/ — the grid world: placement, occupancy, distances
//	cbba/      — bids, bundles, consensus, backfill and the Simulation
//	scenario/  — YAML scenarios for both problems
//	cmd/       — the lvassign command (hungarian, cbba run, cbba tui)
//
// Quick example:
//
//	res, _ := hungarian.Solve(cost, nil)
//	sim, _ := cbba.NewSimulation(cbba.DefaultOptions())
//	_ = sim.LoadDefaults()
//	records, _ := sim.Run()
//
//	go install github.com/katalvlaran/lvassign/cmd/lvassign@latest
package lvassign
