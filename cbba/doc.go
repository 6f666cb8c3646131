// Package cbba simulates market-based task allocation in the style of the
// Consensus-Based Bundle Algorithm (CBBA), round by round, on a small grid.
//
// 🚀 What is CBBA?
//
//	Agents bid on tasks, greedily build bundles from their best bids, then
//	agree on a single winner per contested task. The result is a
//	conflict-free allocation that is locally (not globally) optimal; for
//	the exact optimum of a one-task-per-agent problem see package hungarian.
//
// ✨ Key features:
//   - four pure phases (BuildBids, AssignBundles, Consensus,
//     BackfillLeftovers) composed by Advance
//   - pluggable bidding via Valuation (RewardValuation, DiscountedValuation)
//   - deterministic tie-breaking: equal bids go to the lowest agent ID
//   - Simulation context with an iteration cap, immutable history records,
//     board placement rules and a full Reset
//
// ⚙️ Usage:
//
//	sim, _ := cbba.NewSimulation(cbba.DefaultOptions())
//	_ = sim.LoadDefaults()
//	records, err := sim.Run()
//
// Performance:
//
//   - Time:   O(A·T·log T) per round
//   - Memory: O(A·T)
package cbba
