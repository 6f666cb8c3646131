// Package scenario loads allocation boards and assignment problems from YAML.
//
// A scenario file looks like:
//
//	grid: {width: 10, height: 10, connectivity: conn4}
//	max_iterations: 5
//	valuation: {kind: discounted, lambda: 0.9}
//	tasks:
//	  - {reward: 10, x: 1, y: 2}
//	agents:
//	  - {capacity: 2, x: 0, y: 0}
//	assignment:
//	  objective: min
//	  cost: [[4, 1, 3], [2, 0, 5], [3, 2, 2]]
//
// Missing fields take the demo defaults; unknown keys are rejected.
package scenario
