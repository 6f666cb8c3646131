package cbba

import "github.com/katalvlaran/lvassign/gridgraph"

// DefaultTasks returns the demo board's tasks.
func DefaultTasks() []Task {
	return []Task{
		{ID: 0, Reward: 10, Position: gridgraph.Point{X: 1, Y: 2}},
		{ID: 1, Reward: 20, Position: gridgraph.Point{X: 3, Y: 4}},
		{ID: 2, Reward: 15, Position: gridgraph.Point{X: 5, Y: 1}},
		{ID: 3, Reward: 12, Position: gridgraph.Point{X: 2, Y: 6}},
	}
}

// DefaultAgents returns the demo board's agents (empty bundles and bids).
func DefaultAgents() []Agent {
	return []Agent{
		{ID: 0, Capacity: 2, Bundle: []Task{}, Bids: Bids{}, Position: gridgraph.Point{X: 0, Y: 0}},
		{ID: 1, Capacity: 2, Bundle: []Task{}, Bids: Bids{}, Position: gridgraph.Point{X: 3, Y: 3}},
	}
}
