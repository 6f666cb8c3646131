// Package cbba defines the tasks, agents, bid tables, history records and
// sentinel errors of the bundle-allocation simulation.
package cbba

import (
	"errors"

	"github.com/katalvlaran/lvassign/gridgraph"
)

// Sentinel errors for allocation and simulation operations.
var (
	// ErrBadOptions indicates invalid simulation or valuation options.
	ErrBadOptions = errors.New("cbba: invalid options")

	// ErrNegativeCapacity indicates an agent capacity below zero.
	ErrNegativeCapacity = errors.New("cbba: capacity must be >= 0")

	// ErrNegativeReward indicates a negative or non-finite task reward.
	ErrNegativeReward = errors.New("cbba: reward must be a finite number >= 0")

	// ErrIterationLimit indicates Step was called after MaxIterations steps.
	ErrIterationLimit = errors.New("cbba: iteration limit reached")

	// ErrDoubleAssigned indicates a task held by more than one agent.
	ErrDoubleAssigned = errors.New("cbba: task assigned to more than one agent")

	// ErrOverCapacity indicates a bundle longer than its agent's capacity.
	ErrOverCapacity = errors.New("cbba: bundle exceeds capacity")
)

// Task is a unit of work placed on the grid.
type Task struct {
	ID       int
	Reward   float64
	Position gridgraph.Point
}

// Bid is the value one agent places on one task.
type Bid struct {
	TaskID int
	Value  float64
}

// Bids is an agent's bid table, one entry per known task in task-set order.
// The order matters: it breaks ties between equal bids.
type Bids []Bid

// Get returns the bid on taskID and whether the table has one.
// Complexity: O(len(b)).
func (b Bids) Get(taskID int) (float64, bool) {
	for _, bid := range b {
		if bid.TaskID == taskID {
			return bid.Value, true
		}
	}

	return 0, false
}

// Clone returns a copy of the table (nil stays nil).
func (b Bids) Clone() Bids {
	if b == nil {
		return nil
	}
	out := make(Bids, len(b))
	copy(out, b)

	return out
}

// Agent bids on tasks and holds up to Capacity of them in its Bundle.
// Bundle order is the order in which tasks were claimed.
type Agent struct {
	ID       int
	Capacity int
	Bundle   []Task
	Bids     Bids
	Position gridgraph.Point
}

// Clone returns a deep copy of a (bundle and bid table included).
func (a Agent) Clone() Agent {
	out := a
	if a.Bundle != nil {
		out.Bundle = make([]Task, len(a.Bundle))
		copy(out.Bundle, a.Bundle)
	}
	out.Bids = a.Bids.Clone()

	return out
}

// TaskIDs lists the ids of the bundle in bundle order.
func (a Agent) TaskIDs() []int {
	ids := make([]int, len(a.Bundle))
	for i, t := range a.Bundle {
		ids[i] = t.ID
	}

	return ids
}

// limit is the effective capacity: negative capacities count as zero.
func (a Agent) limit() int {
	if a.Capacity < 0 {
		return 0
	}

	return a.Capacity
}

// HistoryRecord is the snapshot of every agent after one iteration.
// Records are never mutated once appended.
type HistoryRecord struct {
	Iteration int
	Agents    []Agent
}

// Clone returns a deep copy of the record.
func (r HistoryRecord) Clone() HistoryRecord {
	return HistoryRecord{Iteration: r.Iteration, Agents: cloneAgents(r.Agents)}
}

// cloneAgents deep-copies a slice of agents.
func cloneAgents(agents []Agent) []Agent {
	if agents == nil {
		return nil
	}
	out := make([]Agent, len(agents))
	for i := range agents {
		out[i] = agents[i].Clone()
	}

	return out
}
