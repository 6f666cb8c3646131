package cbba

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvassign/gridgraph"
)

// Valuation scores a task for an agent. The pipeline ranks, resolves and
// backfills purely on these scores, so swapping the Valuation changes the
// bidding policy without touching the phases.
type Valuation interface {
	Evaluate(agent Agent, task Task) float64
}

// ValuationFunc adapts a plain function to Valuation.
type ValuationFunc func(agent Agent, task Task) float64

// Evaluate calls f(agent, task).
func (f ValuationFunc) Evaluate(agent Agent, task Task) float64 { return f(agent, task) }

// RewardValuation bids the raw task reward, independent of the agent.
type RewardValuation struct{}

// Evaluate returns task.Reward.
func (RewardValuation) Evaluate(_ Agent, task Task) float64 { return task.Reward }

// DiscountedValuation bids reward·Lambda^d where d is the grid distance
// between the agent and the task. Lambda lies in (0, 1].
type DiscountedValuation struct {
	Lambda   float64
	Distance func(a, b gridgraph.Point) int
}

// NewDiscountedValuation validates lambda and picks Manhattan distance when
// distance is nil.
func NewDiscountedValuation(lambda float64, distance func(a, b gridgraph.Point) int) (DiscountedValuation, error) {
	if math.IsNaN(lambda) || lambda <= 0 || lambda > 1 {
		return DiscountedValuation{}, fmt.Errorf("lambda %v not in (0,1]: %w", lambda, ErrBadOptions)
	}
	if distance == nil {
		distance = gridgraph.Manhattan
	}

	return DiscountedValuation{Lambda: lambda, Distance: distance}, nil
}

// Evaluate returns task.Reward * Lambda^distance(agent, task).
func (v DiscountedValuation) Evaluate(agent Agent, task Task) float64 {
	dist := v.Distance
	if dist == nil {
		dist = gridgraph.Manhattan
	}
	d := dist(agent.Position, task.Position)

	return task.Reward * math.Pow(v.Lambda, float64(d))
}
