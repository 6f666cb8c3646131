package cbba

import (
	"fmt"
	"sort"
)

// CBBA — bundle allocation round
//
// Description:
//
//	One round turns the current agents and the task set into a conflict-free
//	allocation. Each phase is a pure transform: it returns a fresh agent
//	slice (same order as its input) and never mutates its arguments.
//
// Round Outline:
//  1. BuildBids         — every agent bids Valuation.Evaluate on every task.
//  2. AssignBundles     — each agent claims its top-Capacity bids (stable
//     descending sort, ties by task order), ignoring other agents.
//  3. Consensus         — each contested task stays with its strictly highest
//     bidder; equal bids go to the lowest agent ID.
//  4. BackfillLeftovers — agents in ascending ID order fill remaining
//     capacity with their best-ranked tasks nobody holds.
//
// Invariants after Advance:
//   - no task appears in two bundles;
//   - len(Bundle) ≤ max(Capacity, 0) for every agent;
//   - a kept task was bid at least as high by its holder as by any other
//     agent that claimed it in phase 2.
//
// Complexity:
//
//	Time   = O(A·T·log T) per round (A agents, T tasks)
//	Memory = O(A·T)

// Advance runs one full round: BuildBids → AssignBundles → Consensus →
// BackfillLeftovers. A nil valuation means RewardValuation.
func Advance(agents []Agent, tasks []Task, valuation Valuation) []Agent {
	bid := BuildBids(agents, tasks, valuation)
	claimed := AssignBundles(bid, tasks)
	resolved := Consensus(claimed)

	return BackfillLeftovers(resolved, tasks)
}

// BuildBids returns copies of agents whose bid tables hold one bid per task,
// in task order. Bundles are carried over unchanged.
// Complexity: O(A·T) evaluations.
func BuildBids(agents []Agent, tasks []Task, valuation Valuation) []Agent {
	if valuation == nil {
		valuation = RewardValuation{}
	}
	out := make([]Agent, len(agents))
	for i, a := range agents {
		next := a.Clone()
		next.Bids = make(Bids, len(tasks))
		for j, t := range tasks {
			next.Bids[j] = Bid{TaskID: t.ID, Value: valuation.Evaluate(a, t)}
		}
		out[i] = next
	}

	return out
}

// AssignBundles replaces every bundle with the agent's top-Capacity tasks by
// bid. Bids on ids missing from tasks are skipped. Agents may over-claim:
// the same task can land in several bundles.
// Complexity: O(A·T·log T).
func AssignBundles(agents []Agent, tasks []Task) []Agent {
	byID := indexTasks(tasks)
	out := make([]Agent, len(agents))
	for i, a := range agents {
		next := a.Clone()
		next.Bundle = make([]Task, 0, a.limit())
		for _, bid := range rankBids(a.Bids) {
			if len(next.Bundle) >= a.limit() {
				break
			}
			if t, ok := byID[bid.TaskID]; ok {
				next.Bundle = append(next.Bundle, t)
			}
		}
		out[i] = next
	}

	return out
}

// Consensus keeps every task only in the bundle of its highest bidder.
// Agents are scanned in ascending ID order and a later agent wins only with
// a strictly greater bid, so ties go to the lowest ID whatever the slice
// order. A task without a bid entry counts as a zero bid.
// Complexity: O(A·B·T) with B the bundle size (bid lookups are linear).
func Consensus(agents []Agent) []Agent {
	type claim struct {
		agent int // index into agents
		bid   float64
	}
	winners := make(map[int]claim)
	for _, idx := range canonicalOrder(agents) {
		a := agents[idx]
		for _, t := range a.Bundle {
			bid, _ := a.Bids.Get(t.ID)
			if cur, ok := winners[t.ID]; !ok || bid > cur.bid {
				winners[t.ID] = claim{agent: idx, bid: bid}
			}
		}
	}

	out := make([]Agent, len(agents))
	for i, a := range agents {
		next := a.Clone()
		next.Bundle = make([]Task, 0, len(a.Bundle))
		for _, t := range a.Bundle {
			if winners[t.ID].agent == i {
				next.Bundle = append(next.Bundle, t)
			}
		}
		out[i] = next
	}

	return out
}

// BackfillLeftovers lets agents, in ascending ID order, top up their bundles
// from their bid ranking with tasks that no agent holds yet. The claimed set
// is shared, so an earlier agent's pick is unavailable to later ones.
// Complexity: O(A·T·log T).
func BackfillLeftovers(agents []Agent, tasks []Task) []Agent {
	byID := indexTasks(tasks)
	taken := make(map[int]struct{})
	for _, a := range agents {
		for _, t := range a.Bundle {
			taken[t.ID] = struct{}{}
		}
	}

	out := cloneAgents(agents)
	if out == nil {
		out = []Agent{}
	}
	for _, idx := range canonicalOrder(agents) {
		next := &out[idx]
		for _, bid := range rankBids(next.Bids) {
			if len(next.Bundle) >= next.limit() {
				break
			}
			if _, held := taken[bid.TaskID]; held {
				continue
			}
			if t, ok := byID[bid.TaskID]; ok {
				next.Bundle = append(next.Bundle, t)
				taken[t.ID] = struct{}{}
			}
		}
	}

	return out
}

// Validate checks the allocation invariants: no task in two bundles and no
// bundle above its agent's capacity (negative capacity counts as zero).
func Validate(agents []Agent) error {
	holder := make(map[int]int)
	for _, a := range agents {
		if len(a.Bundle) > a.limit() {
			return fmt.Errorf("agent %d holds %d tasks, capacity %d: %w",
				a.ID, len(a.Bundle), a.Capacity, ErrOverCapacity)
		}
		for _, t := range a.Bundle {
			if prev, ok := holder[t.ID]; ok {
				return fmt.Errorf("task %d held by agents %d and %d: %w", t.ID, prev, a.ID, ErrDoubleAssigned)
			}
			holder[t.ID] = a.ID
		}
	}

	return nil
}

// rankBids returns the bids sorted by value descending; equal values keep
// their table order (task order).
func rankBids(b Bids) Bids {
	ranked := b.Clone()
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })

	return ranked
}

// canonicalOrder returns agent indices sorted by ascending ID; equal IDs keep
// slice order.
func canonicalOrder(agents []Agent) []int {
	order := make([]int, len(agents))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return agents[order[i]].ID < agents[order[j]].ID })

	return order
}

// indexTasks maps task id → task.
func indexTasks(tasks []Task) map[int]Task {
	byID := make(map[int]Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	return byID
}
