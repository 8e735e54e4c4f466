// Package bounds computes the lower and upper bounds the Branch-and-Bound
// engine prunes with: a critical-path/head-tail lower bound, a resource
// lower bound, and a p-SGS upper bound.
package bounds

import (
	"math"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/chemoseq/rcpsp/distmatrix"
	"github.com/chemoseq/rcpsp/model"
	"github.com/chemoseq/rcpsp/psgs"
	"github.com/chemoseq/rcpsp/scheme"
	"github.com/chemoseq/rcpsp/toposort"
)

// CriticalPath returns the longest duration-weighted path through C,
// ignoring resources and disjunctions entirely. It topologically sorts the
// activities by C and accumulates the longest path in a single linear
// pass, per spec.md §4.4.
func CriticalPath(s *scheme.Scheme) (int, error) {
	inst := s.Instance()
	order, err := toposort.Sort(inst.IDs(), s.Successors)
	if err != nil {
		return 0, err
	}

	dist := make(map[int]int, len(order))
	var id, v int
	for _, id = range order {
		finish := dist[id] + inst.Activities[id].Duration
		for _, v = range s.Successors(id) {
			if finish > dist[v] {
				dist[v] = finish
			}
		}
	}

	return lo.Max(lo.Values(dist)), nil
}

// Resource returns ceil(sum(duration_i * demand_i^k) / capacity_k) maxed
// over every resource k; resources with zero capacity do not restrict the
// schedule and are skipped.
func Resource(inst *model.Instance) int {
	best := 0
	var name string
	var res model.Resource
	for name, res = range inst.Resources {
		if res.Capacity == 0 {
			continue
		}
		total := 0
		var id int
		for _, id = range inst.IDs() {
			total += inst.Activities[id].Duration * inst.Activities[id].DemandFor(name)
		}
		lb := (total + res.Capacity - 1) / res.Capacity
		if lb > best {
			best = lb
		}
	}
	return best
}

// HeadTail returns max_i(r_i + p_i + q_i) using the given stabilized
// distance matrix's heads and tails. Tighter than CriticalPath once
// immediate selection has added edges the raw precedences didn't have.
// The matrix tail M[i][sink] already starts with p_i, so it equals p_i + q_i.
func HeadTail(inst *model.Instance, m *distmatrix.Matrix) int {
	heads, tails := m.HeadsTails(inst.Source, inst.Sink)

	best := 0
	var id int
	for _, id = range inst.IDs() {
		r, q := heads[id], tails[id]
		if r == distmatrix.NegInf || q == distmatrix.NegInf {
			continue
		}
		v := int(r) + int(q)
		if v > best {
			best = v
		}
	}
	return best
}

// Lower returns the combined lower bound: the max of the head/tail bound
// (when m is non-nil and stabilized) or the critical-path bound otherwise,
// and the resource bound.
func Lower(s *scheme.Scheme, m *distmatrix.Matrix) (int, error) {
	inst := s.Instance()

	var schedulingLB int
	if m != nil {
		schedulingLB = HeadTail(inst, m)
	} else {
		cp, err := CriticalPath(s)
		if err != nil {
			return 0, err
		}
		schedulingLB = cp
	}

	resourceLB := Resource(inst)
	if resourceLB > schedulingLB {
		return resourceLB, nil
	}
	return schedulingLB, nil
}

// Upper runs p-SGS on s and returns its makespan as a float64 upper bound,
// +Inf when the heuristic deadlocks (not a search failure — see psgs).
func Upper(s *scheme.Scheme, log *zap.SugaredLogger) float64 {
	_, makespan, err := psgs.Run(s, log)
	if err != nil {
		return math.Inf(1)
	}
	return float64(makespan)
}

// Clamp enforces the sandwich invariant LB <= UB: a node whose heuristic
// upper bound undercuts its proven lower bound is treated as closed at UB.
func Clamp(lb int, ub float64) int {
	if float64(lb) > ub {
		return int(ub)
	}
	return lb
}
