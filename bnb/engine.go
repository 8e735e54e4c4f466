// Package bnb implements the best-first Branch-and-Bound engine: a
// priority queue of search nodes, incumbent tracking, and the expansion
// loop that drives scheme, distmatrix, psgs, bounds, selection, and branch
// toward a minimal-makespan schedule.
package bnb

import (
	"container/heap"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/chemoseq/rcpsp/bounds"
	"github.com/chemoseq/rcpsp/branch"
	"github.com/chemoseq/rcpsp/distmatrix"
	"github.com/chemoseq/rcpsp/psgs"
	"github.com/chemoseq/rcpsp/scheme"
	"github.com/chemoseq/rcpsp/selection"
)

// logCadence is how often Solve reports progress, matching the original
// CLI's every-100-nodes printout (now a structured log line).
const logCadence = 100

// unboundedTimeLimit is the sentinel timeLimit NewEngine starts with when
// WithTimeLimit is never called. It must stay distinct from the zero
// value: spec.md's time_limit=0 is a literal immediate timeout (elapsed
// >= 0 is true on the very first check), not "unlimited".
const unboundedTimeLimit time.Duration = -1

// Stats summarizes one Solve run.
type Stats struct {
	RunID         string
	NodesExplored int
	NodesPruned   int
	TimeSeconds   float64
	Optimal       bool
	BestMakespan  float64
}

// Solution is the result of one Solve call: the best makespan found (+Inf
// if no feasible leaf was reached), its concrete schedule (nil in that
// case), and run statistics.
type Solution struct {
	Makespan float64
	Schedule psgs.Cronograma
	Stats    Stats
}

// Engine runs the Branch-and-Bound search. The zero value is not usable;
// construct with NewEngine.
type Engine struct {
	log       *zap.SugaredLogger
	timeLimit time.Duration

	nodesExplored prometheus.Counter
	nodesPruned   prometheus.Counter
	bestMakespan  prometheus.Gauge
}

// NewEngine builds an Engine with the given options. With no options, it
// runs with a nop logger, no deadline, and no metrics.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{log: zap.NewNop().Sugar(), timeLimit: unboundedTimeLimit}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Solve runs best-first Branch-and-Bound over s until the queue is
// exhausted (proved optimal) or the time limit elapses (incumbent
// reported, Optimal=false). s is mutated by the search (every node clones
// before mutating, but the root scheme itself is handed to the first
// node without copying); callers that need the original untouched should
// pass a clone.
//
// Expansion loop (spec.md §4.7):
//  1. deadline check
//  2. pop minimum-LB node
//  3. prune if its recorded LB already meets or exceeds the incumbent
//  4. run immediate selection; prune on infeasibility
//  5. recompute bounds from the selection's stabilized matrix
//  6. accept as incumbent if it's a leaf (D empty) with a better UB
//  7. prune if the recomputed LB meets or exceeds the incumbent
//  8. branch, bound each child, enqueue only if its LB beats the incumbent
func (e *Engine) Solve(s *scheme.Scheme) (Solution, error) {
	if s == nil {
		return Solution{}, ErrNoActivities
	}

	start := time.Now()
	runID := uuid.NewString()

	incumbentMakespan := math.Inf(1)
	var incumbentNode *branch.Node

	pq := &priorityQueue{}
	heap.Init(pq)
	seq := 0
	push := func(n *branch.Node) {
		heap.Push(pq, &queueItem{node: n, seq: seq})
		seq++
	}
	push(branch.Root(s))

	explored, pruned := 0, 0
	timedOut := false

	for pq.Len() > 0 {
		if e.timeLimit >= 0 && time.Since(start) >= e.timeLimit {
			timedOut = true
			e.log.Warnw("bnb time limit reached", "run_id", runID, "explored", explored)
			break
		}

		item := heap.Pop(pq).(*queueItem)
		node := item.node
		explored++
		if e.nodesExplored != nil {
			e.nodesExplored.Inc()
		}

		if explored%logCadence == 0 {
			e.log.Infow("bnb progress", "run_id", runID, "explored", explored, "pruned", pruned,
				"elapsed_seconds", time.Since(start).Seconds(), "best_makespan", incumbentMakespan)
		}

		if node.LowerBound >= incumbentMakespan {
			pruned++
			e.countPrune()
			continue
		}

		res, err := selection.Apply(node.Scheme)
		if err != nil {
			pruned++
			e.countPrune()
			continue
		}

		lb, err := bounds.Lower(node.Scheme, res.Matrix)
		if err != nil {
			pruned++
			e.countPrune()
			continue
		}
		ub := bounds.Upper(node.Scheme, e.log)
		node.LowerBound = float64(bounds.Clamp(lb, ub))
		node.UpperBound = ub

		if node.Scheme.DEmpty() {
			if ub < incumbentMakespan {
				incumbentMakespan = ub
				incumbentNode = node
				if e.bestMakespan != nil {
					e.bestMakespan.Set(ub)
				}
			}
			continue
		}

		if node.LowerBound >= incumbentMakespan {
			pruned++
			e.countPrune()
			continue
		}

		heads, _ := res.Matrix.HeadsTails(node.Scheme.Instance().Source, node.Scheme.Instance().Sink)
		pair, ok := branch.SelectDisjunctionWeighted(node.Scheme, heads)
		if !ok {
			continue
		}

		fwd, rev, err := branch.CreateBranches(node, pair)
		if err != nil {
			e.log.Warnw("bnb branch commit rejected", "run_id", runID, "pair", pair, "error", err)
			continue
		}

		for _, child := range []*branch.Node{fwd, rev} {
			if e.enqueueIfPromising(child, incumbentMakespan, push) {
				continue
			}
			pruned++
			e.countPrune()
		}
	}

	elapsed := time.Since(start)
	stats := Stats{
		RunID:         runID,
		NodesExplored: explored,
		NodesPruned:   pruned,
		TimeSeconds:   elapsed.Seconds(),
		Optimal:       !timedOut,
		BestMakespan:  incumbentMakespan,
	}

	var schedule psgs.Cronograma
	if incumbentNode != nil {
		schedule, _, _ = psgs.Run(incumbentNode.Scheme, e.log)
	}

	return Solution{Makespan: incumbentMakespan, Schedule: schedule, Stats: stats}, nil
}

func (e *Engine) countPrune() {
	if e.nodesPruned != nil {
		e.nodesPruned.Inc()
	}
}

// enqueueIfPromising builds a fresh distance matrix for child, computes
// its lower bound, and pushes it only if that bound still beats the
// incumbent. Full immediate selection runs again when the node is
// eventually popped; this is a cheap early filter, not a second
// propagation pass.
func (e *Engine) enqueueIfPromising(child *branch.Node, incumbent float64, push func(*branch.Node)) bool {
	m := distmatrix.BuildFrom(child.Scheme)
	if err := m.FloydWarshall(); err != nil {
		return false
	}

	lb, err := bounds.Lower(child.Scheme, m)
	if err != nil {
		return false
	}
	if float64(lb) >= incumbent {
		return false
	}

	child.LowerBound = float64(lb)
	push(child)
	return true
}
