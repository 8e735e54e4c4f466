// Package psgs implements the parallel serial generation schedule: a
// constructive heuristic that turns a schedule scheme into a concrete,
// resource-feasible schedule. The Branch-and-Bound engine uses its
// makespan as an upper bound at every search node.
package psgs

import (
	"sort"

	"go.uber.org/zap"

	"github.com/chemoseq/rcpsp/model"
	"github.com/chemoseq/rcpsp/scheme"
)

// Cronograma maps activity id to its assigned start time.
type Cronograma map[int]int

type activeEntry struct {
	id, start, finish int
}

// Run constructs a schedule for s. It returns ErrResourceDeadlock (and a
// nil Cronograma) when no not-yet-completed activity can be placed at the
// current time step; the caller is expected to treat that as an upper
// bound of +Inf, not a search failure. log may be nil.
//
// Stage 1: pick the root (the instance's source, with the original
// source's ambiguous-root fallback logged as a warning — see
// SPEC_FULL.md §10.2).
// Stage 2: scheduling pass in ascending id order, admitting every
// candidate whose resource and incompatibility checks both pass against
// the activities currently active in this same pass.
// Stage 3: advance time to the next completion, release newly eligible
// activities, repeat until every activity is completed.
func Run(s *scheme.Scheme, log *zap.SugaredLogger) (Cronograma, int, error) {
	inst := s.Instance()
	root := pickRoot(inst, s, log)

	schedule := make(Cronograma, len(inst.Activities))
	schedule[root] = 0
	completed := map[int]bool{root: true}

	decision := make(map[int]bool)
	var j int
	for _, j = range s.Successors(root) {
		if predecessorsCompleted(s, j, completed) {
			decision[j] = true
		}
	}

	usage := make(map[string]int)
	var active []activeEntry
	t := 0

	for len(completed) < len(inst.Activities) {
		var ids []int
		for j = range decision {
			ids = append(ids, j)
		}
		sort.Ints(ids)

		for _, j = range ids {
			act := inst.Activities[j]
			if !resourceFits(inst, usage, act) {
				continue
			}
			if conflictsWithActive(s, active, j) {
				continue
			}

			schedule[j] = t
			active = append(active, activeEntry{id: j, start: t, finish: t + act.Duration})
			addDemand(usage, act.Demand)
			delete(decision, j)
		}

		if len(active) == 0 {
			if log != nil {
				log.Warnw("psgs resource deadlock", "time", t, "completed", len(completed), "total", len(inst.Activities))
			}
			return nil, 0, ErrResourceDeadlock
		}

		next := active[0].finish
		var e activeEntry
		for _, e = range active[1:] {
			if e.finish < next {
				next = e.finish
			}
		}
		t = next

		remaining := active[:0]
		for _, e = range active {
			if e.finish <= t {
				completed[e.id] = true
				subDemand(usage, inst.Activities[e.id].Demand)
			} else {
				remaining = append(remaining, e)
			}
		}
		active = remaining

		var id int
		for _, id = range inst.IDs() {
			if _, already := schedule[id]; already || decision[id] {
				continue
			}
			if predecessorsCompleted(s, id, completed) {
				decision[id] = true
			}
		}
	}

	makespan := 0
	var id, finish int
	for id = range schedule {
		finish = schedule[id] + inst.Activities[id].Duration
		if finish > makespan {
			makespan = finish
		}
	}

	return schedule, makespan, nil
}

// pickRoot treats the unique activity with no C predecessors as the start
// of the schedule; when that is not unique it falls back to the instance's
// designated source (min id) with a logged warning, matching the original
// heuristic's defensive fallback.
func pickRoot(inst *model.Instance, s *scheme.Scheme, log *zap.SugaredLogger) int {
	var noPred []int
	var id int
	for _, id = range inst.IDs() {
		if len(s.Predecessors(id)) == 0 {
			noPred = append(noPred, id)
		}
	}

	if len(noPred) == 1 {
		return noPred[0]
	}

	if log != nil {
		log.Warnw("ambiguous initial activity, falling back to minimum id", "candidates", noPred, "fallback", inst.Source)
	}

	return inst.Source
}

func resourceFits(inst *model.Instance, usage map[string]int, act model.Activity) bool {
	var name string
	var qty int
	for name, qty = range act.Demand {
		if qty == 0 {
			continue
		}
		res, ok := inst.Resources[name]
		if !ok {
			continue
		}
		if usage[name]+qty > res.Capacity {
			return false
		}
	}
	return true
}

func conflictsWithActive(s *scheme.Scheme, active []activeEntry, j int) bool {
	var e activeEntry
	for _, e = range active {
		if s.InD(j, e.id) {
			return true
		}
	}
	return false
}

func predecessorsCompleted(s *scheme.Scheme, id int, completed map[int]bool) bool {
	var p int
	for _, p = range s.Predecessors(id) {
		if !completed[p] {
			return false
		}
	}
	return true
}

func addDemand(usage map[string]int, demand map[string]int) {
	var name string
	var qty int
	for name, qty = range demand {
		usage[name] += qty
	}
}

func subDemand(usage map[string]int, demand map[string]int) {
	var name string
	var qty int
	for name, qty = range demand {
		usage[name] -= qty
	}
}

// Makespan returns the finish time of the latest activity in c.
func Makespan(c Cronograma, inst *model.Instance) int {
	makespan := 0
	var id int
	for id = range c {
		if finish := c[id] + inst.Activities[id].Duration; finish > makespan {
			makespan = finish
		}
	}
	return makespan
}
