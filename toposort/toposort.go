// Package toposort provides a deterministic topological ordering used
// wherever the scheduler needs a stable linearization of the conjunction
// relation. The critical-path lower bound walks activities in this order;
// heads and tails are read off the distance matrix instead.
package toposort

import "sort"

// three-color DFS state, mirroring the cycle/topological-sort machinery
// used elsewhere in the search core.
type color uint8

const (
	white color = iota
	gray
	black
)

// Sort returns a topological ordering of ids consistent with succ (a
// directed edge u -> v means u must precede v). Ties — vertices with no
// ordering constraint between them — are settled by the DFS visit order,
// not by ascending id in the output (unrelated ids 0, 1, 2 come out as
// 2, 1, 0); the same (ids, succ) pair always yields the same order.
//
// Sort visits ids and successors in ascending order and performs a
// post-order DFS, reversing the finish order at the end; a Gray re-visit
// proves a cycle.
func Sort(ids []int, succ func(int) []int) ([]int, error) {
	sorted := make([]int, len(ids))
	copy(sorted, ids)
	sort.Ints(sorted)

	colors := make(map[int]color, len(sorted))
	order := make([]int, 0, len(sorted))
	cyclic := false

	var visit func(int)
	visit = func(u int) {
		colors[u] = gray
		var vs []int = succ(u)
		sort.Ints(vs)
		var v int
		for _, v = range vs {
			switch colors[v] {
			case gray:
				cyclic = true
			case white:
				visit(v)
			}
		}
		colors[u] = black
		order = append(order, u)
	}

	var id int
	for _, id = range sorted {
		if colors[id] == white {
			visit(id)
		}
	}

	if cyclic {
		return nil, ErrCycle
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, nil
}
