// Package scheme implements the four-relation schedule-scheme algebra that
// the Branch-and-Bound search mutates at every node: conjunctions (C),
// disjunctions (D), parallelism (N), and flex (F) partition every unordered
// pair of non-source/non-sink activities exactly once.
//
// A Scheme is created once per search node by cloning a parent and adding a
// single conjunction; it never mutates a sibling's or parent's state.
package scheme

import (
	"sort"

	"github.com/chemoseq/rcpsp/model"
)

// Pair is a canonical unordered activity pair with Lo < Hi. It is the key
// type for the D, N, and F relations; C is stored directed since order is
// exactly what those three relations leave undecided.
type Pair struct {
	Lo, Hi int
}

func canonical(i, j int) Pair {
	if i < j {
		return Pair{Lo: i, Hi: j}
	}
	return Pair{Lo: j, Hi: i}
}

// Scheme holds the four relations for one search node. The zero value is not
// usable; construct via New or Clone.
type Scheme struct {
	inst *model.Instance

	// succ/pred give C's adjacency in both directions so Successors and
	// Predecessors are O(out-degree) instead of a full scan.
	succ map[int]map[int]struct{}
	pred map[int]map[int]struct{}

	d map[Pair]struct{}
	n map[Pair]struct{}
	f map[Pair]struct{}
}

// Instance returns the activities/resources handle this scheme was built
// over. The returned pointer is shared, never owned by the caller.
func (s *Scheme) Instance() *model.Instance { return s.inst }

// New seeds a Scheme from an activity instance, a set of directed
// precedences (i, j meaning i before j), and a set of unordered
// incompatibilities. C receives every precedence, edges from the source and
// to the sink included; D and F are never seeded with a pair touching the
// source or sink, which lie outside the population the algebra partitions.
//
// Stage 1: seed C from precedences.
// Stage 2: seed D from incompatibilities, canonicalized and source/sink
// pairs dropped.
// Stage 3: seed F with every remaining unordered pair of real activities.
func New(inst *model.Instance, precedences [][2]int, incompatibilities [][2]int) *Scheme {
	s := &Scheme{
		inst: inst,
		succ: make(map[int]map[int]struct{}),
		pred: make(map[int]map[int]struct{}),
		d:    make(map[Pair]struct{}),
		n:    make(map[Pair]struct{}),
		f:    make(map[Pair]struct{}),
	}

	var pr [2]int
	for _, pr = range precedences {
		s.link(pr[0], pr[1])
	}

	var inc [2]int
	for _, inc = range incompatibilities {
		if s.touchesBoundary(inc[0]) || s.touchesBoundary(inc[1]) {
			continue
		}
		s.d[canonical(inc[0], inc[1])] = struct{}{}
	}

	ids := inst.RealActivityIDs()
	var i, a, b int
	for i = range ids {
		for j := i + 1; j < len(ids); j++ {
			a, b = ids[i], ids[j]
			p := canonical(a, b)
			if s.inC(p) || s.inRelation(s.d, p) || s.inRelation(s.n, p) {
				continue
			}
			s.f[p] = struct{}{}
		}
	}

	return s
}

func (s *Scheme) touchesBoundary(id int) bool {
	return id == s.inst.Source || id == s.inst.Sink
}

func (s *Scheme) inRelation(rel map[Pair]struct{}, p Pair) bool {
	_, ok := rel[p]
	return ok
}

func (s *Scheme) inC(p Pair) bool {
	if succ, ok := s.succ[p.Lo]; ok {
		if _, ok = succ[p.Hi]; ok {
			return true
		}
	}
	if succ, ok := s.succ[p.Hi]; ok {
		if _, ok = succ[p.Lo]; ok {
			return true
		}
	}
	return false
}

func (s *Scheme) link(i, j int) {
	if s.succ[i] == nil {
		s.succ[i] = make(map[int]struct{})
	}
	s.succ[i][j] = struct{}{}

	if s.pred[j] == nil {
		s.pred[j] = make(map[int]struct{})
	}
	s.pred[j][i] = struct{}{}
}

// AddConjunction commits i -> j to C and removes the canonical pair from
// whichever of D/F currently holds it. It is an error to commit a pair
// already fixed the other way in C, or already resolved into N — callers
// must consult the distance matrix before committing a direction.
func (s *Scheme) AddConjunction(i, j int) error {
	if i == j {
		return ErrSamePair
	}
	p := canonical(i, j)
	if _, ok := s.succ[j][i]; ok {
		return ErrPairAlreadyCommitted
	}
	if s.inRelation(s.n, p) {
		return ErrPairAlreadyCommitted
	}

	s.link(i, j)
	delete(s.d, p)
	delete(s.f, p)

	return nil
}

// AddDisjunction moves the canonical pair (i, j) into D, removing it from F
// if present. It is a no-op (beyond the move) when the pair is not in F.
func (s *Scheme) AddDisjunction(i, j int) error {
	if i == j {
		return ErrSamePair
	}
	p := canonical(i, j)
	delete(s.f, p)
	s.d[p] = struct{}{}

	return nil
}

// AddParallelity moves the canonical pair (i, j) into N, removing it from D
// or F if present.
func (s *Scheme) AddParallelity(i, j int) error {
	if i == j {
		return ErrSamePair
	}
	p := canonical(i, j)
	delete(s.d, p)
	delete(s.f, p)
	s.n[p] = struct{}{}

	return nil
}

// Successors returns the sorted direct C-successors of i.
func (s *Scheme) Successors(i int) []int { return sortedKeys(s.succ[i]) }

// Predecessors returns the sorted direct C-predecessors of j.
func (s *Scheme) Predecessors(j int) []int { return sortedKeys(s.pred[j]) }

func sortedKeys(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	var k int
	for k = range m {
		out = append(out, k)
	}
	sort.Ints(out)

	return out
}

// DPairs returns the sorted-by-(Lo,Hi) disjunction pairs, for deterministic
// branching selection.
func (s *Scheme) DPairs() []Pair { return sortedPairs(s.d) }

// FPairs returns the sorted-by-(Lo,Hi) flex pairs.
func (s *Scheme) FPairs() []Pair { return sortedPairs(s.f) }

// NPairs returns the sorted-by-(Lo,Hi) parallelism pairs.
func (s *Scheme) NPairs() []Pair { return sortedPairs(s.n) }

func sortedPairs(m map[Pair]struct{}) []Pair {
	out := make([]Pair, 0, len(m))
	var p Pair
	for p = range m {
		out = append(out, p)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Lo != out[b].Lo {
			return out[a].Lo < out[b].Lo
		}
		return out[a].Hi < out[b].Hi
	})

	return out
}

// InD reports whether the canonical pair (i, j) currently sits in D — the
// incompatibility check p-SGS uses to keep disjoint activities apart.
func (s *Scheme) InD(i, j int) bool { return s.inRelation(s.d, canonical(i, j)) }

// DEmpty reports whether every disjunction has been resolved — the leaf
// condition for the Branch-and-Bound search.
func (s *Scheme) DEmpty() bool { return len(s.d) == 0 }

// Clone produces an independent scheme sharing the immutable Instance
// handle. Mutating the clone never affects the receiver.
func (s *Scheme) Clone() *Scheme {
	c := &Scheme{
		inst: s.inst,
		succ: make(map[int]map[int]struct{}, len(s.succ)),
		pred: make(map[int]map[int]struct{}, len(s.pred)),
		d:    make(map[Pair]struct{}, len(s.d)),
		n:    make(map[Pair]struct{}, len(s.n)),
		f:    make(map[Pair]struct{}, len(s.f)),
	}

	var id int
	var set map[int]struct{}
	for id, set = range s.succ {
		c.succ[id] = cloneIntSet(set)
	}
	for id, set = range s.pred {
		c.pred[id] = cloneIntSet(set)
	}

	var p Pair
	for p = range s.d {
		c.d[p] = struct{}{}
	}
	for p = range s.n {
		c.n[p] = struct{}{}
	}
	for p = range s.f {
		c.f[p] = struct{}{}
	}

	return c
}

func cloneIntSet(m map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{}, len(m))
	var k int
	for k = range m {
		out[k] = struct{}{}
	}
	return out
}

// dfsColor marks vertices White (unvisited), Gray (on the current recursion
// path), or Black (fully explored) during cycle detection.
type dfsColor uint8

const (
	white dfsColor = iota
	gray
	black
)

// Acyclic reports whether C currently forms a DAG. A back-edge to a Gray
// vertex proves a positive cycle: the offending search node is infeasible.
func (s *Scheme) Acyclic() bool {
	colors := make(map[int]dfsColor, len(s.inst.Activities))

	var visit func(int) bool
	visit = func(u int) bool {
		colors[u] = gray
		var v int
		for _, v = range s.Successors(u) {
			switch colors[v] {
			case gray:
				return false
			case white:
				if !visit(v) {
					return false
				}
			}
		}
		colors[u] = black
		return true
	}

	var id int
	for _, id = range s.inst.IDs() {
		if colors[id] == white {
			if !visit(id) {
				return false
			}
		}
	}

	return true
}
