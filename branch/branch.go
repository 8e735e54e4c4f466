// Package branch implements disjunction selection and two-child expansion
// for the Branch-and-Bound search.
package branch

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/chemoseq/rcpsp/scheme"
)

// Node is one point in the search tree: a scheme plus the bookkeeping the
// engine needs for best-first ordering and path reconstruction. Node never
// owns its Parent — the back-reference exists purely for diagnostics and
// must never be mutated or traversed for ownership purposes.
type Node struct {
	Scheme *scheme.Scheme
	Depth  int
	Parent *Node
	Label  string

	LowerBound float64
	UpperBound float64
}

// Root wraps scheme s as the search tree's root node.
func Root(s *scheme.Scheme) *Node {
	return &Node{Scheme: s, Depth: 0, LowerBound: 0, UpperBound: math.Inf(1)}
}

// Path walks the parent chain from the root to n, returning the branch
// labels in root-to-n order, for diagnostics.
func (n *Node) Path() []string {
	var labels []string
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		labels = append(labels, cur.Label)
	}
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return labels
}

// SelectDisjunctionWeighted chooses the D-pair maximizing
// |r_i - r_j| + (p_i + p_j), using heads from an already-stabilized
// distance matrix. This is the default rule: it prioritizes asymmetric
// disjunctions with large commitment, tending to make one child promptly
// infeasible and accelerating pruning.
func SelectDisjunctionWeighted(s *scheme.Scheme, heads map[int]float64) (scheme.Pair, bool) {
	pairs := s.DPairs()
	if len(pairs) == 0 {
		return scheme.Pair{}, false
	}

	inst := s.Instance()
	weight := func(p scheme.Pair) float64 {
		pi := float64(inst.Activities[p.Lo].Duration)
		pj := float64(inst.Activities[p.Hi].Duration)
		return math.Abs(heads[p.Lo]-heads[p.Hi]) + pi + pj
	}

	best := lo.MaxBy(pairs, func(a, b scheme.Pair) bool { return weight(a) > weight(b) })
	return best, true
}

// SelectDisjunction is the fallback rule used when heads are unavailable:
// it picks the pair minimizing p_i + p_j, which tends to produce tighter
// early schedules.
func SelectDisjunction(s *scheme.Scheme) (scheme.Pair, bool) {
	pairs := s.DPairs()
	if len(pairs) == 0 {
		return scheme.Pair{}, false
	}

	inst := s.Instance()
	sum := func(p scheme.Pair) int {
		return inst.Activities[p.Lo].Duration + inst.Activities[p.Hi].Duration
	}

	best := lo.MinBy(pairs, func(a, b scheme.Pair) bool { return sum(a) < sum(b) })
	return best, true
}

// CreateBranches clones parent twice and commits p's two orientations, one
// per child. Both children remove p from D by construction of
// AddConjunction. Returns an error only if the scheme algebra itself
// rejects a commitment, which would indicate the caller picked a pair the
// distance matrix already ruled out — a programmer error.
func CreateBranches(parent *Node, p scheme.Pair) (forward, reverse *Node, err error) {
	childA := parent.Scheme.Clone()
	if err = childA.AddConjunction(p.Lo, p.Hi); err != nil {
		return nil, nil, fmt.Errorf("branch: committing %d->%d: %w", p.Lo, p.Hi, err)
	}

	childB := parent.Scheme.Clone()
	if err = childB.AddConjunction(p.Hi, p.Lo); err != nil {
		return nil, nil, fmt.Errorf("branch: committing %d->%d: %w", p.Hi, p.Lo, err)
	}

	forward = &Node{
		Scheme: childA,
		Depth:  parent.Depth + 1,
		Parent: parent,
		Label:  label(p.Lo, p.Hi),
	}
	reverse = &Node{
		Scheme: childB,
		Depth:  parent.Depth + 1,
		Parent: parent,
		Label:  label(p.Hi, p.Lo),
	}

	return forward, reverse, nil
}

func label(i, j int) string { return fmt.Sprintf("%d->%d", i, j) }
