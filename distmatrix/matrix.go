// Package distmatrix implements the dense all-pairs longest-path matrix the
// rest of the search core reads heads, tails, and reachability from.
//
// Convention (binding for this implementation; see SPEC_FULL.md §10.1):
// longest-path semantics, `max` relaxation, positive activity durations as
// edge weights, NegInf for "no path yet", and a positive diagonal entry as
// the sole infeasibility signal. The original source mixed a `min`
// relaxation with a positive-diagonal check that only makes sense for
// longest paths; this package commits to one coherent convention throughout.
package distmatrix

import (
	"math"

	"github.com/chemoseq/rcpsp/scheme"
)

// NegInf is the "no path" sentinel used for every off-diagonal entry until
// a conjunction establishes reachability.
const NegInf = math.Inf(-1)

// Matrix is a dense n x n longest-path matrix over a fixed set of activity
// ids, backed by a row-major flat slice.
type Matrix struct {
	ids  []int
	idx  map[int]int
	n    int
	data []float64
}

// New allocates a Matrix over ids with a zero diagonal and NegInf
// everywhere else. ids need not be sorted; BuildFrom always passes the
// instance's sorted id list.
func New(ids []int) *Matrix {
	n := len(ids)
	m := &Matrix{
		ids:  append([]int(nil), ids...),
		idx:  make(map[int]int, n),
		n:    n,
		data: make([]float64, n*n),
	}

	var i int
	for i = range m.ids {
		m.idx[m.ids[i]] = i
	}
	for i = 0; i < n*n; i++ {
		m.data[i] = NegInf
	}
	for i = 0; i < n; i++ {
		m.data[i*n+i] = 0
	}

	return m
}

// BuildFrom initializes a Matrix from a scheme's current conjunctions: the
// diagonal is 0, M[i][j] = duration(i) for every direct i -> j in C, and
// NegInf elsewhere.
func BuildFrom(s *scheme.Scheme) *Matrix {
	inst := s.Instance()
	m := New(inst.IDs())

	var i, j int
	for _, i = range inst.IDs() {
		w := float64(inst.Activities[i].Duration)
		for _, j = range s.Successors(i) {
			if existing := m.At(i, j); w > existing {
				m.Set(i, j, w)
			}
		}
	}

	return m
}

// At returns the longest-path length from activity id a to id b.
func (m *Matrix) At(a, b int) float64 { return m.data[m.idx[a]*m.n+m.idx[b]] }

// Set assigns the longest-path length from a to b directly, bypassing
// relaxation. Used only during construction.
func (m *Matrix) Set(a, b int, v float64) { m.data[m.idx[a]*m.n+m.idx[b]] = v }

// IDs returns the activity ids this matrix is indexed over, in the order
// used internally. Callers must not mutate the returned slice.
func (m *Matrix) IDs() []int { return m.ids }

// FloydWarshall stabilizes the matrix into all-pairs longest paths with the
// fixed k -> i -> j loop order. After the full relaxation it returns
// ErrPositiveCycle if any diagonal entry is positive; callers must then
// discard the matrix.
func (m *Matrix) FloydWarshall() error {
	n := m.n
	var k, i, j int
	var ik, kj, cand float64
	for k = 0; k < n; k++ {
		for i = 0; i < n; i++ {
			ik = m.data[i*n+k]
			if ik == NegInf {
				continue
			}
			for j = 0; j < n; j++ {
				kj = m.data[k*n+j]
				if kj == NegInf {
					continue
				}
				cand = ik + kj
				if cand > m.data[i*n+j] {
					m.data[i*n+j] = cand
				}
			}
		}
	}

	for i = 0; i < n; i++ {
		if m.data[i*n+i] > 0 {
			return ErrPositiveCycle
		}
	}

	return nil
}

// UpdateWithConjunction incrementally folds a freshly committed edge
// a -> b (weight = duration(a)) into an already-stabilized matrix: for
// every u, v it relaxes M[u][v] via M[u][a] + weight + M[b][v]. O(n^2).
//
// Returns ErrPositiveCycle if the new edge closes a positive cycle; the
// matrix is left fully updated regardless (the caller is expected to prune
// the owning node, not to keep using the matrix).
func (m *Matrix) UpdateWithConjunction(a, b int, weight float64) error {
	n := m.n
	ai, bi := m.idx[a], m.idx[b]

	var u, v int
	var ua, bv, cand float64
	for u = 0; u < n; u++ {
		ua = m.data[u*n+ai]
		if ua == NegInf {
			continue
		}
		for v = 0; v < n; v++ {
			bv = m.data[bi*n+v]
			if bv == NegInf {
				continue
			}
			cand = ua + weight + bv
			if cand > m.data[u*n+v] {
				m.data[u*n+v] = cand
			}
		}
	}

	for u = 0; u < n; u++ {
		if m.data[u*n+u] > 0 {
			return ErrPositiveCycle
		}
	}

	return nil
}

// CanAdd reports whether committing a -> b (weight = duration(a)) to an
// already-stabilized matrix would keep it feasible: false iff a path
// b ~> a already exists long enough that closing it with the new edge
// produces a positive cycle.
func (m *Matrix) CanAdd(a, b int, weight float64) bool {
	back := m.At(b, a)
	if back == NegInf {
		return true
	}
	return back+weight <= 0
}

// HeadsTails returns r_i (longest path from source) and q_i (longest path
// to sink) for every id, read directly off the stabilized matrix — an
// all-pairs longest-path matrix already contains the forward/reverse DP
// results in its source row and sink column, so no separate traversal is
// needed once FloydWarshall has run. Because every edge i -> j weighs
// duration(i), tails[i] = M[i][sink] already includes i's own duration.
func (m *Matrix) HeadsTails(source, sink int) (heads, tails map[int]float64) {
	heads = make(map[int]float64, len(m.ids))
	tails = make(map[int]float64, len(m.ids))

	var id int
	for _, id = range m.ids {
		heads[id] = m.At(source, id)
		tails[id] = m.At(id, sink)
	}

	return heads, tails
}
