// Package selection implements the immediate-selection propagator: a
// fixed-point pass that converts disjunctions into conjunctions whenever
// the distance matrix proves one orientation is the only feasible one, and
// moves flex pairs that pass the slack check into parallelism.
package selection

import (
	"github.com/chemoseq/rcpsp/distmatrix"
	"github.com/chemoseq/rcpsp/scheme"
)

// Result carries the propagator's output: the distance matrix it
// stabilized last (so callers can reuse it for bound computation without
// rebuilding), and whether any pair was reclassified.
type Result struct {
	Matrix  *distmatrix.Matrix
	Changed bool
}

// Apply runs immediate selection on s to a fixed point, mutating s in
// place. It returns ErrInfeasible the moment any rebuild of the distance
// matrix proves a positive cycle.
//
// Stage 1: rebuild the distance matrix and stabilize it.
// Stage 2: compute heads/tails.
// Stage 3: for each D-pair, fix the orientation the duration/slack
// inequality forces, if any. A NegInf matrix entry means "no path
// computed yet" and is treated as insufficient information to fix
// anything — the same role +Inf played in the original shortest-path
// convention this was translated from (see SPEC_FULL.md §10.5).
// Stage 4: for each F-pair, parallelize when both directions have enough
// slack to guarantee overlap is safe.
// Stage 5: if any pair changed, rebuild the matrix and repeat from Stage 2;
// otherwise stop.
//
// The symmetric-triples extension the original source sketches is left
// unimplemented, matching spec.md §4.5/§9: it is documented as optional
// and the source's own version never runs (its body is a no-op).
func Apply(s *scheme.Scheme) (Result, error) {
	inst := s.Instance()

	m := distmatrix.BuildFrom(s)
	if err := m.FloydWarshall(); err != nil {
		return Result{}, ErrInfeasible
	}

	anyChange := false

	for {
		heads, _ := m.HeadsTails(inst.Source, inst.Sink)
		passChanged := false

		var p scheme.Pair
		for _, p = range s.DPairs() {
			i, j := p.Lo, p.Hi
			pi := float64(inst.Activities[i].Duration)
			pj := float64(inst.Activities[j].Duration)

			dij, dji := m.At(i, j), m.At(j, i)
			rj, ri := heads[j], heads[i]

			switch {
			case dij != distmatrix.NegInf && pi+pj > dij-rj:
				if err := s.AddConjunction(i, j); err == nil {
					passChanged = true
				}
			case dji != distmatrix.NegInf && pi+pj > dji-ri:
				if err := s.AddConjunction(j, i); err == nil {
					passChanged = true
				}
			}
		}

		for _, p = range s.FPairs() {
			i, j := p.Lo, p.Hi
			pi := float64(inst.Activities[i].Duration)
			pj := float64(inst.Activities[j].Duration)

			dij, dji := m.At(i, j), m.At(j, i)
			// NegInf (no known path either way) imposes no constraint at
			// all between i and j, so it trivially clears the slack
			// check — the mirror image of Stage 3, where the same
			// sentinel means "not enough to force a decision".
			dijClear := dij == distmatrix.NegInf || dij >= -(pj-1)
			djiClear := dji == distmatrix.NegInf || dji >= -(pi-1)
			if dijClear && djiClear {
				if err := s.AddParallelity(i, j); err == nil {
					passChanged = true
				}
			}
		}

		if !passChanged {
			break
		}
		anyChange = true

		m = distmatrix.BuildFrom(s)
		if err := m.FloydWarshall(); err != nil {
			return Result{}, ErrInfeasible
		}
	}

	return Result{Matrix: m, Changed: anyChange}, nil
}
