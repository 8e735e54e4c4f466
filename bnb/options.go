package bnb

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures an Engine at construction time, following the
// functional-options convention the teacher's core package uses for
// Graph/Edge construction.
type Option func(*Engine)

// WithLogger sets the logger Solve reports progress and warnings through.
// A nil logger is equivalent to omitting this option.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log.Sugar()
		}
	}
}

// WithTimeLimit sets the soft wall-clock deadline. Per spec.md's
// time_limit semantics, zero is a literal immediate timeout (Solve halts
// on its first deadline check, reporting the incumbent with
// Optimal=false), not "unlimited" — omitting this option entirely is
// what gives an engine no deadline.
func WithTimeLimit(d time.Duration) Option {
	return func(e *Engine) { e.timeLimit = d }
}

// WithRegistry enables optional Prometheus instrumentation: nodes
// explored/pruned counters and a best-makespan gauge, registered against
// reg. Omitting this option leaves metrics disabled, so unit tests never
// need a registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(e *Engine) {
		if reg == nil {
			return
		}
		e.nodesExplored = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chemoseq_bnb_nodes_explored_total",
			Help: "Search nodes popped from the Branch-and-Bound frontier.",
		})
		e.nodesPruned = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chemoseq_bnb_nodes_pruned_total",
			Help: "Search nodes discarded without expansion.",
		})
		e.bestMakespan = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chemoseq_bnb_best_makespan",
			Help: "Makespan of the current incumbent schedule.",
		})
		reg.MustRegister(e.nodesExplored, e.nodesPruned, e.bestMakespan)
	}
}
