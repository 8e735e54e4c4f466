// Package model defines the immutable Activity and Resource records shared
// by every stage of the scheduler: the schedule-scheme algebra, the distance
// matrix, the p-SGS heuristic, and the Branch-and-Bound search all read the
// same activities/resources handle without mutating it.
//
// Activities are addressed by a stable, non-negative integer ID. The
// distinguished source has the minimum ID in the set and the sink has the
// maximum; both carry zero duration and zero demand.
package model

import (
	"errors"
	"sort"
)

// Sentinel errors for model construction.
var (
	// ErrEmptyActivitySet indicates an instance with no activities.
	ErrEmptyActivitySet = errors.New("model: activity set is empty")

	// ErrNegativeDuration indicates an activity with duration < 0.
	ErrNegativeDuration = errors.New("model: negative duration")

	// ErrNegativeDemand indicates a resource demand < 0.
	ErrNegativeDemand = errors.New("model: negative resource demand")

	// ErrNegativeCapacity indicates a resource with capacity < 0.
	ErrNegativeCapacity = errors.New("model: negative resource capacity")
)

// Activity is a schedulable unit with a stable ID, a nonnegative duration,
// and a per-resource demand map. Activities are immutable once loaded; no
// method on Activity mutates its receiver.
type Activity struct {
	// ID uniquely identifies this activity within its Instance.
	ID int

	// Duration is the processing time p_i >= 0.
	Duration int

	// Demand maps resource name to the nonnegative quantity this activity
	// requires for its entire duration.
	Demand map[string]int
}

// DemandFor returns the quantity of resource name this activity requires,
// or 0 if it does not use that resource at all.
func (a Activity) DemandFor(resource string) int {
	return a.Demand[resource]
}

// Resource is a renewable capacity pool: consumed while an activity is
// active and fully restored the instant it completes.
type Resource struct {
	// Name identifies the resource (e.g. "R1").
	Name string

	// Capacity is the nonnegative total units available at any instant.
	Capacity int
}

// Instance bundles the activities and resources of one scheduling problem,
// plus the source/sink IDs derived from the activity set. It is built once
// by New and never mutated afterward; every downstream component clones or
// reads through this handle.
type Instance struct {
	Activities map[int]Activity
	Resources  map[string]Resource

	// Source is the activity with the minimum ID; Sink is the one with the
	// maximum ID. Both are expected to carry zero duration and zero demand.
	Source int
	Sink   int

	// order is the sorted list of activity IDs, computed once so callers
	// needing deterministic iteration never have to re-sort a map's keys.
	order []int
}

// New validates activities and resources and returns an Instance with
// Source/Sink derived as min(id)/max(id).
//
// Complexity: O(n log n) for the id sort, O(n*r) for demand validation
// where r is the number of distinct resources touched by any activity.
func New(activities map[int]Activity, resources map[string]Resource) (*Instance, error) {
	if len(activities) == 0 {
		return nil, ErrEmptyActivitySet
	}

	var (
		ids  = make([]int, 0, len(activities))
		id   int
		act  Activity
		name string
		qty  int
	)
	for id, act = range activities {
		if act.Duration < 0 {
			return nil, ErrNegativeDuration
		}
		for name, qty = range act.Demand {
			if qty < 0 {
				return nil, ErrNegativeDemand
			}
			_ = name
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var res Resource
	for _, res = range resources {
		if res.Capacity < 0 {
			return nil, ErrNegativeCapacity
		}
	}

	inst := &Instance{
		Activities: activities,
		Resources:  resources,
		Source:     ids[0],
		Sink:       ids[len(ids)-1],
		order:      ids,
	}

	return inst, nil
}

// IDs returns the sorted activity IDs. The returned slice is owned by the
// Instance; callers must not mutate it.
func (in *Instance) IDs() []int { return in.order }

// RealActivityIDs returns the sorted IDs excluding Source and Sink — the
// population over which the schedule-scheme pairs (C/D/N/F) are defined.
func (in *Instance) RealActivityIDs() []int {
	out := make([]int, 0, len(in.order))
	var id int
	for _, id = range in.order {
		if id == in.Source || id == in.Sink {
			continue
		}
		out = append(out, id)
	}

	return out
}
