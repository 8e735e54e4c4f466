// Package generator synthesizes deterministic multi-patient RCPSP
// instances for manual testing and benchmarking, playing the role of the
// original source's ad hoc instance builder. It is an external
// collaborator: its output is exactly the data-model contract the core
// packages consume, never the core's own types.
package generator

import (
	"fmt"
	"math/rand"

	"github.com/chemoseq/rcpsp/instance"
	"github.com/chemoseq/rcpsp/model"
)

// Options configures one synthesis run. All fields have sane zero-value
// fallbacks applied by Generate.
type Options struct {
	// Patients is the number of independent activity chains to generate.
	Patients int

	// ActivitiesPerPatient is how many real activities each patient's
	// chain contains. Defaults to 4.
	ActivitiesPerPatient int

	// MinDuration/MaxDuration bound each activity's duration, inclusive.
	// Default to 1 and 5.
	MinDuration, MaxDuration int

	// ResourceCapacities sets each of the four fixed resources'
	// capacity. Missing entries default to 2.
	ResourceCapacities map[string]int

	// Seed makes the synthesis reproducible: the same Options and Seed
	// always produce byte-identical output.
	Seed int64
}

func (o Options) withDefaults() Options {
	if o.ActivitiesPerPatient <= 0 {
		o.ActivitiesPerPatient = 4
	}
	if o.MaxDuration <= 0 {
		o.MinDuration, o.MaxDuration = 1, 5
	}
	if o.ResourceCapacities == nil {
		o.ResourceCapacities = make(map[string]int, len(instance.ResourceNames))
	}
	for _, name := range instance.ResourceNames {
		if _, ok := o.ResourceCapacities[name]; !ok {
			o.ResourceCapacities[name] = 2
		}
	}
	return o
}

// FileName returns the canonical instance file name for n patients,
// matching the original CLI's folfiri_<n>_patients.sm convention.
func FileName(patients int) string {
	return fmt.Sprintf("folfiri_%d_patients.sm", patients)
}

// Generate builds activities, precedences, resources, and incompatibility
// pairs for opts.Patients independent patient chains: each patient is a
// linear chain of ActivitiesPerPatient real activities running source to
// sink, with one incompatibility planted between every consecutive pair
// of patients' first activities (modeling a shared-resource toxicity
// window the original source hardcoded for a fixed 3-patient instance as
// [(0,1),(2,3),(4,5)]; this generalizes the same pattern to any patient
// count).
func Generate(opts Options) (instance.Result, [][2]int, error) {
	opts = opts.withDefaults()
	if opts.Patients <= 0 {
		return instance.Result{}, nil, fmt.Errorf("generator: patients must be positive, got %d", opts.Patients)
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	activities := make(map[int]model.Activity)
	var precedences [][2]int
	var incompatibilities [][2]int

	source := 0
	nextID := 1
	patientFirstActivity := make([]int, opts.Patients)

	var p, k int
	for p = 0; p < opts.Patients; p++ {
		prev := source
		for k = 0; k < opts.ActivitiesPerPatient; k++ {
			id := nextID
			nextID++

			demand := make(map[string]int, len(instance.ResourceNames))
			var name string
			for _, name = range instance.ResourceNames {
				demand[name] = rng.Intn(2)
			}

			duration := opts.MinDuration + rng.Intn(opts.MaxDuration-opts.MinDuration+1)
			activities[id] = model.Activity{ID: id, Duration: duration, Demand: demand}

			precedences = append(precedences, [2]int{prev, id})
			if k == 0 {
				patientFirstActivity[p] = id
			}
			prev = id
		}
	}

	sink := nextID
	activities[source] = model.Activity{ID: source, Duration: 0}
	activities[sink] = model.Activity{ID: sink, Duration: 0}
	for p = 0; p < opts.Patients; p++ {
		last := patientFirstActivity[p] + opts.ActivitiesPerPatient - 1
		precedences = append(precedences, [2]int{last, sink})
	}

	for p = 0; p+1 < opts.Patients; p += 2 {
		incompatibilities = append(incompatibilities, [2]int{patientFirstActivity[p], patientFirstActivity[p+1]})
	}

	resources := make(map[string]model.Resource, len(instance.ResourceNames))
	var name string
	for _, name = range instance.ResourceNames {
		resources[name] = model.Resource{Name: name, Capacity: opts.ResourceCapacities[name]}
	}

	res := instance.Result{Activities: activities, Precedences: precedences, Resources: resources}
	return res, incompatibilities, nil
}
