// Package report renders a solved schedule as a human-readable table,
// the Go-native counterpart of the original source's view_calendar.py.
// It is an external collaborator: it only reads model.Instance and
// psgs.Cronograma, never scheme/distmatrix/bnb internals.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/chemoseq/rcpsp/bnb"
	"github.com/chemoseq/rcpsp/model"
	"github.com/chemoseq/rcpsp/psgs"
)

// Options controls optional sections of the rendered report.
type Options struct {
	// ActivitiesPerPatient, when positive, groups the schedule table into
	// per-patient blocks using the same fixed-chain-size convention the
	// generator package writes its instances with. Zero skips grouping.
	ActivitiesPerPatient int
}

// Render writes a full report: the run summary, the per-activity
// schedule ordered by start time, and (if opts.ActivitiesPerPatient > 0)
// a per-patient breakdown.
func Render(w io.Writer, inst *model.Instance, schedule psgs.Cronograma, stats bnb.Stats, opts Options) error {
	fmt.Fprintf(w, "run %s: makespan=%.0f optimal=%v nodes_explored=%d nodes_pruned=%d time=%.3fs\n",
		stats.RunID, stats.BestMakespan, stats.Optimal, stats.NodesExplored, stats.NodesPruned, stats.TimeSeconds)

	if schedule == nil {
		fmt.Fprintln(w, "no feasible schedule found")
		return nil
	}

	ids := scheduledIDs(schedule)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Start", "Finish", "Duration"})
	var id int
	for _, id = range ids {
		act := inst.Activities[id]
		start := schedule[id]
		table.Append([]string{
			fmt.Sprintf("%d", id),
			fmt.Sprintf("%d", start),
			fmt.Sprintf("%d", start+act.Duration),
			fmt.Sprintf("%d", act.Duration),
		})
	}
	table.Render()

	if opts.ActivitiesPerPatient > 0 {
		return renderByPatient(w, inst, schedule, ids, opts.ActivitiesPerPatient)
	}
	return nil
}

// renderByPatient groups real activities into fixed-size chains, matching
// the ID layout generator.Generate produces, and prints one table per
// patient sorted by that patient's own start times.
func renderByPatient(w io.Writer, inst *model.Instance, schedule psgs.Cronograma, ids []int, perPatient int) error {
	groups := make(map[int][]int)
	var id int
	for _, id = range ids {
		if id == inst.Source || id == inst.Sink {
			continue
		}
		patient := (id - 1) / perPatient
		groups[patient] = append(groups[patient], id)
	}

	patients := make([]int, 0, len(groups))
	var p int
	for p = range groups {
		patients = append(patients, p)
	}
	sort.Ints(patients)

	for _, p = range patients {
		fmt.Fprintf(w, "\npatient %d\n", p)
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"ID", "Start", "Finish"})
		members := groups[p]
		sort.Slice(members, func(a, b int) bool { return schedule[members[a]] < schedule[members[b]] })
		for _, id = range members {
			act := inst.Activities[id]
			table.Append([]string{
				fmt.Sprintf("%d", id),
				fmt.Sprintf("%d", schedule[id]),
				fmt.Sprintf("%d", schedule[id]+act.Duration),
			})
		}
		table.Render()
	}

	return nil
}

// scheduledIDs returns schedule's keys sorted by start time, tie-broken by
// id for determinism.
func scheduledIDs(schedule psgs.Cronograma) []int {
	ids := make([]int, 0, len(schedule))
	var id int
	for id = range schedule {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool {
		if schedule[ids[a]] != schedule[ids[b]] {
			return schedule[ids[a]] < schedule[ids[b]]
		}
		return ids[a] < ids[b]
	})
	return ids
}
