package psgs

import "errors"

// ErrResourceDeadlock indicates the heuristic could not place any
// not-yet-completed activity at the current time step — the scheme's
// current commitments leave no feasible continuation for this constructive
// pass. It is not a search failure: the caller treats it as an upper bound
// of +Inf and keeps exploring other nodes.
var ErrResourceDeadlock = errors.New("psgs: resource deadlock, no activity schedulable")
