package selection

import "errors"

// ErrInfeasible indicates a rebuild of the distance matrix during
// propagation found a positive cycle: the owning scheme can never yield a
// feasible schedule and must be pruned.
var ErrInfeasible = errors.New("selection: scheme is infeasible")
