package distmatrix

import "errors"

// ErrPositiveCycle indicates the conjunction relation the matrix was built
// from contains a positive-length cycle: the owning scheme is infeasible.
var ErrPositiveCycle = errors.New("distmatrix: positive cycle detected")
