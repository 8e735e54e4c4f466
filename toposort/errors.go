package toposort

import "errors"

// ErrCycle indicates the successor relation supplied to Sort is not acyclic.
var ErrCycle = errors.New("toposort: graph contains a cycle")
