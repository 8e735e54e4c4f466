package bnb

import "errors"

// ErrNoActivities indicates Solve was asked to run over a nil scheme.
var ErrNoActivities = errors.New("bnb: scheme is nil")
