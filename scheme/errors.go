package scheme

import "errors"

// Sentinel errors returned by scheme construction and mutation.
var (
	// ErrPairAlreadyCommitted indicates AddConjunction was asked to place a
	// pair that is already in C from the opposite orientation, or already
	// in N. AddDisjunction and AddParallelity never return it. Callers must consult the
	// distance matrix before committing a direction; this is a programmer
	// error, not a recoverable run-time condition.
	ErrPairAlreadyCommitted = errors.New("scheme: pair already committed to a conflicting relation")

	// ErrSamePair indicates an operation was given i == j.
	ErrSamePair = errors.New("scheme: activity cannot pair with itself")

	// ErrUnknownActivity indicates a pair references an id absent from the
	// owning Instance.
	ErrUnknownActivity = errors.New("scheme: unknown activity id")
)
