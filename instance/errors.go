package instance

import "errors"

// Sentinel errors for .sm parsing. Individual line failures are collected
// with go.uber.org/multierr rather than aborting on the first defect, so a
// caller sees every malformed line in one pass.
var (
	// ErrMissingSection indicates the REQUESTS/DURATIONS: or
	// RESOURCEAVAILABILITIES: section yielded no data row, whether its
	// banner was missing or no row followed it.
	ErrMissingSection = errors.New("instance: required section banner not found")

	// ErrMalformedLine indicates a data row did not have the expected
	// field count or contained a non-integer field.
	ErrMalformedLine = errors.New("instance: malformed data line")
)
