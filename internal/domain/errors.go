package domain

import "github.com/pkg/errors"

var (
	// ErrSourceUnavailable marks a data source that could not be reached or
	// returned an unusable result. Any source failure other than the macro
	// calendar aborts the current cycle.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrMalformedResponse marks a source response that could not be parsed
	// into its expected semantic type. Treated identically to
	// ErrSourceUnavailable at the cycle boundary.
	ErrMalformedResponse = errors.New("malformed response")
)
