package domain

import "errors"

var (
	// ErrMissingInput means a required source table is absent. The
	// pipeline aborts before mutating any output.
	ErrMissingInput = errors.New("required input file missing")

	// ErrEmptyInput means the comment table has zero rows. The pipeline
	// aborts with a warning, no output mutation.
	ErrEmptyInput = errors.New("input file has no rows")

	// ErrDuplicateTimestamp means the current minute already exists in
	// the history log; the whole append for the run is skipped.
	ErrDuplicateTimestamp = errors.New("history timestamp already recorded")
)
