package extract

import "errors"

// Sentinel kinds for extraction faults.
var (
	// ErrMalformedRecord marks a payload missing required fields. Callers
	// skip the record and continue the batch.
	ErrMalformedRecord = errors.New("malformed game record")

	// ErrTieWithoutOvertime marks a regulation tie, which the modeled rule
	// set cannot produce. Unlike a malformed record this is a
	// data-integrity fault: it aborts the corpus build rather than being
	// skipped.
	ErrTieWithoutOvertime = errors.New("tie game without overtime")
)
