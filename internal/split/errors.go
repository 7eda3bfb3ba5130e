package split

import "errors"

// Static errors for the reconciliation core.
var (
	// ErrNoSideBreakFound is returned when the silence list is empty and
	// the side break cannot be located. Fatal for the whole run.
	ErrNoSideBreakFound = errors.New("split: no silence intervals, side break not found")

	// ErrInvalidSilences is returned when the silence-interval input is
	// not ordered, overlaps, or contains an empty interval. This is a
	// precondition failure in the detector output, not something the
	// aligner repairs.
	ErrInvalidSilences = errors.New("split: silence intervals must be ordered and non-overlapping")

	// ErrNoTracks is returned when a side has no track specs.
	ErrNoTracks = errors.New("split: side has no tracks")

	// ErrInternalConsistency indicates the assembled segments violate the
	// output invariants. Always a defect in the aligner or fallback
	// splitter, never a normal runtime condition.
	ErrInternalConsistency = errors.New("split: internal consistency violation")
)
