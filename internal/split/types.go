// Package split implements the boundary-reconciliation core: it turns a
// list of detected silence intervals and the album's expected track
// durations into one non-overlapping segment per track.
//
// The package is purely computational: no I/O, no shared mutable state,
// and deterministic output for identical inputs.
package split

// SilenceInterval is a time range flagged as below-threshold loudness by
// the external detector. Start and End are seconds from the beginning of
// the recording, Start < End.
type SilenceInterval struct {
	Start float64
	End   float64
}

// Duration returns the length of the interval in seconds.
func (si SilenceInterval) Duration() float64 {
	return si.End - si.Start
}

// Midpoint returns the center of the interval.
func (si SilenceInterval) Midpoint() float64 {
	return (si.Start + si.End) / 2
}

// Track is the expected-duration spec for one track on a side.
type Track struct {
	// Index is the 1-based position of the track within its side.
	Index int
	// Title is the track title as supplied by the metadata source.
	Title string
	// ExpectedSec is the nominal track duration in seconds.
	ExpectedSec float64
}

// Side is the portion of the recording attributed to one physical side,
// bounded by the recording start, the side-break midpoint and the
// recording end.
type Side struct {
	Tracks      []Track
	WindowStart float64
	WindowEnd   float64
}

// WindowSpan returns the measured length of the side in seconds.
func (s Side) WindowSpan() float64 {
	return s.WindowEnd - s.WindowStart
}

func (s Side) sumExpected() float64 {
	var sum float64
	for _, t := range s.Tracks {
		sum += t.ExpectedSec
	}
	return sum
}

// Segment is one track's time range in the recording. Segments are the
// sole output artifact of the core and are handed to the exporter.
type Segment struct {
	// TrackIndex is the 1-based global track number across both sides.
	TrackIndex int
	Title      string
	Start      float64
	End        float64
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// SideReport carries the quality signals for one side's segments so
// downstream consumers can tell which path produced them.
type SideReport struct {
	// Candidates is the number of boundary candidates inside the window.
	Candidates int
	// Fallback is true when the side had no candidates at all and the
	// cumulative duration-scaling splitter fired.
	Fallback bool
	// FilledBoundaries counts internal boundaries that had no candidate
	// and were placed at their expected time instead.
	FilledBoundaries int
	// AlignmentCost is the total deviation in seconds between the chosen
	// candidates and the expected boundary times. Zero when Fallback.
	AlignmentCost float64
}

// Degraded reports whether this side's boundaries were derived, fully or
// partially, from nominal durations rather than detected silence.
func (r SideReport) Degraded() bool {
	return r.Fallback || r.FilledBoundaries > 0
}

// Plan is the reconciled segment list for the whole recording plus the
// per-side quality reports.
type Plan struct {
	Segments []Segment
	Break    SilenceInterval
	SideA    SideReport
	SideB    SideReport
}
