package split

import "fmt"

// tolerance is the floating-point slack allowed by the invariant checks,
// in seconds.
const tolerance = 1e-3

// assemble concatenates the per-side segment lists into the global one.
// Side A keeps its indices, Side B's are offset by the Side A track count.
func assemble(sideA, sideB []Segment, offset int) []Segment {
	out := make([]Segment, 0, len(sideA)+len(sideB))
	out = append(out, sideA...)
	for _, seg := range sideB {
		seg.TrackIndex += offset
		out = append(out, seg)
	}
	return out
}

// validatePlan checks the global output invariants. A violation indicates
// a defect in the aligner or the fallback splitter and is surfaced with
// enough state to diagnose it.
func validatePlan(plan *Plan, sideA, sideB Side, totalDuration float64) error {
	segs := plan.Segments

	wantCount := len(sideA.Tracks) + len(sideB.Tracks)
	if len(segs) != wantCount {
		return fmt.Errorf("%w: got %d segments for %d tracks", ErrInternalConsistency, len(segs), wantCount)
	}

	if d := segs[0].Start; d > tolerance || d < -tolerance {
		return fmt.Errorf("%w: first segment starts at %.4fs, want 0", ErrInternalConsistency, segs[0].Start)
	}
	if d := segs[len(segs)-1].End - totalDuration; d > tolerance || d < -tolerance {
		return fmt.Errorf("%w: last segment ends at %.4fs, want %.4fs",
			ErrInternalConsistency, segs[len(segs)-1].End, totalDuration)
	}

	for i, seg := range segs {
		if seg.End-seg.Start <= 0 {
			return fmt.Errorf("%w: segment %d (%q) spans %.4f-%.4fs",
				ErrInternalConsistency, seg.TrackIndex, seg.Title, seg.Start, seg.End)
		}
		if seg.TrackIndex != i+1 {
			return fmt.Errorf("%w: segment at position %d has track index %d",
				ErrInternalConsistency, i, seg.TrackIndex)
		}
		if i == 0 {
			continue
		}
		gap := seg.Start - segs[i-1].End
		if gap > tolerance || gap < -tolerance {
			return fmt.Errorf("%w: %.4fs gap between segment %d (ends %.4fs) and segment %d (starts %.4fs)",
				ErrInternalConsistency, gap, segs[i-1].TrackIndex, segs[i-1].End, seg.TrackIndex, seg.Start)
		}
	}

	// Each side must account for its window exactly.
	for _, check := range []struct {
		name string
		side Side
		segs []Segment
	}{
		{"side A", sideA, segs[:len(sideA.Tracks)]},
		{"side B", sideB, segs[len(sideA.Tracks):]},
	} {
		var sum float64
		for _, seg := range check.segs {
			sum += seg.Duration()
		}
		if d := sum - check.side.WindowSpan(); d > tolerance || d < -tolerance {
			return fmt.Errorf("%w: %s segments cover %.4fs of a %.4fs window",
				ErrInternalConsistency, check.name, sum, check.side.WindowSpan())
		}
	}

	return nil
}
