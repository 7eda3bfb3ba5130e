package split

import "fmt"

// SideBreak selects the silence interval that separates the two physical
// sides: the one with the maximum duration, ties broken by earliest start.
func SideBreak(silences []SilenceInterval) (SilenceInterval, error) {
	if len(silences) == 0 {
		return SilenceInterval{}, ErrNoSideBreakFound
	}

	best := silences[0]
	for _, si := range silences[1:] {
		// Strictly greater keeps the earliest start on equal durations.
		if si.Duration() > best.Duration() {
			best = si
		}
	}
	return best, nil
}

// PartitionSides splits the recording into Side A and Side B at the
// side-break midpoint. The returned windows are disjoint and together
// cover [0, totalDuration].
func PartitionSides(silences []SilenceInterval, totalDuration float64, sideATracks, sideBTracks []Track) (Side, Side, error) {
	brk, err := SideBreak(silences)
	if err != nil {
		return Side{}, Side{}, err
	}

	mid := brk.Midpoint()
	if mid <= 0 || mid >= totalDuration {
		return Side{}, Side{}, fmt.Errorf("%w: side break midpoint %.3fs outside recording of %.3fs",
			ErrInvalidSilences, mid, totalDuration)
	}

	sideA := Side{Tracks: sideATracks, WindowStart: 0, WindowEnd: mid}
	sideB := Side{Tracks: sideBTracks, WindowStart: mid, WindowEnd: totalDuration}
	return sideA, sideB, nil
}

// validateSilences checks the detector-output precondition: every interval
// non-empty, intervals strictly ordered and non-overlapping.
func validateSilences(silences []SilenceInterval) error {
	for i, si := range silences {
		if si.Start < 0 || si.End <= si.Start {
			return fmt.Errorf("%w: interval %d (%.3f-%.3f) is empty or negative",
				ErrInvalidSilences, i, si.Start, si.End)
		}
		if i > 0 && si.Start < silences[i-1].End {
			return fmt.Errorf("%w: interval %d starts at %.3f before previous end %.3f",
				ErrInvalidSilences, i, si.Start, silences[i-1].End)
		}
	}
	return nil
}
