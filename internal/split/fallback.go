package split

// cumulativeSegments derives a side's segments purely from nominal track
// durations when no usable silence was detected inside its window.
//
// Nominal durations are scaled to the side's measured span so rounding
// error cannot accumulate: the window is always covered exactly, at the
// cost of boundary precision.
func cumulativeSegments(side Side) []Segment {
	span := side.WindowSpan()
	sum := side.sumExpected()
	n := len(side.Tracks)

	segments := make([]Segment, 0, n)
	start := side.WindowStart
	for i, trk := range side.Tracks {
		var d float64
		if sum > 0 {
			d = trk.ExpectedSec * span / sum
		} else {
			// All nominal durations zero: fall back to an even split.
			d = span / float64(n)
		}

		end := start + d
		if i == n-1 {
			end = side.WindowEnd
		}
		segments = append(segments, Segment{
			TrackIndex: trk.Index,
			Title:      trk.Title,
			Start:      start,
			End:        end,
		})
		start = end
	}
	return segments
}
