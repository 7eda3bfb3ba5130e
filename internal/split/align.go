package split

import "math"

// alignSide chooses the internal boundaries for one side and returns its
// segments with side-local track indices.
//
// The N-1 internal boundaries are picked from the candidate times by an
// order-preserving minimum-total-deviation assignment; the Nth segment
// always ends at the side's window end.
func alignSide(side Side, candidates []float64) ([]Segment, int, float64) {
	expected := expectedBoundaries(side)
	boundaries, filled, cost := alignBoundaries(expected, candidates, side.WindowStart, side.WindowEnd)
	return segmentsFromBoundaries(side, boundaries), filled, cost
}

// expectedBoundaries returns the cumulative expected boundary times E[1..N-1]
// offset by the window start.
func expectedBoundaries(side Side) []float64 {
	if len(side.Tracks) < 2 {
		return nil
	}
	expected := make([]float64, 0, len(side.Tracks)-1)
	t := side.WindowStart
	for _, trk := range side.Tracks[:len(side.Tracks)-1] {
		t += trk.ExpectedSec
		expected = append(expected, t)
	}
	return expected
}

// alignBoundaries solves the monotone assignment of candidates to expected
// boundary times. It always returns exactly len(expected) boundaries in
// strictly increasing order inside (lo, hi); boundaries that no candidate
// could cover are filled from their expected time and counted.
func alignBoundaries(expected, candidates []float64, lo, hi float64) ([]float64, int, float64) {
	n := len(expected)
	if n == 0 {
		return nil, 0, 0
	}

	m := len(candidates)
	switch {
	case m == 0:
		assigned := make([]float64, n)
		for i := range assigned {
			assigned[i] = math.NaN()
		}
		return fillBoundaries(expected, assigned, lo, hi), n, 0
	case m >= n:
		chosen, cost := selectCandidates(expected, candidates)
		return chosen, 0, cost
	default:
		assigned, cost := assignAllCandidates(expected, candidates)
		filled := 0
		for _, b := range assigned {
			if math.IsNaN(b) {
				filled++
			}
		}
		return fillBoundaries(expected, assigned, lo, hi), filled, cost
	}
}

// selectCandidates picks len(expected) candidates out of m >= n available,
// minimizing total |candidate - expected| over order-preserving pairings.
//
// cost[i][j] = min(cost[i-1][j-1] + |cand[j] - E[i]|, cost[i][j-1]):
// either candidate j covers boundary i, or candidate j is skipped.
func selectCandidates(expected, candidates []float64) ([]float64, float64) {
	n, m := len(expected), len(candidates)

	cost := make([][]float64, n+1)
	take := make([][]bool, n+1)
	for i := range cost {
		cost[i] = make([]float64, m+1)
		take[i] = make([]bool, m+1)
	}

	for i := 1; i <= n; i++ {
		for j := 0; j <= m; j++ {
			if j < i {
				cost[i][j] = math.Inf(1)
				continue
			}
			assign := cost[i-1][j-1] + math.Abs(candidates[j-1]-expected[i-1])
			skip := cost[i][j-1]
			if assign <= skip {
				cost[i][j] = assign
				take[i][j] = true
			} else {
				cost[i][j] = skip
			}
		}
	}

	chosen := make([]float64, n)
	for i, j := n, m; i > 0; {
		if take[i][j] {
			chosen[i-1] = candidates[j-1]
			i--
			j--
		} else {
			j--
		}
	}
	return chosen, cost[n][m]
}

// assignAllCandidates handles the deficit case (m < n): every candidate is
// matched to a distinct boundary, order preserved, minimizing total
// deviation. Boundaries left without a candidate are NaN in the result.
func assignAllCandidates(expected, candidates []float64) ([]float64, float64) {
	n, m := len(expected), len(candidates)

	cost := make([][]float64, n+1)
	take := make([][]bool, n+1)
	for i := range cost {
		cost[i] = make([]float64, m+1)
		take[i] = make([]bool, m+1)
	}
	for j := 1; j <= m; j++ {
		cost[0][j] = math.Inf(1)
	}

	for i := 1; i <= n; i++ {
		for j := 0; j <= m; j++ {
			// Leave boundary i unmatched.
			best := cost[i-1][j]
			assigned := false
			if j > 0 {
				withCand := cost[i-1][j-1] + math.Abs(candidates[j-1]-expected[i-1])
				if withCand <= best {
					best = withCand
					assigned = true
				}
			}
			cost[i][j] = best
			take[i][j] = assigned
		}
	}

	assigned := make([]float64, n)
	for i := range assigned {
		assigned[i] = math.NaN()
	}
	for i, j := n, m; i > 0; {
		if take[i][j] {
			assigned[i-1] = candidates[j-1]
			j--
		}
		i--
	}
	return assigned, cost[n][m]
}

// fillBoundaries replaces NaN entries with the boundary's expected time,
// keeping the whole sequence strictly increasing inside (lo, hi). When an
// expected time would break monotonicity against its placed neighbours,
// the run of unmatched boundaries is spread evenly over the available gap.
func fillBoundaries(expected, assigned []float64, lo, hi float64) []float64 {
	out := make([]float64, len(expected))
	prev := lo

	for i := 0; i < len(expected); {
		if !math.IsNaN(assigned[i]) {
			out[i] = assigned[i]
			prev = out[i]
			i++
			continue
		}

		// Maximal run of unmatched boundaries [i, j).
		j := i
		for j < len(expected) && math.IsNaN(assigned[j]) {
			j++
		}
		next := hi
		if j < len(expected) {
			next = assigned[j]
		}

		for k := i; k < j; k++ {
			want := expected[k]
			if want <= prev || want >= next {
				remaining := float64(j - k)
				want = prev + (next-prev)/(remaining+1)
			}
			out[k] = want
			prev = want
		}
		i = j
	}
	return out
}

// segmentsFromBoundaries builds the side's segments: track i spans from the
// previous boundary to boundary i, the last track ends at the window end.
func segmentsFromBoundaries(side Side, boundaries []float64) []Segment {
	segments := make([]Segment, 0, len(side.Tracks))
	start := side.WindowStart
	for i, trk := range side.Tracks {
		end := side.WindowEnd
		if i < len(boundaries) {
			end = boundaries[i]
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
