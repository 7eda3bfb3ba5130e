package split

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Representative selects which point of a silence interval stands in as
// the boundary candidate time. The choice materially affects alignment
// quality and is therefore an explicit policy.
type Representative int

const (
	// RepMidpoint uses the interval midpoint (default).
	RepMidpoint Representative = iota
	// RepStart uses the interval start.
	RepStart
)

// Options configures the planner's policy choices.
type Options struct {
	Representative Representative
}

// BuildPlan reconciles the detected silences with the expected track
// durations and returns one segment per track across both sides.
//
// Side A and Side B are planned independently and concurrently; the
// assembled result is validated against the output invariants before it
// is returned.
func BuildPlan(silences []SilenceInterval, totalDuration float64, sideATracks, sideBTracks []Track, opts Options) (*Plan, error) {
	if totalDuration <= 0 {
		return nil, fmt.Errorf("%w: total duration %.3fs", ErrInvalidSilences, totalDuration)
	}
	if err := validateSilences(silences); err != nil {
		return nil, err
	}

	sideA, sideB, err := PartitionSides(silences, totalDuration, sideATracks, sideBTracks)
	if err != nil {
		return nil, err
	}
	brk, _ := SideBreak(silences)

	candA := candidateTimes(sideA, silences, opts.Representative)
	candB := candidateTimes(sideB, silences, opts.Representative)

	var (
		segsA, segsB []Segment
		repA, repB   SideReport
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		segsA, repA, err = planSide(sideA, candA)
		if err != nil {
			return fmt.Errorf("side A: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		segsB, repB, err = planSide(sideB, candB)
		if err != nil {
			return fmt.Errorf("side B: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan := &Plan{
		Segments: assemble(segsA, segsB, len(sideATracks)),
		Break:    brk,
		SideA:    repA,
		SideB:    repB,
	}
	if err := validatePlan(plan, sideA, sideB, totalDuration); err != nil {
		return nil, err
	}
	return plan, nil
}

// planSide produces one side's segments: best-fit alignment when boundary
// candidates exist, cumulative duration scaling when none do.
func planSide(side Side, candidates []float64) ([]Segment, SideReport, error) {
	if len(side.Tracks) == 0 {
		return nil, SideReport{}, ErrNoTracks
	}

	report := SideReport{Candidates: len(candidates)}
	if len(candidates) == 0 {
		report.Fallback = true
		return cumulativeSegments(side), report, nil
	}

	segments, filled, cost := alignSide(side, candidates)
	report.FilledBoundaries = filled
	report.AlignmentCost = cost
	return segments, report, nil
}

// candidateTimes derives the boundary candidates for a side: the
// representative time of every silence interval that lies fully inside
// the side's window, strictly between its edges. The side break itself
// straddles the window edge and is excluded by construction.
func candidateTimes(side Side, silences []SilenceInterval, rep Representative) []float64 {
	var times []float64
	for _, si := range silences {
		if si.Start < side.WindowStart || si.End > side.WindowEnd {
			continue
		}
		t := si.Midpoint()
		if rep == RepStart {
			t = si.Start
		}
		if t > side.WindowStart && t < side.WindowEnd {
			times = append(times, t)
		}
	}
	return times
}
