// Package pipeline orchestrates one full run: album metadata lookup,
// silence detection, boundary reconciliation and track export.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maauso/vinylsplit/internal/album"
	"github.com/maauso/vinylsplit/internal/audio"
	"github.com/maauso/vinylsplit/internal/export"
	"github.com/maauso/vinylsplit/internal/split"
)

// Exporter cuts and publishes the planned segments.
type Exporter interface {
	Export(ctx context.Context, inputPath string, segments []split.Segment) ([]export.Result, error)
}

// Params describes one split run.
type Params struct {
	// InputPath is the recording of the whole record, both sides.
	InputPath string
	// Artist and AlbumTitle identify the album at the metadata source.
	Artist     string
	AlbumTitle string
	// Detect configures silence detection.
	Detect audio.DetectOpts
	// DryRun stops after planning; nothing is cut or published.
	DryRun bool
}

// Report is the outcome of a run: the resolved metadata, the reconciled
// plan and, unless DryRun was set, the published tracks.
type Report struct {
	Album         *album.Album
	TotalDuration float64
	Silences      []split.SilenceInterval
	Plan          *split.Plan
	Tracks        []export.Result
}

// Service wires the metadata source, the audio analyzer and the
// exporter into the end-to-end split flow.
type Service struct {
	source   album.Source
	analyzer audio.Analyzer
	exporter Exporter
	logger   *slog.Logger
}

// NewService creates a pipeline service.
func NewService(source album.Source, analyzer audio.Analyzer, exporter Exporter, logger *slog.Logger) *Service {
	return &Service{
		source:   source,
		analyzer: analyzer,
		exporter: exporter,
		logger:   logger,
	}
}

// Run executes the full flow for one recording.
func (s *Service) Run(ctx context.Context, p Params) (*Report, error) {
	s.logger.Info("looking up album", "artist", p.Artist, "album", p.AlbumTitle)
	a, err := s.source.Lookup(ctx, p.Artist, p.AlbumTitle)
	if err != nil {
		return nil, fmt.Errorf("album lookup: %w", err)
	}

	sideA, sideB, err := a.Sides()
	if err != nil {
		return nil, fmt.Errorf("album %q: %w", a.Title, err)
	}
	s.logger.Info("album resolved",
		"album", a.Title,
		"tracks", len(a.Tracks),
		"side_a_tracks", len(sideA),
	)

	total, err := s.analyzer.Duration(ctx, p.InputPath)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", p.InputPath, err)
	}

	silences, err := s.analyzer.DetectSilences(ctx, p.InputPath, p.Detect)
	if err != nil {
		return nil, fmt.Errorf("detect silences in %s: %w", p.InputPath, err)
	}
	s.logger.Info("silence detection finished",
		"duration", fmt.Sprintf("%.1fs", total),
		"silences", len(silences),
	)

	plan, err := split.BuildPlan(silences, total, sideA, sideB, split.Options{})
	if err != nil {
		return nil, fmt.Errorf("plan segments: %w", err)
	}
	s.logSideQuality("A", plan.SideA)
	s.logSideQuality("B", plan.SideB)

	report := &Report{
		Album:         a,
		TotalDuration: total,
		Silences:      silences,
		Plan:          plan,
	}

	if p.DryRun {
		s.logger.Info("dry run, skipping export", "segments", len(plan.Segments))
		return report, nil
	}

	tracks, err := s.exporter.Export(ctx, p.InputPath, plan.Segments)
	if err != nil {
		return nil, fmt.Errorf("export tracks: %w", err)
	}
	report.Tracks = tracks

	s.logger.Info("split finished", "tracks", len(tracks))
	return report, nil
}

// logSideQuality warns when a side's boundaries came from nominal
// durations instead of detected silence.
func (s *Service) logSideQuality(side string, r split.SideReport) {
	switch {
	case r.Fallback:
		s.logger.Warn("no usable silences on side, split by nominal durations", "side", side)
	case r.FilledBoundaries > 0:
		s.logger.Warn("some boundaries placed at expected times",
			"side", side,
			"filled", r.FilledBoundaries,
			"candidates", r.Candidates,
		)
	default:
		s.logger.Debug("side aligned",
			"side", side,
			"candidates", r.Candidates,
			"cost", fmt.Sprintf("%.2fs", r.AlignmentCost),
		)
	}
}
