// Package export cuts planned segments out of the side recordings and
// publishes them as individual track files.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/maauso/vinylsplit/internal/audio"
	"github.com/maauso/vinylsplit/internal/split"
	"github.com/maauso/vinylsplit/internal/storage"
)

// DefaultMaxConcurrent bounds parallel track cuts when no limit is set.
const DefaultMaxConcurrent = 3

// Result describes one published track.
type Result struct {
	TrackIndex int
	Title      string
	Location   string
}

// Exporter cuts segments from a recording and publishes the pieces
// through a Store.
type Exporter struct {
	cutter        audio.Cutter
	store         storage.Store
	logger        *slog.Logger
	maxConcurrent int
}

// NewExporter creates an Exporter. maxConcurrent bounds the number of
// tracks cut in parallel; values below 1 fall back to
// DefaultMaxConcurrent.
func NewExporter(cutter audio.Cutter, store storage.Store, logger *slog.Logger, maxConcurrent int) *Exporter {
	if maxConcurrent < 1 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Exporter{
		cutter:        cutter,
		store:         store,
		logger:        logger,
		maxConcurrent: maxConcurrent,
	}
}

// Export cuts every segment out of inputPath and publishes the results.
// Tracks are processed concurrently; the returned results are ordered
// by track index. On error the scratch files are cleaned up and the
// first failure is returned.
func (e *Exporter) Export(ctx context.Context, inputPath string, segments []split.Segment) ([]Result, error) {
	ext := filepath.Ext(inputPath)
	if ext == "" {
		ext = ".wav"
	}

	results := make([]Result, len(segments))
	scratchPaths := make([]string, len(segments))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrent)

	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			name := TrackFileName(seg.TrackIndex, seg.Title, ext)
			scratchPath := filepath.Join(e.store.ScratchDir(), name)
			scratchPaths[i] = scratchPath

			e.logger.Info("cutting track",
				"track", seg.TrackIndex,
				"title", seg.Title,
				"start", fmt.Sprintf("%.3f", seg.Start),
				"end", fmt.Sprintf("%.3f", seg.End),
			)

			if err := e.cutter.Cut(ctx, inputPath, scratchPath, seg.Start, seg.End); err != nil {
				return fmt.Errorf("cut track %d (%s): %w", seg.TrackIndex, seg.Title, err)
			}

			location, err := e.store.Publish(ctx, scratchPath, name)
			if err != nil {
				return fmt.Errorf("publish track %d (%s): %w", seg.TrackIndex, seg.Title, err)
			}

			results[i] = Result{
				TrackIndex: seg.TrackIndex,
				Title:      seg.Title,
				Location:   location,
			}
			return nil
		})
	}

	err := g.Wait()
	if cleanupErr := e.store.Cleanup(context.WithoutCancel(ctx), scratchPaths); cleanupErr != nil {
		e.logger.Warn("scratch cleanup failed", "error", cleanupErr)
	}
	if err != nil {
		return nil, err
	}

	return results, nil
}

// TrackFileName builds the published filename for a track, e.g.
// "03 - Nights in White Satin.mp3". Characters that are unsafe in
// filenames are stripped from the title.
func TrackFileName(index int, title, ext string) string {
	clean := sanitizeTitle(title)
	if clean == "" {
		clean = fmt.Sprintf("Track %02d", index)
	}
	return fmt.Sprintf("%02d - %s%s", index, clean, ext)
}

// sanitizeTitle removes characters that are reserved on common
// filesystems and collapses the resulting whitespace.
func sanitizeTitle(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return -1
		}
		return r
	}, title)

	return strings.Join(strings.Fields(cleaned), " ")
}
