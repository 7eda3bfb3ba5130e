// Package audio provides the ffmpeg-backed collaborators of the split
// planner: duration probing, silence detection and stream-copy cutting.
package audio

import (
	"context"

	"github.com/maauso/vinylsplit/internal/split"
)

// DetectOpts configures silence detection. The core treats both knobs as
// opaque tuning parameters handed straight to ffmpeg's silencedetect
// filter.
type DetectOpts struct {
	// MinSilenceSec is the minimum silence length in seconds for an
	// interval to be reported. Default: 1.0.
	MinSilenceSec float64

	// NoiseThreshDB is the dBFS level below which audio counts as silent.
	// Default: -40.
	NoiseThreshDB float64
}

// DefaultDetectOpts returns the detection defaults.
func DefaultDetectOpts() DetectOpts {
	return DetectOpts{
		MinSilenceSec: 1.0,
		NoiseThreshDB: -40,
	}
}

// Analyzer probes a recording and detects its silence intervals.
type Analyzer interface {
	// Duration returns the total length of the audio file in seconds.
	Duration(ctx context.Context, path string) (float64, error)

	// DetectSilences returns the ordered silence intervals of the file.
	// A trailing silence that ffmpeg never closes is capped at the end of
	// the recording.
	DetectSilences(ctx context.Context, path string, opts DetectOpts) ([]split.SilenceInterval, error)
}

// Cutter extracts one time range of a recording into a new file without
// re-encoding.
type Cutter interface {
	Cut(ctx context.Context, inputPath, outputPath string, start, end float64) error
}
