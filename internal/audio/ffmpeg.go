package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/maauso/vinylsplit/internal/split"
)

// FFmpeg implements Analyzer and Cutter by shelling out to the ffmpeg CLI.
type FFmpeg struct {
	ffmpegPath string
}

// NewFFmpeg creates an ffmpeg-backed analyzer/cutter.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found in PATH).
func NewFFmpeg(ffmpegPath string) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &FFmpeg{ffmpegPath: ffmpegPath}
}

// Duration returns the length of an audio file in seconds.
func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, fmt.Errorf("input file does not exist: %s", path)
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath,
		"-i", path,
		"-hide_banner",
		"-f", "null", "-",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// ffmpeg writes duration info to stderr and exits non-zero with a
	// null muxer; the exit code carries no signal here.
	_ = cmd.Run()
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("probe duration: %w", err)
	}

	return parseDuration(stderr.String())
}

// DetectSilences runs ffmpeg's silencedetect filter over the file and
// returns the ordered silence intervals.
func (f *FFmpeg) DetectSilences(ctx context.Context, path string, opts DetectOpts) ([]split.SilenceInterval, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", path)
	}

	filter := fmt.Sprintf("silencedetect=noise=%.1fdB:d=%g", opts.NoiseThreshDB, opts.MinSilenceSec)

	cmd := exec.CommandContext(ctx, f.ffmpegPath,
		"-i", path,
		"-af", filter,
		"-f", "null",
		"-hide_banner",
		"-",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	_ = cmd.Run()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("detect silences: %w", err)
	}

	output := stderr.String()
	total, err := parseDuration(output)
	if err != nil {
		return nil, fmt.Errorf("detect silences: %w", err)
	}

	return parseSilenceOutput(output, total), nil
}

// Cut extracts [start, end) of the input into outputPath via stream copy.
func (f *FFmpeg) Cut(ctx context.Context, inputPath, outputPath string, start, end float64) error {
	if end <= start {
		return fmt.Errorf("cut: empty range %.3f-%.3fs", start, end)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath,
		"-y",
		"-ss", fmt.Sprintf("%.3f", start),
		"-t", fmt.Sprintf("%.3f", end-start),
		"-i", inputPath,
		"-c", "copy",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg error: %w, stderr: %s", err, stderr.String())
	}
	return nil
}

var durationRe = regexp.MustCompile(`Duration:\s*(\d+):(\d+):(\d+)\.(\d+)`)

// parseDuration extracts "Duration: HH:MM:SS.cc" from ffmpeg stderr.
func parseDuration(output string) (float64, error) {
	matches := durationRe.FindStringSubmatch(output)
	if len(matches) < 5 {
		return 0, fmt.Errorf("could not parse duration from ffmpeg output: %s", output)
	}

	hours, _ := strconv.ParseFloat(matches[1], 64)
	minutes, _ := strconv.ParseFloat(matches[2], 64)
	seconds, _ := strconv.ParseFloat(matches[3], 64)
	frac, _ := strconv.ParseFloat(matches[4], 64)

	divisor := 1.0
	for range matches[4] {
		divisor *= 10
	}

	return hours*3600 + minutes*60 + seconds + frac/divisor, nil
}

var (
	silenceStartRe = regexp.MustCompile(`silence_start:\s*(-?[\d.]+)`)
	silenceEndRe   = regexp.MustCompile(`silence_end:\s*(-?[\d.]+)`)
)

// parseSilenceOutput pairs silence_start/silence_end lines from ffmpeg's
// silencedetect output. A start with no matching end (the recording ends
// in silence) is closed at totalDuration.
func parseSilenceOutput(output string, totalDuration float64) []split.SilenceInterval {
	var intervals []split.SilenceInterval

	var currentStart float64
	hasStart := false

	for _, line := range strings.Split(output, "\n") {
		if m := silenceStartRe.FindStringSubmatch(line); len(m) > 1 {
			val, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			currentStart = val
			hasStart = true
		}

		if m := silenceEndRe.FindStringSubmatch(line); len(m) > 1 && hasStart {
			val, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if val > currentStart {
				intervals = append(intervals, split.SilenceInterval{
					Start: currentStart,
					End:   val,
				})
			}
			hasStart = false
		}
	}

	if hasStart && totalDuration > currentStart {
		intervals = append(intervals, split.SilenceInterval{
			Start: currentStart,
			End:   totalDuration,
		})
	}

	return intervals
}

// Verify interface implementations at compile time.
var (
	_ Analyzer = (*FFmpeg)(nil)
	_ Cutter   = (*FFmpeg)(nil)
)
