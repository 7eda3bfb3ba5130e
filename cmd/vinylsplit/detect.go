package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maauso/vinylsplit/internal/audio"
	"github.com/maauso/vinylsplit/internal/config"
	"github.com/maauso/vinylsplit/internal/split"
)

// detectCmd creates the detect command.
func detectCmd() *cobra.Command {
	var (
		minSilence float64
		thresh     float64
	)

	cmd := &cobra.Command{
		Use:   "detect <recording>",
		Short: "Print the silence intervals detected in a recording",
		Long: `Detect runs ffmpeg's silencedetect filter over the recording and
prints every silence interval it finds, marking the longest one as the
probable side break. Useful for tuning the detection parameters before
splitting.`,
		Example: `  vinylsplit detect record.wav
  vinylsplit detect record.wav --min-silence-len 0.5 --silence-thresh -35`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}

			opts := detectOpts(cmd, cfg, minSilence, thresh)
			ffmpeg := audio.NewFFmpeg(cfg.FFmpegPath)
			ctx := cmd.Context()

			total, err := ffmpeg.Duration(ctx, args[0])
			if err != nil {
				return err
			}
			silences, err := ffmpeg.DetectSilences(ctx, args[0], opts)
			if err != nil {
				return err
			}

			fmt.Printf("%s: %.1fs, %d silences (min %.2gs below %.3g dB)\n",
				args[0], total, len(silences), opts.MinSilenceSec, opts.NoiseThreshDB)

			brk, err := split.SideBreak(silences)
			if err != nil && !errors.Is(err, split.ErrNoSideBreakFound) {
				return err
			}

			for i, si := range silences {
				marker := ""
				if si == brk {
					marker = "  <- probable side break"
				}
				fmt.Printf("%3d  %9.2f - %9.2f  (%5.2fs)%s\n",
					i+1, si.Start, si.End, si.Duration(), marker)
			}
			return nil
		},
	}

	addDetectFlags(cmd, &minSilence, &thresh)

	return cmd
}

// addDetectFlags registers the silence tuning flags shared by detect
// and split.
func addDetectFlags(cmd *cobra.Command, minSilence, thresh *float64) {
	cmd.Flags().Float64Var(minSilence, "min-silence-len", 0, "Minimum silence length in seconds (default: MIN_SILENCE_SEC)")
	cmd.Flags().Float64Var(thresh, "silence-thresh", 0, "Silence threshold in dBFS (default: SILENCE_THRESH_DB)")
}

// detectOpts merges flag overrides with the configured defaults.
func detectOpts(cmd *cobra.Command, cfg *config.Config, minSilence, thresh float64) audio.DetectOpts {
	opts := audio.DetectOpts{
		MinSilenceSec: cfg.MinSilenceSec,
		NoiseThreshDB: cfg.SilenceThreshDB,
	}
	if cmd.Flags().Changed("min-silence-len") {
		opts.MinSilenceSec = minSilence
	}
	if cmd.Flags().Changed("silence-thresh") {
		opts.NoiseThreshDB = thresh
	}
	return opts
}
