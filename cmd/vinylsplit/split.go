package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maauso/vinylsplit/internal/bootstrap"
	"github.com/maauso/vinylsplit/internal/pipeline"
)

// splitCmd creates the split command.
func splitCmd() *cobra.Command {
	var (
		outputDir  string
		albumData  string
		artist     string
		albumTitle string
		dryRun     bool
		minSilence float64
		thresh     float64
	)

	cmd := &cobra.Command{
		Use:   "split <recording>",
		Short: "Split a recording into per-track files",
		Long: `Split cuts the recording into one file per track. The album's track
listing comes from the album cache file when it exists, or from
MusicBrainz (requires --artist and --album). With --dry-run the planned
segments are printed but nothing is cut.`,
		Example: `  vinylsplit split record.wav
  vinylsplit split record.wav --dry-run
  vinylsplit split record.wav --artist "Pink Floyd" --album "Animals" --output-dir animals/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if albumData != "" {
				cfg.AlbumCacheFile = albumData
			}

			deps, err := bootstrap.NewDependencies(cfg, logger)
			if err != nil {
				return err
			}

			report, err := deps.Pipeline.Run(cmd.Context(), pipeline.Params{
				InputPath:  args[0],
				Artist:     artist,
				AlbumTitle: albumTitle,
				Detect:     detectOpts(cmd, cfg, minSilence, thresh),
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}

			printReport(report, dryRun)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the track files (default: OUTPUT_DIR)")
	cmd.Flags().StringVar(&albumData, "album-data", "", "Album cache file path (default: ALBUM_CACHE_FILE)")
	cmd.Flags().StringVar(&artist, "artist", "", "Artist name for the metadata lookup")
	cmd.Flags().StringVar(&albumTitle, "album", "", "Album title for the metadata lookup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan the segments but cut nothing")
	addDetectFlags(cmd, &minSilence, &thresh)

	return cmd
}

// printReport prints the planned segments and, after a real run, where
// each track ended up.
func printReport(report *pipeline.Report, dryRun bool) {
	fmt.Printf("%s by %s: %d tracks over %.1fs (side break %.1f-%.1fs)\n",
		report.Album.Title,
		report.Album.Artist,
		len(report.Plan.Segments),
		report.TotalDuration,
		report.Plan.Break.Start,
		report.Plan.Break.End,
	)

	for _, seg := range report.Plan.Segments {
		fmt.Printf("%3d  %9.2f - %9.2f  (%6.2fs)  %s\n",
			seg.TrackIndex, seg.Start, seg.End, seg.Duration(), seg.Title)
	}

	if dryRun {
		fmt.Println("dry run, nothing was cut")
		return
	}

	for _, tr := range report.Tracks {
		fmt.Printf("wrote %s\n", tr.Location)
	}
}
