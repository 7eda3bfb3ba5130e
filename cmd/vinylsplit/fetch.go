package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maauso/vinylsplit/internal/album"
	"github.com/maauso/vinylsplit/internal/bootstrap"
)

// fetchCmd creates the fetch command.
func fetchCmd() *cobra.Command {
	var (
		output   string
		fromFile string
		sideA    int
	)

	cmd := &cobra.Command{
		Use:   "fetch <artist> <album>",
		Short: "Fetch album metadata and write the album cache file",
		Long: `Fetch looks up the album's track listing on MusicBrainz and writes it
to the album cache file the split command reads. With --from-file the
listing is parsed from a pasted tracklist instead of the network.`,
		Example: `  vinylsplit fetch "The Moody Blues" "Days of Future Passed"
  vinylsplit fetch "The Moody Blues" "Days of Future Passed" --from-file tracklist.txt
  vinylsplit fetch "Pink Floyd" "Animals" --side-a 3 -o animals.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.AlbumCacheFile
			}

			artist, title := args[0], args[1]

			var a *album.Album
			if fromFile != "" {
				raw, err := os.ReadFile(fromFile) // #nosec G304 - user-supplied path
				if err != nil {
					return fmt.Errorf("read tracklist file: %w", err)
				}
				tracks := album.ParseTracklist(string(raw))
				if len(tracks) == 0 {
					return fmt.Errorf("no tracks recognized in %s", fromFile)
				}
				a = &album.Album{
					Title:  strings.ToLower(title),
					Artist: strings.ToLower(artist),
					Tracks: tracks,
				}
			} else {
				client := bootstrap.NewMusicBrainz(cfg)
				a, err = client.Lookup(cmd.Context(), artist, title)
				if err != nil {
					return err
				}
			}

			if sideA > 0 {
				a.SideATracks = sideA
			}

			if err := album.Save(output, a); err != nil {
				return err
			}
			logger.Info("album metadata saved",
				"album", a.Title,
				"tracks", len(a.Tracks),
				"path", output,
			)

			for i, t := range a.Tracks {
				if a.SideATracks > 0 && i == a.SideATracks {
					fmt.Println("    --- side B ---")
				}
				fmt.Printf("%2d. %s (%s)\n", i+1, t.Title, t.Duration)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Cache file path (default: ALBUM_CACHE_FILE)")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "Parse a pasted tracklist file instead of querying MusicBrainz")
	cmd.Flags().IntVar(&sideA, "side-a", 0, "Number of tracks on side A (default: half the album)")

	return cmd
}
