// Package album provides the track-metadata model consumed by the split
// planner: expected track durations, the side-A track count, and the
// sources that supply them (MusicBrainz or a local cache file).
package album

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/vinylsplit/internal/split"
)

// Track is one expected track: its title and nominal duration as a
// human-readable "M:SS" string.
type Track struct {
	Title    string `json:"title" validate:"required"`
	Duration string `json:"duration" validate:"required"`
}

// Album is the ordered track list for one record plus the number of
// tracks on side A.
type Album struct {
	Title  string  `json:"-"`
	Artist string  `json:"artist" validate:"required"`
	Tracks []Track `json:"tracks" validate:"required,min=1,dive"`

	// SideATracks is how many leading tracks belong to side A. Zero or an
	// out-of-range value means "unknown"; Sides then assumes half the
	// album, rounded up.
	SideATracks int `json:"side_a_tracks"`
}

// Source supplies album metadata for an artist/title pair.
type Source interface {
	Lookup(ctx context.Context, artist, title string) (*Album, error)
}

var validate = validator.New()

// Validate checks the structural invariants of the album metadata.
func (a *Album) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("album: invalid metadata: %w", err)
	}
	return nil
}

// Sides parses every track duration up front and splits the track list
// into the side A and side B specs the planner consumes. A malformed
// duration fails the whole call before any audio analysis can run.
func (a *Album) Sides() ([]split.Track, []split.Track, error) {
	parsed := make([]split.Track, len(a.Tracks))
	for i, t := range a.Tracks {
		sec, err := ParseDuration(t.Duration)
		if err != nil {
			return nil, nil, fmt.Errorf("track %d (%q): %w", i+1, t.Title, err)
		}
		parsed[i] = split.Track{Title: t.Title, ExpectedSec: sec}
	}

	k := a.SideATracks
	if k <= 0 || k >= len(parsed) {
		// Unknown or implausible: assume half the album, rounded up.
		k = (len(parsed) + 1) / 2
	}

	sideA := parsed[:k]
	sideB := parsed[k:]
	for i := range sideA {
		sideA[i].Index = i + 1
	}
	for i := range sideB {
		sideB[i].Index = i + 1
	}
	return sideA, sideB, nil
}
