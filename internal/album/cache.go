package album

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Static errors for cache file operations.
var (
	// ErrAlbumNotInCache is returned when the cache file has no entry for
	// the requested album title.
	ErrAlbumNotInCache = errors.New("album: not found in cache file")
	// ErrAmbiguousCache is returned when no title was given and the cache
	// file holds more than one album.
	ErrAmbiguousCache = errors.New("album: cache file holds multiple albums, title required")
)

// cacheSchema guards the album_data.json shape before anything is decoded
// from it: one object per album title, each with artist, tracks and an
// optional side_a_tracks count.
const cacheSchema = `{
	"type": "object",
	"minProperties": 1,
	"additionalProperties": {
		"type": "object",
		"required": ["artist", "tracks"],
		"properties": {
			"artist": {"type": "string", "minLength": 1},
			"side_a_tracks": {"type": "integer", "minimum": 0},
			"tracks": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["title", "duration"],
					"properties": {
						"title": {"type": "string", "minLength": 1},
						"duration": {"type": "string", "pattern": "^[0-9]{1,2}:[0-5][0-9]$"}
					}
				}
			}
		}
	}
}`

var compiledCacheSchema = jsonschema.MustCompileString("album_data.schema.json", cacheSchema)

// cacheEntry is the per-album value in the cache file; the album title is
// the surrounding object key.
type cacheEntry struct {
	Artist      string  `json:"artist"`
	Tracks      []Track `json:"tracks"`
	SideATracks int     `json:"side_a_tracks"`
}

// CacheFile is a Source backed by the album_data.json file the fetch
// command writes.
type CacheFile struct {
	path string
}

// NewCacheFile creates a cache-file source for the given path.
func NewCacheFile(path string) *CacheFile {
	return &CacheFile{path: path}
}

// Lookup loads the cache file and returns the entry for title. An empty
// title is accepted when the file holds exactly one album. The artist
// argument is ignored; the cache is keyed by title only.
func (c *CacheFile) Lookup(_ context.Context, _ string, title string) (*Album, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("album: read cache file: %w", err)
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("album: parse cache file %s: %w", c.path, err)
	}
	if err := compiledCacheSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("album: cache file %s failed schema validation: %w", c.path, err)
	}

	var entries map[string]cacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("album: decode cache file %s: %w", c.path, err)
	}

	key := strings.ToLower(strings.TrimSpace(title))
	if key == "" {
		if len(entries) > 1 {
			return nil, ErrAmbiguousCache
		}
		for k := range entries {
			key = k
		}
	}

	entry, ok := entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrAlbumNotInCache, title, c.path)
	}

	a := &Album{
		Title:       key,
		Artist:      entry.Artist,
		Tracks:      entry.Tracks,
		SideATracks: entry.SideATracks,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Save writes the album to path in the cache file shape, keyed by the
// lowercased album title.
func Save(path string, a *Album) error {
	if err := a.Validate(); err != nil {
		return err
	}

	out := map[string]cacheEntry{
		strings.ToLower(a.Title): {
			Artist:      strings.ToLower(a.Artist),
			Tracks:      a.Tracks,
			SideATracks: a.SideATracks,
		},
	}

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("album: marshal cache file: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("album: write cache file %s: %w", path, err)
	}
	return nil
}
