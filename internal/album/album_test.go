package album

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAlbum() *Album {
	return &Album{
		Title:  "days of future passed",
		Artist: "the moody blues",
		Tracks: []Track{
			{Title: "The Day Begins", Duration: "5:45"},
			{Title: "Dawn Is a Feeling", Duration: "3:50"},
			{Title: "Another Morning", Duration: "3:40"},
			{Title: "Peak Hour", Duration: "5:21"},
			{Title: "Forever Afternoon", Duration: "8:23"},
			{Title: "The Sunset", Duration: "6:40"},
			{Title: "Nights in White Satin", Duration: "7:41"},
		},
		SideATracks: 4,
	}
}

func TestAlbum_Sides_ExplicitCount(t *testing.T) {
	sideA, sideB, err := testAlbum().Sides()
	require.NoError(t, err)

	require.Len(t, sideA, 4)
	require.Len(t, sideB, 3)

	// Indices are 1-based within each side.
	assert.Equal(t, 1, sideA[0].Index)
	assert.Equal(t, 4, sideA[3].Index)
	assert.Equal(t, 1, sideB[0].Index)
	assert.Equal(t, "Forever Afternoon", sideB[0].Title)

	assert.Equal(t, 345.0, sideA[0].ExpectedSec)
	assert.Equal(t, 461.0, sideB[2].ExpectedSec)
}

func TestAlbum_Sides_UnknownCountSplitsHalfRoundedUp(t *testing.T) {
	a := testAlbum()
	a.SideATracks = 0

	sideA, sideB, err := a.Sides()
	require.NoError(t, err)
	assert.Len(t, sideA, 4) // ceil(7/2)
	assert.Len(t, sideB, 3)
}

func TestAlbum_Sides_OutOfRangeCountTreatedAsUnknown(t *testing.T) {
	for _, k := range []int{-2, 7, 12} {
		a := testAlbum()
		a.SideATracks = k

		sideA, sideB, err := a.Sides()
		require.NoError(t, err)
		assert.Len(t, sideA, 4, "side_a_tracks=%d", k)
		assert.Len(t, sideB, 3, "side_a_tracks=%d", k)
	}
}

func TestAlbum_Sides_MalformedDurationFailsFast(t *testing.T) {
	a := testAlbum()
	a.Tracks[2].Duration = "abc"

	_, _, err := a.Sides()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedDuration)
	assert.Contains(t, err.Error(), "Another Morning")
}

func TestAlbum_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, testAlbum().Validate())
	})

	t.Run("missing artist", func(t *testing.T) {
		a := testAlbum()
		a.Artist = ""
		assert.Error(t, a.Validate())
	})

	t.Run("no tracks", func(t *testing.T) {
		a := testAlbum()
		a.Tracks = nil
		assert.Error(t, a.Validate())
	})

	t.Run("track without duration", func(t *testing.T) {
		a := testAlbum()
		a.Tracks[0].Duration = ""
		assert.Error(t, a.Validate())
	})
}

func TestParseTracklist(t *testing.T) {
	raw := `
	1. "The Day Begins" - 5:45
	2. "Dawn: Dawn Is a Feeling" - 3:50
	Some liner notes without a time
	3. "Forever Afternoon (Tuesday?)" / "Time To Get Away" - 8:23
	Nights in White Satin 7:41
	`

	tracks := ParseTracklist(raw)
	require.Len(t, tracks, 4)

	assert.Equal(t, Track{Title: "The Day Begins", Duration: "5:45"}, tracks[0])
	assert.Equal(t, Track{Title: "Dawn: Dawn Is a Feeling", Duration: "3:50"}, tracks[1])
	assert.Equal(t, `Forever Afternoon (Tuesday?)" / "Time To Get Away`, tracks[2].Title)
	assert.Equal(t, Track{Title: "Nights in White Satin", Duration: "7:41"}, tracks[3])
}

func TestParseTracklist_Empty(t *testing.T) {
	assert.Empty(t, ParseTracklist(""))
	assert.Empty(t, ParseTracklist("no times here\nat all"))
}
