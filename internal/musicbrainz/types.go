package musicbrainz

// searchResponse is the payload of /ws/2/release/?query=...&fmt=json.
type searchResponse struct {
	Releases []releaseRef `json:"releases"`
}

// releaseRef is one search hit.
type releaseRef struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	ArtistCredit []artistCredit `json:"artist-credit"`
}

type artistCredit struct {
	Name string `json:"name"`
}

// releaseResponse is the payload of /ws/2/release/{id}?inc=recordings.
type releaseResponse struct {
	Title        string         `json:"title"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	Media        []medium       `json:"media"`
}

type medium struct {
	Tracks []mediumTrack `json:"tracks"`
}

type mediumTrack struct {
	Title string `json:"title"`
	// Length is the track length in milliseconds; null when unknown.
	Length *int `json:"length"`
}
