package album

import (
	"regexp"
	"strings"
)

var (
	trailingTimeRe  = regexp.MustCompile(`(\d{1,2}:\d{2})$`)
	leadingNumberRe = regexp.MustCompile(`^\d+\.\s*`)
)

// ParseTracklist extracts tracks from raw pasted tracklist text using a
// line-by-line heuristic: any line ending in an "M:SS" time contributes a
// track, with leading numbering, trailing dashes and surrounding quotes
// stripped from the title.
func ParseTracklist(raw string) []Track {
	var tracks []Track
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)

		m := trailingTimeRe.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		duration := line[m[2]:m[3]]

		title := strings.TrimSpace(line[:m[0]])
		title = leadingNumberRe.ReplaceAllString(title, "")
		title = strings.TrimRight(title, " -–")
		title = strings.Trim(title, `"`)

		if title != "" {
			tracks = append(tracks, Track{Title: title, Duration: duration})
		}
	}
	return tracks
}
