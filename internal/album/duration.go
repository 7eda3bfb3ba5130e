package album

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrMalformedDuration is returned when a track duration string is not of
// the form "M:SS" or "MM:SS" with seconds below 60.
var ErrMalformedDuration = errors.New("album: malformed duration")

var durationRe = regexp.MustCompile(`^(\d{1,2}):([0-5]\d)$`)

// ParseDuration converts an "M:SS" or "MM:SS" duration string to seconds.
func ParseDuration(s string) (float64, error) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, s)
	}

	minutes, _ := strconv.Atoi(m[1])
	seconds, _ := strconv.Atoi(m[2])
	return float64(minutes*60 + seconds), nil
}

// FormatDuration renders a millisecond track length as "M:SS". Unknown
// lengths (zero or negative) come out as "0:00".
func FormatDuration(ms int) string {
	if ms <= 0 {
		return "0:00"
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
