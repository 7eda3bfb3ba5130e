// Package musicbrainz implements the album.Source interface against the
// MusicBrainz /ws/2 web service.
package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maauso/vinylsplit/internal/album"
)

// Static errors for MusicBrainz client operations.
var (
	// ErrNoReleases is returned when the search matched no release.
	ErrNoReleases = errors.New("musicbrainz: no matching release found")
	// ErrNoTracks is returned when the selected release carries no media
	// or track listing.
	ErrNoTracks = errors.New("musicbrainz: release has no track listing")
	// ErrServerError is returned when the server returns a 5xx status code.
	ErrServerError = errors.New("musicbrainz: server error")
	// ErrRateLimited is returned when the server returns a 429 status code.
	ErrRateLimited = errors.New("musicbrainz: rate limited")
	// ErrRequestFailed is returned when the request fails with a non-2xx status code.
	ErrRequestFailed = errors.New("musicbrainz: request failed")
)

// defaultUserAgent identifies the tool; MusicBrainz requires a meaningful
// User-Agent with contact information.
const defaultUserAgent = "vinylsplit/1.0 ( vinylsplit@example.com )"

// Client talks to the MusicBrainz web service. It implements album.Source.
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	maxRetries  int
	baseBackoff time.Duration
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(mc *Client) {
		mc.httpClient = c
	}
}

// WithBaseURL sets a custom base URL for the MusicBrainz API.
func WithBaseURL(u string) ClientOption {
	return func(mc *Client) {
		mc.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(mc *Client) {
		if ua != "" {
			mc.userAgent = ua
		}
	}
}

// WithMaxRetries sets the maximum number of retries for transient failures.
func WithMaxRetries(n int) ClientOption {
	return func(mc *Client) {
		mc.maxRetries = n
	}
}

// WithBaseBackoff sets the initial backoff duration for retries.
func WithBaseBackoff(d time.Duration) ClientOption {
	return func(mc *Client) {
		mc.baseBackoff = d
	}
}

// NewClient creates a MusicBrainz client with sensible defaults.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     "https://musicbrainz.org/ws/2",
		userAgent:   defaultUserAgent,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		maxRetries:  3,
		baseBackoff: 1 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup searches MusicBrainz for the album and returns its track listing
// with durations formatted as "M:SS". Among the search hits it prefers
// the first release whose title does not contain "live", falling back to
// the first hit. The side-A track count is estimated as half the tracks;
// the caller may override it.
func (c *Client) Lookup(ctx context.Context, artist, title string) (*album.Album, error) {
	ref, err := c.searchRelease(ctx, artist, title)
	if err != nil {
		return nil, err
	}

	details, err := c.releaseDetails(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	if len(details.Media) == 0 || len(details.Media[0].Tracks) == 0 {
		return nil, fmt.Errorf("%w: release %s", ErrNoTracks, ref.ID)
	}

	// First media entry only; multi-disc releases are out of scope.
	mbTracks := details.Media[0].Tracks
	tracks := make([]album.Track, 0, len(mbTracks))
	for _, t := range mbTracks {
		lengthMs := 0
		if t.Length != nil {
			lengthMs = *t.Length
		}
		tracks = append(tracks, album.Track{
			Title:    t.Title,
			Duration: album.FormatDuration(lengthMs),
		})
	}

	creditedArtist := artist
	if len(ref.ArtistCredit) > 0 {
		creditedArtist = ref.ArtistCredit[0].Name
	}

	a := &album.Album{
		Title:  strings.ToLower(ref.Title),
		Artist: strings.ToLower(creditedArtist),
		Tracks: tracks,
		// An estimate the user is expected to verify.
		SideATracks: len(tracks) / 2,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// searchRelease queries the release search endpoint and picks the
// preferred hit.
func (c *Client) searchRelease(ctx context.Context, artist, title string) (releaseRef, error) {
	query := fmt.Sprintf("artist:%s AND release:%s AND primarytype:album", artist, title)
	u := fmt.Sprintf("%s/release/?query=%s&fmt=json", c.baseURL, url.QueryEscape(query))

	var resp searchResponse
	if err := c.doRequestWithRetry(ctx, u, &resp); err != nil {
		return releaseRef{}, err
	}
	if len(resp.Releases) == 0 {
		return releaseRef{}, fmt.Errorf("%w: %q by %q", ErrNoReleases, title, artist)
	}

	for _, r := range resp.Releases {
		if !strings.Contains(strings.ToLower(r.Title), "live") {
			return r, nil
		}
	}
	return resp.Releases[0], nil
}

// releaseDetails fetches the release with its recordings included.
func (c *Client) releaseDetails(ctx context.Context, releaseID string) (releaseResponse, error) {
	u := fmt.Sprintf("%s/release/%s?inc=recordings&fmt=json", c.baseURL, releaseID)

	var resp releaseResponse
	if err := c.doRequestWithRetry(ctx, u, &resp); err != nil {
		return releaseResponse{}, err
	}
	return resp, nil
}

// doRequestWithRetry performs a GET with exponential backoff retry.
func (c *Client) doRequestWithRetry(ctx context.Context, u string, result interface{}) error {
	var lastErr error
	backoff := c.baseBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("musicbrainz: context cancelled: %w", ctx.Err())
			case <-time.After(backoff):
				backoff *= 2 // Exponential backoff
			}
		}

		err := c.doRequest(ctx, u, result)
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("musicbrainz: max retries exceeded: %w", lastErr)
}

// doRequest performs a single GET request.
func (c *Client) doRequest(ctx context.Context, u string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("musicbrainz: create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &retryableError{err: fmt.Errorf("musicbrainz: request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &retryableError{err: fmt.Errorf("musicbrainz: read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode >= 500 {
			return &retryableError{err: fmt.Errorf("%w %d: %s", ErrServerError, resp.StatusCode, string(respBody))}
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return &retryableError{err: fmt.Errorf("%w: %s", ErrRateLimited, string(respBody))}
		}
		return fmt.Errorf("%w with status %d: %s", ErrRequestFailed, resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("musicbrainz: unmarshal response: %w", err)
		}
	}
	return nil
}

// retryableError wraps errors that should be retried.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return e.err.Error()
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// isRetryable returns true if the error should be retried.
func isRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// Verify interface implementation at compile time.
var _ album.Source = (*Client)(nil)
