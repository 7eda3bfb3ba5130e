package musicbrainz

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
	"releases": [
		{"id": "live-id", "title": "Days of Future Passed (Live)", "artist-credit": [{"name": "The Moody Blues"}]},
		{"id": "studio-id", "title": "Days of Future Passed", "artist-credit": [{"name": "The Moody Blues"}]}
	]
}`

const detailsBody = `{
	"title": "Days of Future Passed",
	"artist-credit": [{"name": "The Moody Blues"}],
	"media": [
		{"tracks": [
			{"title": "The Day Begins", "length": 345000},
			{"title": "Dawn Is a Feeling", "length": 230000},
			{"title": "Nights in White Satin", "length": null}
		]}
	]
}`

func newTestServer(t *testing.T, detailsStatus int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/release/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path == "/release/" {
			fmt.Fprint(w, searchBody)
			return
		}
		if detailsStatus != http.StatusOK {
			w.WriteHeader(detailsStatus)
			return
		}
		fmt.Fprint(w, detailsBody)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestClient_Lookup(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK)
	c := NewClient(WithBaseURL(srv.URL))

	a, err := c.Lookup(context.Background(), "The Moody Blues", "Days of Future Passed")
	require.NoError(t, err)

	assert.Equal(t, "days of future passed", a.Title)
	assert.Equal(t, "the moody blues", a.Artist)
	require.Len(t, a.Tracks, 3)
	assert.Equal(t, "5:45", a.Tracks[0].Duration)
	assert.Equal(t, "3:50", a.Tracks[1].Duration)
	// Unknown length comes out as 0:00.
	assert.Equal(t, "0:00", a.Tracks[2].Duration)
	assert.Equal(t, 1, a.SideATracks)
}

func TestClient_Lookup_PrefersNonLiveRelease(t *testing.T) {
	var requestedID string

	mux := http.NewServeMux()
	mux.HandleFunc("/release/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/release/" {
			fmt.Fprint(w, searchBody)
			return
		}
		requestedID = r.URL.Path
		fmt.Fprint(w, detailsBody)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Lookup(context.Background(), "The Moody Blues", "Days of Future Passed")
	require.NoError(t, err)
	assert.Equal(t, "/release/studio-id", requestedID)
}

func TestClient_Lookup_NoReleases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"releases": []}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Lookup(context.Background(), "Nobody", "Nothing")
	assert.ErrorIs(t, err, ErrNoReleases)
}

func TestClient_Lookup_ReleaseWithoutTracks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/release/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/release/" {
			fmt.Fprint(w, searchBody)
			return
		}
		fmt.Fprint(w, `{"title": "Days of Future Passed", "media": []}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Lookup(context.Background(), "The Moody Blues", "Days of Future Passed")
	assert.ErrorIs(t, err, ErrNoTracks)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, searchBody)
	}))
	defer srv.Close()

	c := NewClient(
		WithBaseURL(srv.URL),
		WithMaxRetries(3),
		WithBaseBackoff(time.Millisecond),
	)

	ref, err := c.searchRelease(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "live-id", ref.ID)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(
		WithBaseURL(srv.URL),
		WithMaxRetries(3),
		WithBaseBackoff(time.Millisecond),
	)

	_, err := c.searchRelease(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_SendsUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"releases": []}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithUserAgent("vinylsplit-test/0.1 ( test@example.com )"))
	_, _ = c.Lookup(context.Background(), "a", "b")
	assert.Equal(t, "vinylsplit-test/0.1 ( test@example.com )", ua)
}
