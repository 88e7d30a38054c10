// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/retry"
	"github.com/tomtom215/cinematch/internal/upstream"
)

func noSleep(context.Context, time.Duration) error { return nil }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.TMDBConfig{
		APIKey:       "test-key",
		BaseURL:      srv.URL,
		ImageBaseURL: "https://image.tmdb.org/t/p/w500",
		Language:     "fr-FR",
		Timeout:      time.Second,
	}
	c := NewClient(cfg, Deps{
		Retrier: retry.New(ServiceName, retry.Policy{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond},
			retry.WithSleep(noSleep)),
		Posters: cache.NewMemoryPosterCache(10, time.Minute),
		// A private breaker per test keeps failures from leaking between tests.
		Options: []upstream.Option{upstream.WithBreaker(upstream.NewBreaker(t.Name(), upstream.BreakerSettings{}))},
	})
	return c, srv
}

func TestSearchMulti_MapsResults(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/multi" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "test-key" || q.Get("language") != "fr-FR" || q.Get("query") != "alien" {
			t.Errorf("unexpected query %v", q)
		}
		_, _ = w.Write([]byte(`{"results":[
			{"id":348,"title":"Alien","media_type":"movie","poster_path":"/alien.jpg","release_date":"1979-05-25"},
			{"id":1,"name":"Alien Nation","media_type":"tv","first_air_date":"1989-09-18"}
		]}`))
	})

	results, err := c.SearchMulti(context.Background(), "alien")
	if err != nil {
		t.Fatalf("SearchMulti() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	movie := results[0]
	if movie.ID != 348 || movie.Title != "Alien" || movie.MediaType != "movie" || movie.ReleaseDate != "1979-05-25" {
		t.Errorf("movie = %+v", movie)
	}
	if movie.PosterPath == nil || *movie.PosterPath != "https://image.tmdb.org/t/p/w500/alien.jpg" {
		t.Errorf("movie poster = %v", movie.PosterPath)
	}

	show := results[1]
	if show.Title != "Alien Nation" || show.ReleaseDate != "1989-09-18" {
		t.Errorf("show = %+v", show)
	}
	if show.PosterPath != nil {
		t.Errorf("show poster = %v, want nil", *show.PosterPath)
	}
}

func TestSearchMulti_UpstreamError(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.SearchMulti(context.Background(), "alien")
	var se *upstream.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusUnauthorized {
		t.Errorf("SearchMulti() error = %v, want 401 StatusError", err)
	}
}

func TestSearchMulti_RetriesOn429(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	results, err := c.SearchMulti(context.Background(), "x")
	if err != nil {
		t.Fatalf("SearchMulti() error = %v", err)
	}
	if len(results) != 0 || results == nil {
		t.Errorf("results = %v, want empty non-nil", results)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestPosterURL(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("year") != "1995" {
			t.Errorf("year = %q", r.URL.Query().Get("year"))
		}
		_, _ = w.Write([]byte(`{"results":[{"id":949,"title":"Heat","poster_path":"/heat.jpg"},{"id":2,"poster_path":"/other.jpg"}]}`))
	})

	ctx := context.Background()
	want := "https://image.tmdb.org/t/p/w500/heat.jpg"
	if got := c.PosterURL(ctx, "Heat", "1995"); got != want {
		t.Errorf("PosterURL() = %q, want %q", got, want)
	}
	// Second lookup is served from the cache.
	if got := c.PosterURL(ctx, "heat", "1995"); got != want {
		t.Errorf("cached PosterURL() = %q, want %q", got, want)
	}
	if calls.Load() != 1 {
		t.Errorf("upstream calls = %d, want 1", calls.Load())
	}
}

func TestPosterURL_NoResultOrNoPoster(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "ghost" {
			_, _ = w.Write([]byte(`{"results":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"id":1,"poster_path":null}]}`))
	})

	ctx := context.Background()
	if got := c.PosterURL(ctx, "ghost", ""); got != "" {
		t.Errorf("PosterURL(no results) = %q, want empty", got)
	}
	if got := c.PosterURL(ctx, "faceless", ""); got != "" {
		t.Errorf("PosterURL(null poster) = %q, want empty", got)
	}
}

func TestPosterURL_ErrorYieldsEmptyAndIsNotCached(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"poster_path":"/p.jpg"}]}`))
	})

	ctx := context.Background()
	if got := c.PosterURL(ctx, "Heat", ""); got != "" {
		t.Errorf("PosterURL() on 500 = %q, want empty", got)
	}
	if got := c.PosterURL(ctx, "Heat", ""); got != "https://image.tmdb.org/t/p/w500/p.jpg" {
		t.Errorf("PosterURL() after recovery = %q", got)
	}
}
