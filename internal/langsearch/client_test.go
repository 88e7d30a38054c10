// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package langsearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/ratelimit"
	"github.com/tomtom215/cinematch/internal/retry"
	"github.com/tomtom215/cinematch/internal/upstream"
)

type recordedSleeps struct {
	delays []time.Duration
}

func (r *recordedSleeps) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, policy retry.Policy, sleeps *recordedSleeps) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.LangSearchConfig{
		APIKey:    "ls-key",
		Endpoint:  srv.URL + "/v1/web-search",
		Count:     5,
		Freshness: FreshnessNoLimit,
		Summary:   true,
		Timeout:   time.Second,
	}
	retrier := retry.New(ServiceName, policy, retry.WithSleep(sleeps.sleep))
	return NewClient(cfg, ratelimit.Unlimited{}, retrier,
		upstream.WithBreaker(upstream.NewBreaker(t.Name(), upstream.BreakerSettings{})))
}

func TestSearch_RequestAndMapping(t *testing.T) {
	t.Parallel()

	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/web-search" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer ls-key" {
			t.Errorf("Authorization = %q", got)
		}
		var body searchRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Query != "films de Wong Kar-wai" || body.Freshness != "noLimit" || !body.Summary || body.Count != 5 {
			t.Errorf("body = %+v", body)
		}
		_, _ = w.Write([]byte(`{"code":200,"data":{"webPages":{"value":[
			{"name":"In the Mood for Love","url":"https://example.org/itmfl","snippet":"2000 film","summary":"Longing in Hong Kong"}
		]}}}`))
	}
	c := newTestClient(t, handler, retry.DefaultPolicy(), &recordedSleeps{})

	results, err := c.Search(context.Background(), "films de Wong Kar-wai", nil)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d", len(results))
	}
	r := results[0]
	if r.Title != "In the Mood for Love" || r.URL != "https://example.org/itmfl" || r.Snippet != "2000 film" || r.Summary != "Longing in Hong Kong" {
		t.Errorf("result = %+v", r)
	}
}

func TestSearch_OptionsOverrideDefaults(t *testing.T) {
	t.Parallel()

	handler := func(w http.ResponseWriter, r *http.Request) {
		var body searchRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Count != 2 || body.Freshness != FreshnessWeek || body.Summary {
			t.Errorf("body = %+v", body)
		}
		_, _ = w.Write([]byte(`{"data":{}}`))
	}
	c := newTestClient(t, handler, retry.DefaultPolicy(), &recordedSleeps{})

	noSummary := false
	results, err := c.Search(context.Background(), "x", &Options{Count: 2, Freshness: FreshnessWeek, Summary: &noSummary})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}
}

func TestSearch_RetriesRateLimitedThenGivesUp(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}
	sleeps := &recordedSleeps{}
	policy := retry.Policy{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 30 * time.Second}
	c := newTestClient(t, handler, policy, sleeps)

	_, err := c.Search(context.Background(), "x", nil)
	if !upstream.IsStatus(err, http.StatusTooManyRequests) {
		t.Fatalf("Search() error = %v, want 429 StatusError", err)
	}
	if calls.Load() != 4 {
		t.Errorf("calls = %d, want 4", calls.Load())
	}
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	if len(sleeps.delays) != len(want) {
		t.Fatalf("delays = %v, want %v", sleeps.delays, want)
	}
	for i := range want {
		if sleeps.delays[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, sleeps.delays[i], want[i])
		}
	}
}

func TestSearch_ServerErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}
	c := newTestClient(t, handler, retry.DefaultPolicy(), &recordedSleeps{})

	_, err := c.Search(context.Background(), "x", nil)
	var se *upstream.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusBadGateway {
		t.Errorf("Search() error = %v, want 502", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}
