// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/ping", "200"))

	RecordAPIRequest("GET", "/ping", "200", 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/ping", "200"))
	if after != before+1 {
		t.Errorf("api_requests_total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	tests := []struct {
		name        string
		service     string
		status      int
		label       string
		rateLimited bool
	}{
		{name: "ok", service: "tmdb-test", status: 200, label: "200"},
		{name: "too many requests", service: "langsearch-test", status: 429, label: "429", rateLimited: true},
		{name: "network error", service: "gemini-test", status: 0, label: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues(tt.service, tt.label))
			limitedBefore := testutil.ToFloat64(UpstreamRateLimited.WithLabelValues(tt.service))

			RecordUpstreamRequest(tt.service, tt.status, 100*time.Millisecond)

			if got := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues(tt.service, tt.label)); got != before+1 {
				t.Errorf("upstream_requests_total = %v, want %v", got, before+1)
			}
			limitedAfter := testutil.ToFloat64(UpstreamRateLimited.WithLabelValues(tt.service))
			if tt.rateLimited && limitedAfter != limitedBefore+1 {
				t.Errorf("upstream_rate_limited_total = %v, want %v", limitedAfter, limitedBefore+1)
			}
			if !tt.rateLimited && limitedAfter != limitedBefore {
				t.Errorf("upstream_rate_limited_total changed for status %d", tt.status)
			}
		})
	}
}

func TestRecordRetry(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRetries.WithLabelValues("retry-test"))
	RecordRetry("retry-test", 2*time.Second)
	if got := testutil.ToFloat64(UpstreamRetries.WithLabelValues("retry-test")); got != before+1 {
		t.Errorf("upstream_retries_total = %v, want %v", got, before+1)
	}
}

func TestUpdateProfileStore(t *testing.T) {
	UpdateProfileStore(3, 7)

	if got := testutil.ToFloat64(ProfileSessions); got != 3 {
		t.Errorf("profile_store_sessions = %v, want 3", got)
	}
	if got := testutil.ToFloat64(ProfilesStored); got != 7 {
		t.Errorf("profile_store_profiles = %v, want 7", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	okBefore := testutil.ToFloat64(RecommendationsGenerated.WithLabelValues("legacy", "success"))
	failBefore := testutil.ToFloat64(RecommendationsGenerated.WithLabelValues("legacy", "failure"))

	RecordRecommendation("legacy", nil)
	RecordRecommendation("legacy", errors.New("model unavailable"))

	if got := testutil.ToFloat64(RecommendationsGenerated.WithLabelValues("legacy", "success")); got != okBefore+1 {
		t.Errorf("success = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(RecommendationsGenerated.WithLabelValues("legacy", "failure")); got != failBefore+1 {
		t.Errorf("failure = %v, want %v", got, failBefore+1)
	}
}

func TestRecordPosterCache(t *testing.T) {
	hits := testutil.ToFloat64(PosterCacheHits)
	misses := testutil.ToFloat64(PosterCacheMisses)

	RecordPosterCache(true)
	RecordPosterCache(false)
	RecordPosterCache(false)

	if got := testutil.ToFloat64(PosterCacheHits); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(PosterCacheMisses); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}
