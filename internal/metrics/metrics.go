// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package metrics holds the Prometheus collectors exported on /metrics.
//
// Collectors cover:
//   - inbound API latency and throughput
//   - outbound calls to TMDB, LangSearch and Gemini (status, latency, 429s, retries)
//   - outbound limiter waits
//   - circuit breaker state
//   - profile store size and poster cache efficiency
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}, // LLM-backed routes take seconds
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Upstream (TMDB, LangSearch, Gemini) Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of outbound requests by service and HTTP status",
		},
		[]string{"service", "status_code"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Outbound request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service"},
	)

	UpstreamRateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_rate_limited_total",
			Help: "Total number of HTTP 429 responses received from upstream services",
		},
		[]string{"service"},
	)

	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_retries_total",
			Help: "Total number of retries scheduled after a 429",
		},
		[]string{"service"},
	)

	UpstreamRetryDelay = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_retry_delay_seconds",
			Help:    "Backoff delay slept before a retry",
			Buckets: []float64{0.5, 1, 2, 4, 8, 16, 30, 60},
		},
		[]string{"service"},
	)

	LimiterWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outbound_limiter_wait_seconds",
			Help:    "Time spent waiting for an outbound limiter permit",
			Buckets: []float64{0, 0.01, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"limiter"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Profile Store Metrics
	ProfileSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "profile_store_sessions",
			Help: "Number of sessions holding at least one stored profile entry",
		},
	)

	ProfilesStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "profile_store_profiles",
			Help: "Total number of stored profiles across all sessions",
		},
	)

	ProfilesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profiles_created_total",
			Help: "Total number of cinematic profiles generated",
		},
	)

	// Recommendation Metrics
	RecommendationsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_generated_total",
			Help: "Total number of recommendation runs by flow",
		},
		[]string{"flow", "result"}, // flow: "profile", "legacy"
	)

	LLMToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tool_calls_total",
			Help: "Total number of tool calls requested by the model",
		},
		[]string{"tool"},
	)

	// Poster Cache Metrics
	PosterCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poster_cache_hits_total",
			Help: "Total number of poster cache hits",
		},
	)

	PosterCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poster_cache_misses_total",
			Help: "Total number of poster cache misses",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records one outbound HTTP exchange. A statusCode of 0
// means the request never produced a response (network error, timeout).
func RecordUpstreamRequest(service string, statusCode int, duration time.Duration) {
	code := "error"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	UpstreamRequestsTotal.WithLabelValues(service, code).Inc()
	UpstreamRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
	if statusCode == 429 {
		UpstreamRateLimited.WithLabelValues(service).Inc()
	}
}

// RecordRetry records a scheduled retry and its backoff delay.
func RecordRetry(service string, delay time.Duration) {
	UpstreamRetries.WithLabelValues(service).Inc()
	UpstreamRetryDelay.WithLabelValues(service).Observe(delay.Seconds())
}

// RecordLimiterWait records the wait returned by an outbound limiter.
func RecordLimiterWait(limiter string, wait time.Duration) {
	LimiterWait.WithLabelValues(limiter).Observe(wait.Seconds())
}

// UpdateProfileStore publishes profile store sizes.
func UpdateProfileStore(sessions, profiles int) {
	ProfileSessions.Set(float64(sessions))
	ProfilesStored.Set(float64(profiles))
}

// RecordRecommendation records the outcome of a recommendation run.
func RecordRecommendation(flow string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	RecommendationsGenerated.WithLabelValues(flow, result).Inc()
}

// RecordPosterCache records a poster cache lookup.
func RecordPosterCache(hit bool) {
	if hit {
		PosterCacheHits.Inc()
	} else {
		PosterCacheMisses.Inc()
	}
}
