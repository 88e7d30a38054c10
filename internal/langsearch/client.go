// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package langsearch is a client for the LangSearch web search API, which
// the LLM uses as a tool to look up movies, actors and directors.
//
// The API allows roughly one call every two seconds per key. Every search
// waits on the shared LangSearch limiter and is then retried on 429 with
// exponential backoff.
package langsearch

import (
	"context"
	"net/http"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/ratelimit"
	"github.com/tomtom215/cinematch/internal/retry"
	"github.com/tomtom215/cinematch/internal/upstream"
)

// ServiceName labels LangSearch in logs, metrics and the circuit breaker.
const ServiceName = "langsearch"

// Freshness values accepted by the API.
const (
	FreshnessNoLimit = "noLimit"
	FreshnessDay     = "oneDay"
	FreshnessWeek    = "oneWeek"
	FreshnessMonth   = "oneMonth"
	FreshnessYear    = "oneYear"
)

// Options override the configured defaults for one search.
type Options struct {
	Count     int
	Freshness string
	// Summary requests LLM-written page summaries. Nil keeps the default.
	Summary *bool
}

// Client performs web searches.
type Client struct {
	api      *upstream.Client
	endpoint string
	defaults Options

	limiter ratelimit.Limiter
	retrier *retry.Retrier
}

// searchRequest is the POST body.
type searchRequest struct {
	Query     string `json:"query"`
	Freshness string `json:"freshness"`
	Summary   bool   `json:"summary"`
	Count     int    `json:"count"`
}

// searchResponse holds the fields we read from the response.
type searchResponse struct {
	Data struct {
		WebPages struct {
			Value []struct {
				Name    string `json:"name"`
				URL     string `json:"url"`
				Snippet string `json:"snippet"`
				Summary string `json:"summary"`
			} `json:"value"`
		} `json:"webPages"`
	} `json:"data"`
}

// NewClient creates a LangSearch client. limiter and retrier are composed
// limiter first, so a burst of 429 retries does not hold the limiter.
func NewClient(cfg *config.LangSearchConfig, limiter ratelimit.Limiter, retrier *retry.Retrier, opts ...upstream.Option) *Client {
	if limiter == nil {
		limiter = ratelimit.NewMinInterval(ServiceName, cfg.MinInterval)
	}
	if retrier == nil {
		retrier = retry.New(ServiceName, retry.DefaultPolicy())
	}

	opts = append([]upstream.Option{upstream.WithHeader("Authorization", "Bearer "+cfg.APIKey)}, opts...)
	summary := cfg.Summary
	c := &Client{
		api:      upstream.NewClient(ServiceName, cfg.Endpoint, cfg.Timeout, opts...),
		endpoint: cfg.Endpoint,
		defaults: Options{Count: cfg.Count, Freshness: cfg.Freshness, Summary: &summary},
		limiter:  limiter,
		retrier:  retrier,
	}
	return c
}

// Search runs a web search and returns the matching pages.
func (c *Client) Search(ctx context.Context, query string, opts *Options) ([]models.WebResult, error) {
	body := searchRequest{
		Query:     query,
		Freshness: c.defaults.Freshness,
		Summary:   *c.defaults.Summary,
		Count:     c.defaults.Count,
	}
	if opts != nil {
		if opts.Count > 0 {
			body.Count = opts.Count
		}
		if opts.Freshness != "" {
			body.Freshness = opts.Freshness
		}
		if opts.Summary != nil {
			body.Summary = *opts.Summary
		}
	}

	logging.Ctx(ctx).Info().
		Str("query", query).
		Int("count", body.Count).
		Msg("LangSearch web search")

	search := ratelimit.Wrap(c.limiter, retry.Wrap(c.retrier, func(ctx context.Context) ([]models.WebResult, error) {
		return c.doSearch(ctx, body)
	}))
	results, err := search(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("query", query).Msg("LangSearch web search failed")
		return nil, err
	}
	return results, nil
}

func (c *Client) doSearch(ctx context.Context, body searchRequest) ([]models.WebResult, error) {
	var resp searchResponse
	err := c.api.Do(ctx, upstream.Request{
		Method: http.MethodPost,
		Path:   c.endpoint,
		Body:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}

	pages := resp.Data.WebPages.Value
	results := make([]models.WebResult, 0, len(pages))
	for _, p := range pages {
		results = append(results, models.WebResult{
			Title:   p.Name,
			URL:     p.URL,
			Snippet: p.Snippet,
			Summary: p.Summary,
		})
	}
	return results, nil
}

// Breaker exposes the circuit breaker for health reporting.
func (c *Client) Breaker() *upstream.Breaker {
	return c.api.Breaker()
}
