// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package tmdb queries The Movie Database for search results and posters.
//
// Every call is spaced by the TMDB limiter, retried on 429 and protected by
// a circuit breaker. Poster lookups are best effort: any failure yields an
// empty URL so a missing poster never fails a recommendation.
package tmdb

import (
	"context"
	"net/url"
	"strings"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/ratelimit"
	"github.com/tomtom215/cinematch/internal/retry"
	"github.com/tomtom215/cinematch/internal/upstream"
)

// ServiceName labels TMDB in logs, metrics and the circuit breaker.
const ServiceName = "tmdb"

// Deps are the shared collaborators of a Client. Nil fields get no-op or
// default implementations.
type Deps struct {
	Limiter ratelimit.Limiter
	Retrier *retry.Retrier
	Posters cache.PosterCache
	Options []upstream.Option
}

// Client talks to the TMDB v3 API.
type Client struct {
	api          *upstream.Client
	apiKey       string
	imageBaseURL string
	language     string

	limiter ratelimit.Limiter
	retrier *retry.Retrier
	posters cache.PosterCache
}

// NewClient creates a TMDB client.
//
//	client := tmdb.NewClient(&cfg.TMDB, tmdb.Deps{Limiter: bucket, Retrier: r, Posters: posters})
//	results, err := client.SearchMulti(ctx, "alien")
func NewClient(cfg *config.TMDBConfig, deps Deps) *Client {
	c := &Client{
		api:          upstream.NewClient(ServiceName, cfg.BaseURL, cfg.Timeout, deps.Options...),
		apiKey:       cfg.APIKey,
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		language:     cfg.Language,
		limiter:      deps.Limiter,
		retrier:      deps.Retrier,
		posters:      deps.Posters,
	}
	if c.limiter == nil {
		c.limiter = ratelimit.Unlimited{}
	}
	if c.retrier == nil {
		c.retrier = retry.New(ServiceName, retry.DefaultPolicy())
	}
	if c.posters == nil {
		c.posters = cache.NewMemoryPosterCache(1000, 0)
	}
	return c
}

// searchResponse is the part of a TMDB search payload we read. Movies carry
// title/release_date, TV shows name/first_air_date.
type searchResponse struct {
	Results []struct {
		ID           int    `json:"id"`
		Title        string `json:"title"`
		Name         string `json:"name"`
		MediaType    string `json:"media_type"`
		PosterPath   string `json:"poster_path"`
		ReleaseDate  string `json:"release_date"`
		FirstAirDate string `json:"first_air_date"`
	} `json:"results"`
}

// get performs a GET through the limiter and the retrier, limiter first.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*searchResponse, error) {
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	call := ratelimit.Wrap(c.limiter, retry.Wrap(c.retrier, func(ctx context.Context) (*searchResponse, error) {
		var out searchResponse
		if err := c.api.Do(ctx, upstream.Request{Path: path, Query: params}, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}))
	return call(ctx)
}

// SearchMulti searches movies and TV shows. Posters are returned as full
// image URLs, or nil when TMDB has none.
func (c *Client) SearchMulti(ctx context.Context, query string) ([]models.SearchResult, error) {
	logging.Ctx(ctx).Info().Str("query", query).Msg("TMDB multi search")

	resp, err := c.get(ctx, "/search/multi", url.Values{"query": {query}})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("query", query).Msg("TMDB multi search failed")
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(resp.Results))
	for _, item := range resp.Results {
		r := models.SearchResult{
			ID:          item.ID,
			Title:       firstNonEmpty(item.Title, item.Name),
			MediaType:   item.MediaType,
			ReleaseDate: firstNonEmpty(item.ReleaseDate, item.FirstAirDate),
		}
		if item.PosterPath != "" {
			poster := c.imageBaseURL + item.PosterPath
			r.PosterPath = &poster
		}
		results = append(results, r)
	}

	logging.Ctx(ctx).Debug().Int("results", len(results)).Msg("TMDB multi search done")
	return results, nil
}

// PosterURL returns the poster of the first movie matching title (and year
// when given), or "" when there is none or the lookup fails. Both found and
// not-found answers are cached; failures are not.
func (c *Client) PosterURL(ctx context.Context, title, year string) string {
	key := cache.PosterKey(title, year)
	if poster, ok := c.posters.Get(ctx, key); ok {
		return poster
	}

	params := url.Values{"query": {title}}
	if year != "" {
		params.Set("year", year)
	}

	resp, err := c.get(ctx, "/search/movie", params)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("title", title).Str("year", year).Msg("Poster lookup failed")
		return ""
	}

	poster := ""
	if len(resp.Results) > 0 && resp.Results[0].PosterPath != "" {
		poster = c.imageBaseURL + resp.Results[0].PosterPath
	}
	c.posters.Set(ctx, key, poster)
	return poster
}

// Breaker exposes the circuit breaker for health reporting.
func (c *Client) Breaker() *upstream.Breaker {
	return c.api.Breaker()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
