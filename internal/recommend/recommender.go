// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

// Recommendation flows, used as metric labels.
const (
	FlowProfile = "profile"
	FlowLegacy  = "legacy"
)

// PosterFinder resolves poster URLs, returning "" when there is none.
// *tmdb.Client implements it.
type PosterFinder interface {
	PosterURL(ctx context.Context, title, year string) string
}

// Recommender suggests movies from a profile or from a list of favorites.
type Recommender struct {
	profileAgent *agent
	legacyAgent  *agent
	posters      PosterFinder
	concurrency  int
}

// NewRecommender creates a Recommender. The profile flow relies on the
// profile alone; the legacy flow may search the web. A nil posters leaves
// every poster_path empty.
func NewRecommender(model Model, searcher Searcher, posters PosterFinder, opts ...Option) *Recommender {
	s := newSettings(opts)
	r := &Recommender{
		profileAgent: &agent{
			name:   "recommendation",
			model:  model,
			system: recommendationSystemPrompt,
			output: agentMoviesSchema,
		},
		legacyAgent: &agent{
			name:         "legacy_recommendation",
			model:        model,
			system:       legacySystemPrompt,
			output:       agentMoviesSchema,
			maxToolCalls: s.maxToolCalls,
		},
		posters:     posters,
		concurrency: s.posterConcurrency,
	}
	if searcher != nil {
		r.legacyAgent.tools = []Tool{SearchMoviesTool(searcher)}
	}
	return r
}

// FromProfile recommends movies matching profile, optionally steered by
// query.
func (r *Recommender) FromProfile(ctx context.Context, profile *models.Profile, query string) (models.Movies, error) {
	logging.Ctx(ctx).Info().Bool("has_query", query != "").Msg("Recommending from profile")

	suggestions, err := runAgent[models.AgentMovies](ctx, r.profileAgent, profileRecommendationQuery(profile, query))
	metrics.RecordRecommendation(FlowProfile, err)
	if err != nil {
		return models.Movies{}, fmt.Errorf("recommend from profile: %w", err)
	}
	return r.enrich(ctx, suggestions), nil
}

// Legacy recommends movies similar to favorites.
func (r *Recommender) Legacy(ctx context.Context, favorites []string, query string) (models.Movies, error) {
	logging.Ctx(ctx).Info().Int("favorites", len(favorites)).Bool("has_query", query != "").Msg("Recommending from favorites")

	suggestions, err := runAgent[models.AgentMovies](ctx, r.legacyAgent, legacyQuery(favorites, query))
	metrics.RecordRecommendation(FlowLegacy, err)
	if err != nil {
		return models.Movies{}, fmt.Errorf("recommend from favorites: %w", err)
	}
	return r.enrich(ctx, suggestions), nil
}

// enrich attaches posters, at most r.concurrency lookups at a time. The
// output keeps the order of suggestions.
func (r *Recommender) enrich(ctx context.Context, suggestions models.AgentMovies) models.Movies {
	movies := make([]models.Movie, len(suggestions.Movies))
	if r.posters == nil {
		for i, m := range suggestions.Movies {
			movies[i] = m.WithPoster("")
		}
		return models.Movies{Movies: movies}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, m := range suggestions.Movies {
		g.Go(func() error {
			movies[i] = m.WithPoster(r.posters.PosterURL(gctx, m.Title, m.Year))
			return nil
		})
	}
	_ = g.Wait() // lookups never fail

	return models.Movies{Movies: movies}
}
