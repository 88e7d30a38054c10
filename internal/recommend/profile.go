// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

// ProfileCreator builds cinematic profiles from favorite movies.
type ProfileCreator struct {
	agent *agent
}

// NewProfileCreator creates a ProfileCreator. A nil searcher runs the model
// without the search tool.
func NewProfileCreator(model Model, searcher Searcher, opts ...Option) *ProfileCreator {
	s := newSettings(opts)
	a := &agent{
		name:         "profile",
		model:        model,
		system:       profileSystemPrompt,
		output:       profileSchema,
		maxToolCalls: s.maxToolCalls,
	}
	if searcher != nil {
		a.tools = []Tool{SearchMoviesTool(searcher)}
	}
	return &ProfileCreator{agent: a}
}

// CreateProfile analyzes favorites and returns the resulting profile. Empty
// lists are normalized to [], and movies_watched falls back to favorites.
func (pc *ProfileCreator) CreateProfile(ctx context.Context, favorites []string) (models.Profile, error) {
	logging.Ctx(ctx).Info().Int("favorites", len(favorites)).Msg("Creating cinematic profile")

	profile, err := runAgent[models.Profile](ctx, pc.agent, profileQuery(favorites))
	if err != nil {
		return models.Profile{}, fmt.Errorf("create profile: %w", err)
	}

	profile.Normalize()
	if len(profile.MoviesWatched) == 0 {
		profile.MoviesWatched = append([]string{}, favorites...)
	}
	metrics.ProfilesCreated.Inc()
	return profile, nil
}
