// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"sync"

	"github.com/tomtom215/cinematch/internal/models"
)

type fakeSearcher struct {
	results []models.SearchResult
	err     error
	query   string
}

func (f *fakeSearcher) SearchMulti(_ context.Context, query string) ([]models.SearchResult, error) {
	f.query = query
	return f.results, f.err
}

type fakeCreator struct {
	profile   models.Profile
	err       error
	favorites []string
}

func (f *fakeCreator) CreateProfile(_ context.Context, favorites []string) (models.Profile, error) {
	f.favorites = favorites
	return f.profile, f.err
}

type fakeRecommender struct {
	mu        sync.Mutex
	movies    models.Movies
	err       error
	profile   *models.Profile
	favorites []string
	query     string
}

func (f *fakeRecommender) FromProfile(_ context.Context, profile *models.Profile, query string) (models.Movies, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = profile
	f.query = query
	return f.movies, f.err
}

func (f *fakeRecommender) Legacy(_ context.Context, favorites []string, query string) (models.Movies, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.favorites = favorites
	f.query = query
	return f.movies, f.err
}

type fixedState string

func (s fixedState) State() string { return string(s) }

func sampleProfile() models.Profile {
	return models.Profile{
		FavoriteGenres:            []string{"Science Fiction"},
		FavoriteDirectors:         []string{"Denis Villeneuve"},
		FavoriteActors:            []string{},
		PreferredDecades:          []string{"2010s"},
		MoviesWatched:             []string{"Arrival"},
		CinematicTasteDescription: "Slow, cerebral science fiction.",
	}
}

func sampleMovies() models.Movies {
	return models.Movies{Movies: []models.Movie{
		{Title: "Blade Runner 2049", Year: "2017", WhyRecommended: "Same director", Cast: []string{}, PosterPath: "https://image.tmdb.org/t/p/w500/a.jpg"},
		{Title: "Annihilation", Year: "2018", WhyRecommended: "Cerebral sci-fi", Cast: []string{}},
	}}
}
