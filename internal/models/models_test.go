// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestProfileNormalize(t *testing.T) {
	t.Parallel()

	p := Profile{FavoriteGenres: []string{"noir"}}
	p.Normalize()

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("normalized profile encodes null lists: %s", data)
	}
	if len(p.FavoriteGenres) != 1 || p.FavoriteGenres[0] != "noir" {
		t.Errorf("Normalize() modified a non-nil list: %v", p.FavoriteGenres)
	}
}

func TestProfileClone(t *testing.T) {
	t.Parallel()

	orig := Profile{FavoriteGenres: []string{"noir", "western"}, MoviePreferences: "slow burn"}
	cp := orig.Clone()
	cp.FavoriteGenres[0] = "comedy"

	if orig.FavoriteGenres[0] != "noir" {
		t.Error("Clone() shares list storage with the original")
	}
	if cp.MoviePreferences != "slow burn" {
		t.Errorf("Clone() lost scalar field, got %q", cp.MoviePreferences)
	}
	if (Profile{}).Clone().FavoriteGenres != nil {
		t.Error("Clone() of nil list should stay nil")
	}
}

func TestAgentMovieWithPoster(t *testing.T) {
	t.Parallel()

	am := AgentMovie{Title: "Heat", Year: "1995", WhyRecommended: "Mann at his peak"}
	m := am.WithPoster("https://image.tmdb.org/t/p/w500/heat.jpg")

	if m.Title != "Heat" || m.Year != "1995" || m.WhyRecommended != "Mann at his peak" {
		t.Errorf("WithPoster() lost fields: %+v", m)
	}
	if m.PosterPath != "https://image.tmdb.org/t/p/w500/heat.jpg" {
		t.Errorf("PosterPath = %q", m.PosterPath)
	}
	if m.Cast == nil {
		t.Error("Cast should be an empty list, not nil")
	}
}

func TestSearchResultNullPoster(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(SearchResult{ID: 1, Title: "Alien", MediaType: "movie"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"poster_path":null`) {
		t.Errorf("expected null poster_path, got %s", data)
	}
}
