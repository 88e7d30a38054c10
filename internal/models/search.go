// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// SearchResult is one hit of a TMDB multi search, as returned by GET /search.
// PosterPath is a full image URL or nil when TMDB has no poster.
type SearchResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	MediaType   string  `json:"media_type"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
}

// WebResult is one web page returned by LangSearch.
type WebResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Summary string `json:"summary"`
}
