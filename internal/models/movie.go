// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// AgentMovie is a single suggestion produced by the recommendation model.
// Title and WhyRecommended are always set; the rest is best effort.
type AgentMovie struct {
	Title          string   `json:"title" validate:"notblank"`
	Year           string   `json:"year"`
	Genre          string   `json:"genre"`
	Director       string   `json:"director"`
	Description    string   `json:"description"`
	WhyRecommended string   `json:"why_recommended" validate:"notblank"`
	Rating         string   `json:"rating"`
	Cast           []string `json:"cast"`
}

// AgentMovies is the structured output expected from the model.
type AgentMovies struct {
	Movies []AgentMovie `json:"movies" validate:"min=1,dive"`
}

// Movie is an AgentMovie enriched with a poster URL ("" when none was found).
type Movie struct {
	Title          string   `json:"title"`
	Year           string   `json:"year"`
	Genre          string   `json:"genre"`
	Director       string   `json:"director"`
	Description    string   `json:"description"`
	WhyRecommended string   `json:"why_recommended"`
	Rating         string   `json:"rating"`
	Cast           []string `json:"cast"`
	PosterPath     string   `json:"poster_path"`
}

// Movies is the response body of every recommendation endpoint.
type Movies struct {
	Movies []Movie `json:"movies"`
}

// WithPoster converts m to a Movie carrying posterURL.
func (m AgentMovie) WithPoster(posterURL string) Movie {
	movieCast := m.Cast
	if movieCast == nil {
		movieCast = []string{}
	}
	return Movie{
		Title:          m.Title,
		Year:           m.Year,
		Genre:          m.Genre,
		Director:       m.Director,
		Description:    m.Description,
		WhyRecommended: m.WhyRecommended,
		Rating:         m.Rating,
		Cast:           movieCast,
		PosterPath:     posterURL,
	}
}
