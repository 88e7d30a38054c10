// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
)

// Ping godoc
// @Summary Liveness check
// @Tags Core
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, PingResponse{Message: "pong"})
}

// Search godoc
// @Summary Search movies and TV shows
// @Description Proxies the TMDB multi search.
// @Tags Core
// @Produce json
// @Param query query string true "Search text"
// @Success 200 {array} models.SearchResult
// @Failure 400 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := SearchRequest{Query: r.URL.Query().Get("query")}
	if !validateRequest(rw, &req) {
		return
	}

	results, err := h.search.SearchMulti(r.Context(), req.Query)
	if err != nil {
		respondUpstreamError(rw, r, "tmdb", err)
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

// Recommendations godoc
// @Summary Recommend movies from favorites
// @Description Asks the recommendation agent for suggestions based on a list of favorite movies.
// @Tags Core
// @Accept json
// @Produce json
// @Param request body RecommendationRequest true "Favorites and an optional query"
// @Success 200 {object} models.Movies
// @Failure 400 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /recommendations [post]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendationRequest
	if !decodeBody(rw, r, &req, false) {
		return
	}

	movies, err := h.recommender.Legacy(r.Context(), req.Favorites, derefOrEmpty(req.Query))
	if err != nil {
		respondUpstreamError(rw, r, "gemini", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("favorites", len(req.Favorites)).
		Int("movies", len(movies.Movies)).
		Msg("Recommendations served")
	writeJSON(w, http.StatusOK, movies)
}
