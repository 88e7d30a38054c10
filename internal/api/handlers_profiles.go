// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/session"
)

const msgNoSession = "No active session found"

// NoSession answers requests that need an existing session but carry none.
func NoSession(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusBadRequest, ErrCodeNoSession, msgNoSession)
}

// sessionID returns the session ID placed in the context by the session
// middleware. The router guarantees one is present on profile routes.
func sessionID(r *http.Request) (string, bool) {
	s, ok := session.FromContext(r.Context())
	return s.ID, ok
}

// CreateProfile godoc
// @Summary Create a cinematic profile
// @Description Builds a profile from favorite movies and stores it in the caller's session.
// @Tags Profiles
// @Accept json
// @Produce json
// @Param request body CreateProfileRequest true "Favorite movies"
// @Success 201 {object} APIResponse{data=models.StoredProfile}
// @Failure 400 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /profiles [post]
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	sid, ok := sessionID(r)
	if !ok {
		NoSession(w, r)
		return
	}

	var req CreateProfileRequest
	if !decodeBody(rw, r, &req, false) {
		return
	}

	profile, err := h.profiles.CreateProfile(r.Context(), req.Favorites)
	if err != nil {
		respondUpstreamError(rw, r, "gemini", err)
		return
	}

	id := h.store.GenerateProfileID()
	h.store.Save(sid, id, profile)

	logging.Ctx(r.Context()).Info().Str("profile_id", id).Msg("Profile created")
	rw.Created(models.StoredProfile{ProfileID: id, Profile: profile})
}

// ListProfiles godoc
// @Summary List the session's profiles
// @Tags Profiles
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.StoredProfile}
// @Router /profiles [get]
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	sid, ok := sessionID(r)
	if !ok {
		NoSession(w, r)
		return
	}

	stored := h.store.List(sid)
	out := make([]models.StoredProfile, 0, len(stored))
	for id, p := range stored {
		out = append(out, models.StoredProfile{ProfileID: id, Profile: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProfileID < out[j].ProfileID })

	rw.SuccessWithCount(out, len(out))
}

// GetProfile godoc
// @Summary Get a profile
// @Tags Profiles
// @Produce json
// @Param profileID path string true "Profile ID"
// @Success 200 {object} APIResponse{data=models.StoredProfile}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /profiles/{profileID} [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	sid, ok := sessionID(r)
	if !ok {
		NoSession(w, r)
		return
	}

	id := chi.URLParam(r, "profileID")
	profile, found := h.store.Get(sid, id)
	if !found {
		rw.NotFound("Profile not found")
		return
	}
	rw.Success(models.StoredProfile{ProfileID: id, Profile: profile})
}

// DeleteProfile godoc
// @Summary Delete a profile
// @Tags Profiles
// @Param profileID path string true "Profile ID"
// @Success 204
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /profiles/{profileID} [delete]
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	sid, ok := sessionID(r)
	if !ok {
		NoSession(w, r)
		return
	}

	id := chi.URLParam(r, "profileID")
	if !h.store.Delete(sid, id) {
		rw.NotFound("Profile not found")
		return
	}

	logging.Ctx(r.Context()).Info().Str("profile_id", id).Msg("Profile deleted")
	rw.NoContent()
}

// ProfileRecommendations godoc
// @Summary Recommend movies from a stored profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param profileID path string true "Profile ID"
// @Param request body ProfileRecommendationRequest false "Optional query"
// @Success 200 {object} models.Movies
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /profiles/{profileID}/recommendations [post]
func (h *Handler) ProfileRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	sid, ok := sessionID(r)
	if !ok {
		NoSession(w, r)
		return
	}

	id := chi.URLParam(r, "profileID")
	profile, found := h.store.Get(sid, id)
	if !found {
		rw.NotFound("Profile not found")
		return
	}

	var req ProfileRecommendationRequest
	if !decodeBody(rw, r, &req, true) {
		return
	}

	movies, err := h.recommender.FromProfile(r.Context(), &profile, derefOrEmpty(req.Query))
	if err != nil {
		respondUpstreamError(rw, r, "gemini", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("profile_id", id).
		Int("movies", len(movies.Movies)).
		Msg("Profile recommendations served")
	writeJSON(w, http.StatusOK, movies)
}
