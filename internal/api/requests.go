// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

// SearchRequest holds the /search query parameters.
type SearchRequest struct {
	Query string `json:"query" validate:"required"`
}

// RecommendationRequest is the body of POST /recommendations.
type RecommendationRequest struct {
	Favorites []string `json:"favorites" validate:"min=1,dive,notblank"`
	Query     *string  `json:"query,omitempty"`
}

// CreateProfileRequest is the body of POST /profiles.
type CreateProfileRequest struct {
	Favorites []string `json:"favorites" validate:"min=1,dive,notblank"`
}

// ProfileRecommendationRequest is the optional body of
// POST /profiles/{profileID}/recommendations.
type ProfileRecommendationRequest struct {
	Query *string `json:"query,omitempty"`
}

// PingResponse is the /ping body.
type PingResponse struct {
	Message string `json:"message"`
}

// HealthStatus is the /health payload.
type HealthStatus struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Sessions      int               `json:"sessions"`
	Profiles      int               `json:"profiles"`
	Upstreams     map[string]string `json:"upstreams"`
}
