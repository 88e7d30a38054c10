// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/upstream"
	"github.com/tomtom215/cinematch/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// MovieSearcher searches movies and shows. *tmdb.Client implements it.
type MovieSearcher interface {
	SearchMulti(ctx context.Context, query string) ([]models.SearchResult, error)
}

// ProfileCreator builds profiles. *recommend.ProfileCreator implements it.
type ProfileCreator interface {
	CreateProfile(ctx context.Context, favorites []string) (models.Profile, error)
}

// Recommender produces suggestions. *recommend.Recommender implements it.
type Recommender interface {
	FromProfile(ctx context.Context, profile *models.Profile, query string) (models.Movies, error)
	Legacy(ctx context.Context, favorites []string, query string) (models.Movies, error)
}

// ProfileStore keeps profiles per session. *profiles.Store implements it.
type ProfileStore interface {
	GenerateProfileID() string
	Save(sessionID, profileID string, profile models.Profile)
	Get(sessionID, profileID string) (models.Profile, bool)
	List(sessionID string) map[string]models.Profile
	Delete(sessionID, profileID string) bool
	SessionCount() int
	TotalProfileCount() int
}

// BreakerState reports a circuit breaker state. *upstream.Breaker
// implements it.
type BreakerState interface {
	State() string
}

// Deps are the collaborators of a Handler.
type Deps struct {
	Search      MovieSearcher
	Profiles    ProfileCreator
	Recommender Recommender
	Store       ProfileStore
	// Breakers maps upstream service names to their breakers for /health.
	Breakers map[string]BreakerState
	Version  string
}

// Handler serves every API route.
type Handler struct {
	search      MovieSearcher
	profiles    ProfileCreator
	recommender Recommender
	store       ProfileStore
	breakers    map[string]BreakerState
	version     string
	startTime   time.Time
}

// NewHandler creates a Handler.
func NewHandler(deps Deps) *Handler {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		search:      deps.Search,
		profiles:    deps.Profiles,
		recommender: deps.Recommender,
		store:       deps.Store,
		breakers:    deps.Breakers,
		version:     version,
		startTime:   time.Now(),
	}
}

// decodeBody decodes a JSON body into dst and validates it. An empty body
// is accepted when allowEmpty is set. On failure the error response has
// already been written and false is returned.
func decodeBody(rw *ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(rw.w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Invalid request body")
			rw.BadRequest("Invalid JSON request body")
			return false
		}
	}
	return validateRequest(rw, dst)
}

// validateRequest validates req and writes a 400 on failure.
func validateRequest(rw *ResponseWriter, req any) bool {
	if verr := validation.ValidateStruct(req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

// respondUpstreamError maps a failed upstream call to a response: 503 while
// a breaker is open, 504 on timeout, 502 otherwise. Nothing is written when
// the client went away.
func respondUpstreamError(rw *ResponseWriter, r *http.Request, service string, err error) {
	var se *upstream.StatusError
	if errors.As(err, &se) {
		service = se.Service
	}

	switch {
	case errors.Is(err, context.Canceled) && r.Context().Err() != nil:
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Client went away")
	case errors.Is(err, upstream.ErrUnavailable):
		logging.Ctx(r.Context()).Warn().Err(err).Str("service", service).Msg("Upstream circuit open")
		rw.ServiceUnavailable(service + " is temporarily unavailable, please retry later")
	case errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(r.Context()).Error().Err(err).Str("service", service).Msg("Upstream timeout")
		rw.Error(http.StatusGatewayTimeout, ErrCodeExternalServiceFail, "External service timed out: "+service)
	default:
		rw.ExternalServiceError(service, err)
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
