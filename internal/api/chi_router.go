// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/cinematch/internal/middleware"
	"github.com/tomtom215/cinematch/internal/session"
)

// Router wires the handler, the session manager and the middleware stack.
type Router struct {
	handler       *Handler
	sessions      *session.Manager
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, sessions *session.Manager, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		sessions:      sessions,
		chiMiddleware: mw,
	}
}

// SetupChi builds the chi router serving every route.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to all routes, in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(middleware.Compression)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())

		r.Get("/ping", router.handler.Ping)
		r.Get("/health", router.handler.Health)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		r.Get("/search", router.handler.Search)
		r.With(router.chiMiddleware.RateLimitLLM()).Post("/recommendations", router.handler.Recommendations)
	})

	router.registerProfileRoutes(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}

// registerProfileRoutes adds the session-scoped profile routes. Creating and
// listing start a session when needed; the per-profile routes require one.
func (router *Router) registerProfileRoutes(r chi.Router) {
	r.Route("/profiles", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(router.sessions.Middleware)

		r.With(router.chiMiddleware.RateLimitLLM()).Post("/", router.handler.CreateProfile)
		r.Get("/", router.handler.ListProfiles)

		r.Route("/{profileID}", func(r chi.Router) {
			r.Use(session.Require(NoSession))

			r.Get("/", router.handler.GetProfile)
			r.Delete("/", router.handler.DeleteProfile)
			r.With(router.chiMiddleware.RateLimitLLM()).Post("/recommendations", router.handler.ProfileRecommendations)
		})
	})
}
