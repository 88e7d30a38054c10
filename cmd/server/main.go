// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package main is the entry point of the Cinematch server.
//
// Startup order:
//
//  1. Configuration (koanf: defaults, optional config.yaml, environment)
//  2. Logging (zerolog)
//  3. Outbound limiters and retry policies, one per upstream API
//  4. Upstream clients: TMDB, LangSearch, Gemini
//  5. Poster cache (memory LRU or BadgerDB), profile store, agents
//  6. Session manager and chi router
//  7. Supervisor tree, run until SIGINT or SIGTERM
//
// Required environment:
//
//	export TMDB_API_KEY=...
//	export GEMINI_API_KEY=...
//	export LANGSEARCH_API_KEY=...
//	export SESSION_SECRET=$(openssl rand -base64 32)
//	./cinematch
//
// With LIMITER_BACKEND=redis the LangSearch call spacing is shared by every
// replica through REDIS_URL.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/cinematch/docs" // swagger spec
	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/gemini"
	"github.com/tomtom215/cinematch/internal/langsearch"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/profiles"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/retry"
	"github.com/tomtom215/cinematch/internal/session"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
	"github.com/tomtom215/cinematch/internal/tmdb"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("model", cfg.LLM.Model).
		Str("limiter_backend", cfg.Limiter.Backend).
		Msg("Starting Cinematch")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiters, err := newLimiters(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize rate limiters")
	}
	defer limiters.Close()

	posters, err := newPosterCache(&cfg.Cache)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open poster cache")
	}
	defer func() {
		if err := posters.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing poster cache")
		}
	}()

	tmdbClient := tmdb.NewClient(&cfg.TMDB, tmdb.Deps{
		Limiter: limiters.tmdb,
		Retrier: retry.New(tmdb.ServiceName, retryPolicy(cfg.TMDB.Retry)),
		Posters: posters,
	})
	searchClient := langsearch.NewClient(&cfg.LangSearch, limiters.langsearch,
		retry.New(langsearch.ServiceName, retryPolicy(cfg.LangSearch.Retry)))
	llm := gemini.NewClient(&cfg.LLM, retry.New(gemini.ServiceName, retryPolicy(cfg.LLM.Retry)))

	agentOpts := []recommend.Option{recommend.WithMaxToolCalls(cfg.LLM.MaxToolCalls)}
	creator := recommend.NewProfileCreator(llm, searchClient, agentOpts...)
	recommender := recommend.NewRecommender(llm, searchClient, tmdbClient, agentOpts...)

	store := profiles.NewStore()

	sessions, err := session.NewManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize session manager")
	}

	handler := api.NewHandler(api.Deps{
		Search:      tmdbClient,
		Profiles:    creator,
		Recommender: recommender,
		Store:       store,
		Breakers: map[string]api.BreakerState{
			tmdb.ServiceName:       tmdbClient.Breaker(),
			langsearch.ServiceName: searchClient.Breaker(),
			gemini.ServiceName:     llm.Breaker(),
		},
		Version: version,
	})
	chiMW := api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security))
	router := api.NewRouter(handler, sessions, chiMW)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMaintenanceService(services.NewStoreGaugeService(store, cfg.Supervisor.GaugeInterval))
	tree.AddMaintenanceService(services.NewCacheMaintenanceService(posters, cfg.Cache.MaintenanceInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}

	logging.Info().Msg("Cinematch stopped")
}
