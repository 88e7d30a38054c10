// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/langsearch"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/ratelimit"
	"github.com/tomtom215/cinematch/internal/retry"
	"github.com/tomtom215/cinematch/internal/tmdb"
)

// limiters holds the single outbound limiter of each rate-limited API.
// Gemini is only protected by its retry policy.
type limiters struct {
	tmdb       ratelimit.Limiter
	langsearch ratelimit.Limiter
	redis      *redis.Client
}

func newLimiters(ctx context.Context, cfg *config.Config) (*limiters, error) {
	bucket, err := ratelimit.NewTokenBucket(tmdb.ServiceName, cfg.TMDB.RequestsPerSecond, cfg.TMDB.Burst)
	if err != nil {
		return nil, fmt.Errorf("tmdb limiter: %w", err)
	}
	l := &limiters{tmdb: bucket}

	switch cfg.Limiter.Backend {
	case "redis":
		opts, err := redis.ParseURL(cfg.Limiter.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		l.redis = redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := l.redis.Ping(pingCtx).Err(); err != nil {
			// RedisInterval falls back to local spacing while Redis is down.
			logging.Warn().Err(err).Msg("Redis unreachable at startup, limiter will fall back to local spacing")
		}

		l.langsearch = ratelimit.NewRedisInterval(l.redis, cfg.Limiter.KeyPrefix, langsearch.ServiceName, cfg.LangSearch.MinInterval)
		logging.Info().Str("addr", opts.Addr).Msg("Using Redis for LangSearch call spacing")
	default:
		l.langsearch = ratelimit.NewMinInterval(langsearch.ServiceName, cfg.LangSearch.MinInterval)
	}

	return l, nil
}

// Close releases the Redis connection, if any.
func (l *limiters) Close() {
	if l.redis == nil {
		return
	}
	if err := l.redis.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing Redis client")
	}
}

// posterCache is what main needs from either poster cache.
type posterCache interface {
	cache.PosterCache
	Maintain() error
	Close() error
}

// newPosterCache opens BadgerDB at cfg.PosterPath, or an in-memory LRU when
// no path is set.
func newPosterCache(cfg *config.CacheConfig) (posterCache, error) {
	if cfg.PosterPath == "" {
		logging.Info().Int("capacity", cfg.PosterCapacity).Msg("Using in-memory poster cache")
		return cache.NewMemoryPosterCache(cfg.PosterCapacity, cfg.PosterTTL), nil
	}

	c, err := cache.OpenBadgerPosterCache(cfg.PosterPath, cfg.PosterTTL)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("path", cfg.PosterPath).Msg("Using BadgerDB poster cache")
	return c, nil
}

func retryPolicy(c config.RetryConfig) retry.Policy {
	return retry.Policy{
		MaxRetries: c.MaxRetries,
		BaseDelay:  c.BaseDelay,
		MaxDelay:   c.MaxDelay,
		Jitter:     c.Jitter,
	}
}
