// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/metrics"
)

// TokenBucket caps throughput at a steady rate with bursts. TMDB allows
// roughly forty requests per second per key, so poster lookups fanned out
// over a long suggestion list are smoothed rather than spaced one by one.
type TokenBucket struct {
	name    string
	limiter *rate.Limiter
	now     func() time.Time
}

// NewTokenBucket creates a bucket refilled at rps tokens per second.
func NewTokenBucket(name string, rps float64, burst int) (*TokenBucket, error) {
	if rps <= 0 {
		return nil, fmt.Errorf("ratelimit: %s requests per second must be positive, got %v", name, rps)
	}
	if burst < 1 {
		burst = 1
	}
	return &TokenBucket{
		name:    name,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		now:     time.Now,
	}, nil
}

// Acquire blocks until a token is available.
func (b *TokenBucket) Acquire(ctx context.Context) (time.Duration, error) {
	start := b.now()
	if err := b.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	wait := b.now().Sub(start)
	metrics.RecordLimiterWait(b.name, wait)
	return wait, nil
}

// Allow reports whether a token is available right now without waiting.
func (b *TokenBucket) Allow() bool {
	return b.limiter.Allow()
}
