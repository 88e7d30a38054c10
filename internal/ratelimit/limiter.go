// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package ratelimit spaces outbound calls to third-party APIs.
//
// One limiter instance is created per upstream API at startup and shared by
// every call site that talks to that API:
//
//	lim := ratelimit.NewMinInterval("langsearch", 2*time.Second)
//	search := ratelimit.Wrap(lim, client.search)
//
// Three implementations share the Limiter interface:
//   - MinInterval guarantees a minimum gap between permits in one process.
//   - TokenBucket caps throughput with golang.org/x/time/rate.
//   - RedisInterval spaces permits across replicas through Redis.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/retry"
)

// Limiter grants permits to call a protected operation.
//
// Acquire suspends the caller until a permit is available and returns how
// long it waited. It only fails when ctx ends first, in which case no permit
// is granted.
type Limiter interface {
	Acquire(ctx context.Context) (time.Duration, error)
}

// MinInterval enforces a minimum wall-clock gap between successive permits.
//
// The read-check-sleep-update sequence runs while holding a weighted
// semaphore of size one, so concurrent callers are serialized and two of
// them can never observe the same free window. Waiters are not served in
// FIFO order.
type MinInterval struct {
	name        string
	minInterval time.Duration

	sem      *semaphore.Weighted
	lastCall time.Time

	now   func() time.Time
	sleep retry.SleepFunc
}

// IntervalOption configures a MinInterval.
type IntervalOption func(*MinInterval)

// WithClock replaces time.Now and the sleep function, mainly for tests.
func WithClock(now func() time.Time, sleep retry.SleepFunc) IntervalOption {
	return func(m *MinInterval) {
		if now != nil {
			m.now = now
		}
		if sleep != nil {
			m.sleep = sleep
		}
	}
}

// NewMinInterval creates a limiter that allows one call per minInterval.
// A non-positive interval never waits.
func NewMinInterval(name string, minInterval time.Duration, opts ...IntervalOption) *MinInterval {
	m := &MinInterval{
		name:        name,
		minInterval: minInterval,
		sem:         semaphore.NewWeighted(1),
		now:         time.Now,
		sleep:       retry.Sleep,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Acquire waits until minInterval has passed since the previous permit.
func (m *MinInterval) Acquire(ctx context.Context) (time.Duration, error) {
	if err := m.sem.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	defer m.sem.Release(1)

	now := m.now()
	var wait time.Duration
	if !m.lastCall.IsZero() {
		if elapsed := now.Sub(m.lastCall); elapsed < m.minInterval {
			wait = m.minInterval - elapsed
		}
	}

	if wait > 0 {
		logging.Ctx(ctx).Debug().
			Str("limiter", m.name).
			Dur("wait", wait).
			Msg("Rate limiting, waiting before call")
		if err := m.sleep(ctx, wait); err != nil {
			return 0, err
		}
		now = m.now()
	}

	m.lastCall = now
	metrics.RecordLimiterWait(m.name, wait)
	return wait, nil
}

// LastCall returns the time of the most recent permit, or the zero time.
func (m *MinInterval) LastCall() time.Time {
	if err := m.sem.Acquire(context.Background(), 1); err != nil {
		return time.Time{}
	}
	defer m.sem.Release(1)
	return m.lastCall
}

// MinInterval returns the configured gap.
func (m *MinInterval) MinInterval() time.Duration {
	return m.minInterval
}

// Wrap returns fn guarded by l. The wait outcome is not inspected; fn runs
// as soon as a permit is granted.
//
//	search := ratelimit.Wrap(lim, retry.Wrap(retrier, rawSearch))
func Wrap[T any](l Limiter, fn func(ctx context.Context) (T, error)) func(ctx context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		if _, err := l.Acquire(ctx); err != nil {
			var zero T
			return zero, err
		}
		return fn(ctx)
	}
}

// Unlimited never waits. It is used when an upstream has no spacing
// requirement.
type Unlimited struct{}

// Acquire returns immediately unless ctx is already done.
func (Unlimited) Acquire(ctx context.Context) (time.Duration, error) {
	return 0, ctx.Err()
}
