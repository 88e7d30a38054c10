// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// IsRateLimited reports whether err (or anything it wraps) carries HTTP 429.
func IsRateLimited(err error) bool {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode() == http.StatusTooManyRequests
	}
	return false
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc. It returns ctx.Err() if ctx ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retrier applies a Policy to calls. It is safe for concurrent use.
type Retrier struct {
	name     string
	policy   Policy
	sleep    SleepFunc
	uniform  func() float64
	classify func(error) bool
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithSleep replaces the sleep function, mainly for tests.
func WithSleep(fn SleepFunc) Option {
	return func(r *Retrier) { r.sleep = fn }
}

// WithJitterSource replaces the [0,1) random source used for jitter.
func WithJitterSource(fn func() float64) Option {
	return func(r *Retrier) { r.uniform = fn }
}

// WithClassifier replaces IsRateLimited as the retry predicate.
func WithClassifier(fn func(error) bool) Option {
	return func(r *Retrier) { r.classify = fn }
}

// New creates a Retrier. name labels logs and metrics (e.g. "langsearch").
func New(name string, policy Policy, opts ...Option) *Retrier {
	r := &Retrier{
		name:     name,
		policy:   policy,
		sleep:    Sleep,
		uniform:  rand.Float64,
		classify: IsRateLimited,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the retrier's policy.
func (r *Retrier) Policy() Policy {
	return r.policy
}

// Do calls fn until it succeeds, fails with a non-retryable error, or the
// retry budget is spent. The returned error is exactly the last error fn
// returned, or ctx.Err() if ctx ends during a backoff sleep.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := DoValue(ctx, r, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoValue is Do for functions that return a value.
func DoValue[T any](ctx context.Context, r *Retrier, fn func(ctx context.Context) (T, error)) (T, error) {
	for attempt := 0; ; attempt++ {
		logging.Ctx(ctx).Debug().
			Str("service", r.name).
			Int("attempt", attempt+1).
			Int("max_attempts", r.policy.MaxRetries+1).
			Msg("Calling upstream")

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !r.classify(err) {
			return result, err
		}
		if attempt >= r.policy.MaxRetries {
			logging.Ctx(ctx).Error().
				Str("service", r.name).
				Int("attempts", attempt+1).
				Msg("Rate limited on every attempt, giving up")
			return result, err
		}

		delay := r.policy.Delay(attempt, r.uniform())
		metrics.RecordRetry(r.name, delay)
		logging.Ctx(ctx).Warn().
			Str("service", r.name).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("Upstream returned 429, backing off")

		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			var zero T
			return zero, sleepErr
		}
	}
}

// Wrap returns fn wrapped so that every call goes through r.
//
//	search := retry.Wrap(retrier, client.rawSearch)
//	results, err := search(ctx)
func Wrap[T any](r *Retrier, fn func(ctx context.Context) (T, error)) func(ctx context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		return DoValue(ctx, r, fn)
	}
}
