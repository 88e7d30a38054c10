// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package retry retries calls that fail with HTTP 429 Too Many Requests.
//
// A Retrier applies a Policy to a single invocation:
//
//	attempt n fails with 429, n < MaxRetries  -> sleep Delay(n), try again
//	attempt n fails with 429, n == MaxRetries -> return that error
//	attempt fails with anything else          -> return it immediately
//
// The function is invoked at most MaxRetries+1 times and the error returned
// is always the last error observed, unwrapped, so callers can still inspect
// it with errors.As.
package retry

import (
	"errors"
	"math"
	"time"
)

// Policy describes exponential backoff with optional jitter.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt. 0 means a single attempt.
	MaxRetries int

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// MaxDelay caps every computed delay, jitter included.
	MaxDelay time.Duration

	// Jitter adds a uniformly distributed 0-1s component to each delay.
	Jitter bool
}

// Policy validation errors.
var (
	ErrNegativeRetries = errors.New("retry: max retries must not be negative")
	ErrBaseDelay       = errors.New("retry: base delay must be positive")
	ErrMaxDelay        = errors.New("retry: max delay must be >= base delay")
)

// DefaultPolicy returns 3 retries from 1s up to 60s with jitter.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   60 * time.Second,
		Jitter:     true,
	}
}

// Validate reports whether the policy is usable.
func (p Policy) Validate() error {
	if p.MaxRetries < 0 {
		return ErrNegativeRetries
	}
	if p.BaseDelay <= 0 {
		return ErrBaseDelay
	}
	if p.MaxDelay < p.BaseDelay {
		return ErrMaxDelay
	}
	return nil
}

// Backoff returns the deterministic part of the delay before retry n
// (0-indexed): min(BaseDelay * 2^n, MaxDelay).
func (p Policy) Backoff(n int) time.Duration {
	if n < 0 {
		n = 0
	}
	d := float64(p.BaseDelay) * math.Pow(2, float64(n))
	if d >= float64(p.MaxDelay) || math.IsInf(d, 0) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// Delay returns min(BaseDelay*2^n + jitter, MaxDelay), where jitter is
// u seconds when Jitter is set and u is drawn from [0, 1).
func (p Policy) Delay(n int, u float64) time.Duration {
	d := p.Backoff(n)
	if p.Jitter {
		d += time.Duration(u * float64(time.Second))
	}
	if d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
