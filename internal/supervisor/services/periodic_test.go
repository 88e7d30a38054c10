// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cinematch/internal/metrics"
)

func TestPeriodicService_RunsAtStartAndOnTicks(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	svc := NewPeriodicService("test-task", 10*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return errors.New("ignored")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if got := runs.Load(); got < 3 {
		t.Errorf("expected at least 3 runs, got %d", got)
	}
	if svc.String() != "test-task" {
		t.Errorf("unexpected name %q", svc.String())
	}
}

func TestPeriodicService_DefaultInterval(t *testing.T) {
	t.Parallel()

	svc := NewPeriodicService("x", 0, func(context.Context) error { return nil })
	if svc.interval != time.Minute {
		t.Errorf("expected 1m default, got %v", svc.interval)
	}
}

type fixedStore struct{ sessions, profiles int }

func (s fixedStore) SessionCount() int      { return s.sessions }
func (s fixedStore) TotalProfileCount() int { return s.profiles }

func TestStoreGaugeService(t *testing.T) {
	svc := NewStoreGaugeService(fixedStore{sessions: 3, profiles: 7}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = svc.Serve(ctx)

	if got := testutil.ToFloat64(metrics.ProfileSessions); got != 3 {
		t.Errorf("expected sessions gauge 3, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.ProfilesStored); got != 7 {
		t.Errorf("expected profiles gauge 7, got %v", got)
	}
}

type countingCache struct{ calls atomic.Int32 }

func (c *countingCache) Maintain() error {
	c.calls.Add(1)
	return nil
}

func TestCacheMaintenanceService(t *testing.T) {
	t.Parallel()

	cache := &countingCache{}
	svc := NewCacheMaintenanceService(cache, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	if got := cache.calls.Load(); got < 2 {
		t.Errorf("expected repeated maintenance, got %d runs", got)
	}
}
