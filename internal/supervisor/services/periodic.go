// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Task is one run of a periodic job. A returned error is logged and the
// schedule continues; panics are left to the supervisor.
type Task func(ctx context.Context) error

// PeriodicService runs a task once at start and then every interval.
type PeriodicService struct {
	name     string
	interval time.Duration
	task     Task
	logger   zerolog.Logger
}

// NewPeriodicService creates a PeriodicService. A non-positive interval
// means one minute.
func NewPeriodicService(name string, interval time.Duration, task Task) *PeriodicService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PeriodicService{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logging.WithComponent(name),
	}
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("Periodic service starting")

	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *PeriodicService) run(ctx context.Context) {
	if err := s.task(ctx); err != nil && ctx.Err() == nil {
		s.logger.Warn().Err(err).Msg("Periodic task failed")
	}
}

// String names the service in supervisor events.
func (s *PeriodicService) String() string {
	return s.name
}

// StoreCounter reports the size of the profile store.
type StoreCounter interface {
	SessionCount() int
	TotalProfileCount() int
}

// NewStoreGaugeService publishes the store's session and profile counts to
// Prometheus every interval.
func NewStoreGaugeService(store StoreCounter, interval time.Duration) *PeriodicService {
	return NewPeriodicService("store-gauges", interval, func(context.Context) error {
		metrics.UpdateProfileStore(store.SessionCount(), store.TotalProfileCount())
		return nil
	})
}

// Maintainer is a cache with periodic upkeep.
type Maintainer interface {
	Maintain() error
}

// NewCacheMaintenanceService runs cache.Maintain every interval.
func NewCacheMaintenanceService(cache Maintainer, interval time.Duration) *PeriodicService {
	return NewPeriodicService("poster-cache", interval, func(context.Context) error {
		return cache.Maintain()
	})
}
