// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// PosterCache maps a movie (title and optional year) to its poster URL.
// An empty URL is a valid cached value meaning "TMDB has no poster".
type PosterCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, posterURL string)
}

// PosterKey builds the cache key for a movie. Titles are compared case
// and whitespace insensitively.
func PosterKey(title, year string) string {
	title = strings.ToLower(strings.Join(strings.Fields(title), " "))
	year = strings.TrimSpace(year)
	if year == "" {
		return title
	}
	return title + "|" + year
}

// MemoryPosterCache keeps posters in an in-process LRU.
type MemoryPosterCache struct {
	lru *LRU[string]
}

// NewMemoryPosterCache creates an LRU poster cache.
func NewMemoryPosterCache(capacity int, ttl time.Duration) *MemoryPosterCache {
	return &MemoryPosterCache{lru: NewLRU[string](capacity, ttl)}
}

// Get implements PosterCache.
func (c *MemoryPosterCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.lru.Get(key)
	metrics.RecordPosterCache(ok)
	return v, ok
}

// Set implements PosterCache.
func (c *MemoryPosterCache) Set(_ context.Context, key, posterURL string) {
	c.lru.Set(key, posterURL)
}

// Maintain drops expired entries.
func (c *MemoryPosterCache) Maintain() error {
	if n := c.lru.CleanupExpired(); n > 0 {
		logging.Debug().Int("removed", n).Msg("Expired posters removed from memory cache")
	}
	return nil
}

// Close is a no-op; it lets callers treat both caches alike.
func (c *MemoryPosterCache) Close() error {
	return nil
}

// posterKeyPrefix namespaces poster entries in Badger.
const posterKeyPrefix = "poster:"

// BadgerPosterCache persists posters in BadgerDB. Entries expire through
// Badger's native TTL.
type BadgerPosterCache struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadgerPosterCache opens (or creates) a Badger database at path.
// An empty path opens an in-memory database.
func OpenBadgerPosterCache(path string, ttl time.Duration) (*BadgerPosterCache, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for poster cache: %w", err)
	}
	return NewBadgerPosterCache(db, ttl), nil
}

// NewBadgerPosterCache wraps an already opened database.
func NewBadgerPosterCache(db *badger.DB, ttl time.Duration) *BadgerPosterCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &BadgerPosterCache{db: db, ttl: ttl}
}

// Get implements PosterCache. Read errors count as misses.
func (c *BadgerPosterCache) Get(ctx context.Context, key string) (string, bool) {
	var posterURL string
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(posterKeyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			posterURL = string(val)
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Poster cache read failed")
		}
		metrics.RecordPosterCache(false)
		return "", false
	}
	metrics.RecordPosterCache(true)
	return posterURL, true
}

// Set implements PosterCache. Write errors are logged and dropped.
func (c *BadgerPosterCache) Set(ctx context.Context, key, posterURL string) {
	err := c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(posterKeyPrefix+key), []byte(posterURL)).WithTTL(c.ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Poster cache write failed")
	}
}

// Maintain runs value log garbage collection. Nothing to collect is not an
// error.
func (c *BadgerPosterCache) Maintain() error {
	err := c.db.RunValueLogGC(0.5)
	if err == nil || errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	return err
}

// Close closes the underlying database.
func (c *BadgerPosterCache) Close() error {
	return c.db.Close()
}

// Compile-time interface assertions
var (
	_ PosterCache = (*MemoryPosterCache)(nil)
	_ PosterCache = (*BadgerPosterCache)(nil)
)
