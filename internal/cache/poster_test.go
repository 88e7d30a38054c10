// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

func TestPosterKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title, year, want string
	}{
		{"Heat", "1995", "heat|1995"},
		{"  The   Thing ", "", "the thing"},
		{"Alien", " 1979 ", "alien|1979"},
	}
	for _, tt := range tests {
		if got := PosterKey(tt.title, tt.year); got != tt.want {
			t.Errorf("PosterKey(%q, %q) = %q, want %q", tt.title, tt.year, got, tt.want)
		}
	}
}

func TestMemoryPosterCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewMemoryPosterCache(10, time.Minute)
	c.Set(ctx, "heat|1995", "https://image.tmdb.org/t/p/w500/heat.jpg")
	c.Set(ctx, "unknown", "")

	if v, ok := c.Get(ctx, "heat|1995"); !ok || v == "" {
		t.Errorf("Get() = %q, %v", v, ok)
	}
	if v, ok := c.Get(ctx, "unknown"); !ok || v != "" {
		t.Errorf("negative entry Get() = %q, %v; want \"\", true", v, ok)
	}
	if _, ok := c.Get(ctx, "nope"); ok {
		t.Error("Get(nope) should miss")
	}
	if err := c.Maintain(); err != nil {
		t.Errorf("Maintain() = %v", err)
	}
}

func newInMemoryBadger(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBadgerPosterCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewBadgerPosterCache(newInMemoryBadger(t), time.Hour)

	if _, ok := c.Get(ctx, "heat|1995"); ok {
		t.Error("empty cache should miss")
	}
	c.Set(ctx, "heat|1995", "https://image.tmdb.org/t/p/w500/heat.jpg")
	if v, ok := c.Get(ctx, "heat|1995"); !ok || v != "https://image.tmdb.org/t/p/w500/heat.jpg" {
		t.Errorf("Get() = %q, %v", v, ok)
	}

	c.Set(ctx, "ghost", "")
	if v, ok := c.Get(ctx, "ghost"); !ok || v != "" {
		t.Errorf("negative entry Get() = %q, %v", v, ok)
	}
	if err := c.Maintain(); err != nil {
		t.Errorf("Maintain() in memory mode = %v, want nil", err)
	}
}

func TestOpenBadgerPosterCache_Disk(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	c, err := OpenBadgerPosterCache(dir, time.Hour)
	if err != nil {
		t.Fatalf("OpenBadgerPosterCache() error = %v", err)
	}
	c.Set(ctx, "alien|1979", "https://image.tmdb.org/t/p/w500/alien.jpg")
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenBadgerPosterCache(dir, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if v, ok := reopened.Get(ctx, "alien|1979"); !ok || v == "" {
		t.Errorf("entry did not survive reopen: %q, %v", v, ok)
	}
}
