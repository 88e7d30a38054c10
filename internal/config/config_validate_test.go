// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Server.Environment = "qa" },
			wantErr: "ENVIRONMENT",
		},
		{
			name: "production without keys",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.SessionSecret = strings.Repeat("s", 32)
			},
			wantErr: "TMDB_API_KEY, LANGSEARCH_API_KEY, GEMINI_API_KEY",
		},
		{
			name: "production complete",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.SessionSecret = strings.Repeat("s", 32)
				c.TMDB.APIKey = "a"
				c.LangSearch.APIKey = "b"
				c.LLM.APIKey = "c"
			},
		},
		{
			name:    "bad tmdb url",
			mutate:  func(c *Config) { c.TMDB.BaseURL = "ftp://tmdb" },
			wantErr: "TMDB_BASE_URL",
		},
		{
			name:    "max delay below base delay",
			mutate:  func(c *Config) { c.LangSearch.Retry.MaxDelay = 500 * time.Millisecond },
			wantErr: "LANGSEARCH retry max_delay",
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.TMDB.Retry.MaxRetries = -1 },
			wantErr: "TMDB retry max_retries",
		},
		{
			name:    "unknown limiter backend",
			mutate:  func(c *Config) { c.Limiter.Backend = "etcd" },
			wantErr: "LIMITER_BACKEND",
		},
		{
			name: "redis limiter without url",
			mutate: func(c *Config) {
				c.Limiter.Backend = "redis"
				c.Limiter.RedisURL = ""
			},
			wantErr: "REDIS_URL",
		},
		{
			name:    "zero poster ttl",
			mutate:  func(c *Config) { c.Cache.PosterTTL = 0 },
			wantErr: "POSTER_CACHE_TTL",
		},
		{
			name:    "memory cache without capacity",
			mutate:  func(c *Config) { c.Cache.PosterCapacity = 0 },
			wantErr: "POSTER_CACHE_CAPACITY",
		},
		{
			name: "badger cache ignores capacity",
			mutate: func(c *Config) {
				c.Cache.PosterPath = "/var/lib/cinematch/posters"
				c.Cache.PosterCapacity = 0
			},
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
		{
			name: "rate limit disabled skips window check",
			mutate: func(c *Config) {
				c.Security.RateLimitDisabled = true
				c.Security.RateLimitWindow = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 8000}
	if got := s.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q", got)
	}
}
