// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package config loads Cinematch configuration.
//
// Configuration is layered with Koanf v2 (highest priority last):
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, config.yaml, /etc/cinematch/config.yaml)
//  3. Environment variables (TMDB_API_KEY, LANGSEARCH_API_KEY, GEMINI_API_KEY, ...)
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	TMDB       TMDBConfig       `koanf:"tmdb"`
	LangSearch LangSearchConfig `koanf:"langsearch"`
	LLM        LLMConfig        `koanf:"llm"`
	Limiter    LimiterConfig    `koanf:"limiter"`
	Cache      CacheConfig      `koanf:"cache"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds session cookie, CORS and inbound rate limit settings.
type SecurityConfig struct {
	SessionSecret     string        `koanf:"session_secret"`
	SessionCookie     string        `koanf:"session_cookie"`
	SessionMaxAge     time.Duration `koanf:"session_max_age"`
	CookieSecure      bool          `koanf:"cookie_secure"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RetryConfig is the 429 backoff policy applied to an upstream.
type RetryConfig struct {
	MaxRetries int           `koanf:"max_retries"`
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxDelay   time.Duration `koanf:"max_delay"`
	Jitter     bool          `koanf:"jitter"`
}

// TMDBConfig holds The Movie Database API settings.
type TMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	ImageBaseURL      string        `koanf:"image_base_url"`
	Language          string        `koanf:"language"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	Retry             RetryConfig   `koanf:"retry"`
}

// LangSearchConfig holds the web search API settings used by the LLM search tool.
type LangSearchConfig struct {
	APIKey      string        `koanf:"api_key"`
	Endpoint    string        `koanf:"endpoint"`
	Count       int           `koanf:"count"`
	Freshness   string        `koanf:"freshness"`
	Summary     bool          `koanf:"summary"`
	Timeout     time.Duration `koanf:"timeout"`
	MinInterval time.Duration `koanf:"min_interval"`
	Retry       RetryConfig   `koanf:"retry"`
}

// LLMConfig holds Gemini settings.
type LLMConfig struct {
	APIKey       string        `koanf:"api_key"`
	Model        string        `koanf:"model"`
	BaseURL      string        `koanf:"base_url"`
	Timeout      time.Duration `koanf:"timeout"`
	MaxToolCalls int           `koanf:"max_tool_calls"`
	Retry        RetryConfig   `koanf:"retry"`
}

// LimiterConfig selects where outbound call spacing state lives.
// With backend "redis" every replica shares the LangSearch interval.
type LimiterConfig struct {
	Backend   string `koanf:"backend"` // memory or redis
	RedisURL  string `koanf:"redis_url"`
	KeyPrefix string `koanf:"key_prefix"`
}

// CacheConfig holds poster cache settings. An empty PosterPath keeps the
// cache in memory.
type CacheConfig struct {
	PosterTTL      time.Duration `koanf:"poster_ttl"`
	PosterCapacity int           `koanf:"poster_capacity"`
	PosterPath     string        `koanf:"poster_path"`

	// MaintenanceInterval spaces expired entry cleanup and Badger value
	// log GC.
	MaintenanceInterval time.Duration `koanf:"maintenance_interval"`
}

// SupervisorConfig holds suture tree settings.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	GaugeInterval    time.Duration `koanf:"gauge_interval"`
}

// Load reads configuration from defaults, an optional file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
