// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinematch/config.yaml",
	"/etc/cinematch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. They mirror the settings the
// service has always shipped with: TMDB in fr-FR, Gemini 2.0 Flash, LangSearch
// spaced two seconds apart and retried five times on 429.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			SessionSecret:     "",
			SessionCookie:     "session",
			SessionMaxAge:     14 * 24 * time.Hour,
			CookieSecure:      false,
			CORSOrigins:       []string{"http://localhost:5173"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p/w500",
			Language:          "fr-FR",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 40,
			Burst:             10,
			Retry: RetryConfig{
				MaxRetries: 3,
				BaseDelay:  time.Second,
				MaxDelay:   10 * time.Second,
				Jitter:     true,
			},
		},
		LangSearch: LangSearchConfig{
			Endpoint:    "https://api.langsearch.com/v1/web-search",
			Count:       5,
			Freshness:   "noLimit",
			Summary:     true,
			Timeout:     10 * time.Second,
			MinInterval: 2 * time.Second,
			Retry: RetryConfig{
				MaxRetries: 5,
				BaseDelay:  time.Second,
				MaxDelay:   30 * time.Second,
				Jitter:     true,
			},
		},
		LLM: LLMConfig{
			Model:        "gemini-2.0-flash",
			BaseURL:      "https://generativelanguage.googleapis.com/v1beta",
			Timeout:      60 * time.Second,
			MaxToolCalls: 4,
			Retry: RetryConfig{
				MaxRetries: 3,
				BaseDelay:  2 * time.Second,
				MaxDelay:   30 * time.Second,
				Jitter:     true,
			},
		},
		Limiter: LimiterConfig{
			Backend:   "memory",
			RedisURL:  "redis://localhost:6379/0",
			KeyPrefix: "cinematch:limiter:",
		},
		Cache: CacheConfig{
			PosterTTL:      24 * time.Hour,
			PosterCapacity: 5000,
			PosterPath:     "",

			MaintenanceInterval: 10 * time.Minute,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureBackoff:   15 * time.Second,
			GaugeInterval:    30 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
// defaults, then the optional YAML file, then environment variables.
// The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// TMDB_API_KEY -> tmdb.api_key, HTTP_PORT -> server.port, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "" if there is none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists config paths given as comma-separated strings in env vars.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unmapped variables are ignored so unrelated environment does not leak in.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Security
	"session_secret":      "security.session_secret",
	"session_cookie":      "security.session_cookie",
	"session_max_age":     "security.session_max_age",
	"cookie_secure":       "security.cookie_secure",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// TMDB
	"tmdb_api_key":             "tmdb.api_key",
	"tmdb_base_url":            "tmdb.base_url",
	"tmdb_image_base_url":      "tmdb.image_base_url",
	"tmdb_language":            "tmdb.language",
	"tmdb_timeout":             "tmdb.timeout",
	"tmdb_requests_per_second": "tmdb.requests_per_second",
	"tmdb_burst":               "tmdb.burst",
	"tmdb_max_retries":         "tmdb.retry.max_retries",

	// LangSearch
	"langsearch_api_key":      "langsearch.api_key",
	"langsearch_endpoint":     "langsearch.endpoint",
	"langsearch_count":        "langsearch.count",
	"langsearch_freshness":    "langsearch.freshness",
	"langsearch_timeout":      "langsearch.timeout",
	"langsearch_min_interval": "langsearch.min_interval",
	"langsearch_max_retries":  "langsearch.retry.max_retries",
	"langsearch_base_delay":   "langsearch.retry.base_delay",
	"langsearch_max_delay":    "langsearch.retry.max_delay",
	"langsearch_jitter":       "langsearch.retry.jitter",

	// LLM
	"gemini_api_key":     "llm.api_key",
	"ai_model":           "llm.model",
	"gemini_base_url":    "llm.base_url",
	"llm_timeout":        "llm.timeout",
	"llm_max_tool_calls": "llm.max_tool_calls",
	"llm_max_retries":    "llm.retry.max_retries",

	// Limiter
	"limiter_backend":    "limiter.backend",
	"redis_url":          "limiter.redis_url",
	"limiter_key_prefix": "limiter.key_prefix",

	// Cache
	"poster_cache_ttl":      "cache.poster_ttl",
	"poster_cache_capacity": "cache.poster_capacity",
	"poster_cache_path":     "cache.poster_path",

	"poster_cache_maintenance_interval": "cache.maintenance_interval",

	// Supervisor
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"store_gauge_interval":         "supervisor.gauge_interval",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - GEMINI_API_KEY -> llm.api_key
//   - AI_MODEL -> llm.model
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
