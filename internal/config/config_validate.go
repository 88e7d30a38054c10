// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// minSessionSecretLength is the shortest session secret accepted in production.
const minSessionSecretLength = 32

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateUpstreams(); err != nil {
		return err
	}
	if err := c.validateLimiter(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be one of development, staging, production; got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.IsProduction() && len(c.Security.SessionSecret) < minSessionSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters in production", minSessionSecretLength)
	}
	if c.Security.SessionCookie == "" {
		return fmt.Errorf("SESSION_COOKIE must not be empty")
	}
	if c.Security.SessionMaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE must be positive")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	return nil
}

// validateUpstreams checks URLs and retry policies of TMDB, LangSearch and Gemini.
// API keys are only mandatory in production so the server can boot locally
// without credentials; calls then fail upstream with 401.
func (c *Config) validateUpstreams() error {
	if err := validateHTTPURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.LangSearch.Endpoint, "LANGSEARCH_ENDPOINT"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.LLM.BaseURL, "GEMINI_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must be positive")
	}
	if c.LangSearch.MinInterval < 0 {
		return fmt.Errorf("LANGSEARCH_MIN_INTERVAL must not be negative")
	}
	if c.LangSearch.Count < 1 {
		return fmt.Errorf("LANGSEARCH_COUNT must be at least 1")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("AI_MODEL must not be empty")
	}
	if c.LLM.MaxToolCalls < 0 {
		return fmt.Errorf("LLM_MAX_TOOL_CALLS must not be negative")
	}

	for name, r := range map[string]RetryConfig{
		"TMDB":       c.TMDB.Retry,
		"LANGSEARCH": c.LangSearch.Retry,
		"LLM":        c.LLM.Retry,
	} {
		if err := validateRetry(name, r); err != nil {
			return err
		}
	}

	if c.IsProduction() {
		var missing []string
		if c.TMDB.APIKey == "" {
			missing = append(missing, "TMDB_API_KEY")
		}
		if c.LangSearch.APIKey == "" {
			missing = append(missing, "LANGSEARCH_API_KEY")
		}
		if c.LLM.APIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required API keys in production: %s", strings.Join(missing, ", "))
		}
	}
	return nil
}

func validateRetry(name string, r RetryConfig) error {
	if r.MaxRetries < 0 {
		return fmt.Errorf("%s retry max_retries must not be negative", name)
	}
	if r.BaseDelay <= 0 {
		return fmt.Errorf("%s retry base_delay must be positive", name)
	}
	if r.MaxDelay < r.BaseDelay {
		return fmt.Errorf("%s retry max_delay must be >= base_delay", name)
	}
	return nil
}

func (c *Config) validateLimiter() error {
	switch c.Limiter.Backend {
	case "memory":
		return nil
	case "redis":
		if c.Limiter.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when LIMITER_BACKEND=redis")
		}
		return nil
	default:
		return fmt.Errorf("LIMITER_BACKEND must be memory or redis, got %q", c.Limiter.Backend)
	}
}

func (c *Config) validateCache() error {
	if c.Cache.PosterTTL <= 0 {
		return fmt.Errorf("POSTER_CACHE_TTL must be positive")
	}
	if c.Cache.PosterPath == "" && c.Cache.PosterCapacity < 1 {
		return fmt.Errorf("POSTER_CACHE_CAPACITY must be at least 1 for the in-memory cache")
	}
	if c.Cache.MaintenanceInterval <= 0 {
		return fmt.Errorf("POSTER_CACHE_MAINTENANCE_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

// validateHTTPURL validates that rawURL is an absolute http(s) URL without a query.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
