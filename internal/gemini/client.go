// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package gemini is a minimal client for the Gemini generateContent REST
// endpoint, covering system instructions, JSON response schemas and
// function calling.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/retry"
	"github.com/tomtom215/cinematch/internal/upstream"
)

// ServiceName labels Gemini in logs, metrics and the circuit breaker.
const ServiceName = "gemini"

// ErrNoCandidates is returned when the model produced nothing usable, for
// instance after a safety block.
var ErrNoCandidates = errors.New("gemini: response has no candidates")

// Client calls one Gemini model.
type Client struct {
	api     *upstream.Client
	model   string
	retrier *retry.Retrier
}

// NewClient creates a client for cfg.Model. A nil retrier gets the default
// policy.
func NewClient(cfg *config.LLMConfig, retrier *retry.Retrier, opts ...upstream.Option) *Client {
	if retrier == nil {
		retrier = retry.New(ServiceName, retry.DefaultPolicy())
	}
	opts = append([]upstream.Option{upstream.WithHeader("x-goog-api-key", cfg.APIKey)}, opts...)
	return &Client{
		api:     upstream.NewClient(ServiceName, cfg.BaseURL, cfg.Timeout, opts...),
		model:   cfg.Model,
		retrier: retrier,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// GenerateContent sends one generateContent request, retrying on 429.
func (c *Client) GenerateContent(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	path := "/models/" + url.PathEscape(c.model) + ":generateContent"

	resp, err := retry.DoValue(ctx, c.retrier, func(ctx context.Context) (*GenerateResponse, error) {
		var out GenerateResponse
		if err := c.api.Do(ctx, upstream.Request{Method: http.MethodPost, Path: path, Body: req}, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("model", c.model).Msg("Gemini generateContent failed")
		return nil, err
	}
	if len(resp.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	logging.Ctx(ctx).Debug().
		Str("model", c.model).
		Int("prompt_tokens", resp.UsageMetadata.PromptTokenCount).
		Int("output_tokens", resp.UsageMetadata.CandidatesTokenCount).
		Str("finish_reason", resp.Candidates[0].FinishReason).
		Msg("Gemini generateContent done")
	return resp, nil
}

// Breaker exposes the circuit breaker for health reporting.
func (c *Client) Breaker() *upstream.Breaker {
	return c.api.Breaker()
}
