// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/gemini"
	"github.com/tomtom215/cinematch/internal/langsearch"
	"github.com/tomtom215/cinematch/internal/models"
)

// scriptedModel replays canned responses and records every request.
type scriptedModel struct {
	mu        sync.Mutex
	responses []*gemini.GenerateResponse
	err       error
	requests  []*gemini.GenerateRequest
}

func (m *scriptedModel) GenerateContent(_ context.Context, req *gemini.GenerateRequest) (*gemini.GenerateResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := len(m.requests)
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if idx >= len(m.responses) {
		return nil, errors.New("scriptedModel: no response left")
	}
	return m.responses[idx], nil
}

func (m *scriptedModel) request(i int) *gemini.GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[i]
}

func (m *scriptedModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func callResponse(name string, args any) *gemini.GenerateResponse {
	raw, err := json.Marshal(args)
	if err != nil {
		panic(err)
	}
	return &gemini.GenerateResponse{Candidates: []gemini.Candidate{{
		Content: gemini.Content{Role: gemini.RoleModel, Parts: []gemini.Part{
			{FunctionCall: &gemini.FunctionCall{Name: name, Args: raw}},
		}},
	}}}
}

func textResponse(text string) *gemini.GenerateResponse {
	return &gemini.GenerateResponse{Candidates: []gemini.Candidate{{
		Content: gemini.Content{Parts: []gemini.Part{{Text: text}}},
	}}}
}

func declaredNames(req *gemini.GenerateRequest) []string {
	var names []string
	for _, tool := range req.Tools {
		for _, d := range tool.FunctionDeclarations {
			names = append(names, d.Name)
		}
	}
	return names
}

// fakeSearcher records queries and returns a fixed result.
type fakeSearcher struct {
	mu      sync.Mutex
	queries []string
	opts    []*langsearch.Options
	err     error
}

func (s *fakeSearcher) Search(_ context.Context, query string, opts *langsearch.Options) ([]models.WebResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	s.opts = append(s.opts, opts)
	if s.err != nil {
		return nil, s.err
	}
	return []models.WebResult{{Title: "Heat (1995)", URL: "https://example.org/heat", Snippet: "Michael Mann"}}, nil
}

// fakePosters answers from a map after an optional per-title delay and
// tracks peak concurrency.
type fakePosters struct {
	urls     map[string]string
	delays   map[string]time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (p *fakePosters) PosterURL(_ context.Context, title, _ string) string {
	n := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		cur := p.peak.Load()
		if n <= cur || p.peak.CompareAndSwap(cur, n) {
			break
		}
	}
	if d := p.delays[title]; d > 0 {
		time.Sleep(d)
	}
	return p.urls[title]
}

func sampleMovies(titles ...string) map[string]any {
	movies := make([]map[string]any, 0, len(titles))
	for _, title := range titles {
		movies = append(movies, map[string]any{
			"title":           title,
			"year":            "1995",
			"why_recommended": "Because you like crime epics",
		})
	}
	return map[string]any{"movies": movies}
}
