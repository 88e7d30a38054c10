// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/gemini"
	"github.com/tomtom215/cinematch/internal/langsearch"
	"github.com/tomtom215/cinematch/internal/models"
)

// SearchMoviesToolName is the name the model sees for web search.
const SearchMoviesToolName = "search_movies"

// Searcher runs web searches. *langsearch.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string, opts *langsearch.Options) ([]models.WebResult, error)
}

type searchMoviesArgs struct {
	Query     string `json:"query"`
	Count     int    `json:"count"`
	Freshness string `json:"freshness"`
	Summary   *bool  `json:"summary"`
}

// SearchMoviesTool exposes s to the model as search_movies.
func SearchMoviesTool(s Searcher) Tool {
	return Tool{
		Declaration: gemini.FunctionDeclaration{
			Name:        SearchMoviesToolName,
			Description: "Search the web for information about movies, directors, actors and cinema in general.",
			Parameters: &gemini.Schema{
				Type: gemini.TypeObject,
				Properties: map[string]*gemini.Schema{
					"query": {Type: gemini.TypeString, Description: "Search query"},
					"count": {Type: gemini.TypeInteger, Description: "Number of results to return"},
					"freshness": {
						Type:        gemini.TypeString,
						Description: "How recent results must be",
						Enum: []string{
							langsearch.FreshnessNoLimit,
							langsearch.FreshnessDay,
							langsearch.FreshnessWeek,
							langsearch.FreshnessMonth,
							langsearch.FreshnessYear,
						},
					},
					"summary": {Type: gemini.TypeBoolean, Description: "Include a summary of each page"},
				},
				Required: []string{"query"},
			},
		},
		Run: func(ctx context.Context, raw json.RawMessage) (map[string]any, error) {
			var args searchMoviesArgs
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, err
			}
			if strings.TrimSpace(args.Query) == "" {
				return nil, errors.New("query is required")
			}

			results, err := s.Search(ctx, args.Query, &langsearch.Options{
				Count:     args.Count,
				Freshness: args.Freshness,
				Summary:   args.Summary,
			})
			if err != nil {
				return nil, err
			}
			if results == nil {
				results = []models.WebResult{}
			}
			return map[string]any{"results": results}, nil
		},
	}
}
