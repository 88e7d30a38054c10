// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend turns favorite movies into cinematic profiles and
// profiles into movie suggestions.
//
// Both are LLM agent runs: the model gets a system prompt, a user query and
// a set of function declarations. Structured output is requested through a
// final_result function whose parameters are the output schema, so the
// model can interleave search_movies calls (backed by LangSearch) with its
// answer. The number of search calls per run is bounded; once the budget is
// spent only final_result stays on offer.
//
// Suggestions are then enriched with TMDB posters concurrently, keeping the
// model's order. A poster failure never fails a recommendation.
//
// The Model, Searcher and PosterFinder interfaces keep the package free of
// transport concerns; tests drive it with scripted fakes.
package recommend
