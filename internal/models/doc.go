// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package models defines the data structures shared by Cinematch packages.

Key Components:

  - Profile: cinematic profile inferred by the LLM from a list of favorite movies
  - AgentMovie: a suggestion as returned by the LLM, without a poster
  - Movie: a suggestion enriched with a TMDB poster URL
  - SearchResult: one TMDB multi-search hit
  - WebResult: one LangSearch web page hit

JSON field names are snake_case and match what the web frontend consumes.
List fields always encode as arrays, never null; call Normalize on values
decoded from LLM output before storing or returning them.
*/
package models
