// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// @title Cinematch API
// @version 1.0
// @description Movie recommendations from cinematic profiles.
// @description
// @description A profile is built by a Gemini agent from a list of favorite movies, stored
// @description in the caller's browser session, and used to drive further recommendations.
// @description Posters come from TMDB and the agent may research titles through LangSearch.
// @description
// @description ## Sessions
// @description
// @description Profiles are scoped to an HttpOnly session cookie. `POST /profiles` and
// @description `GET /profiles` start a session when none exists.
// @description
// @description ## Rate Limiting
// @description
// @description Default: 100 requests per minute per IP. Endpoints that run the LLM agent
// @description allow 10 per minute.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "NOT_FOUND", "message": "Profile not found", "request_id": "..."},
// @description   "meta": {"timestamp": "2026-01-01T00:00:00Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/cinematch/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8000
// @BasePath /
// @schemes http https
//
// @tag.name Core
// @tag.description Search and stateless recommendations
//
// @tag.name Profiles
// @tag.description Session-scoped cinematic profiles
//
// @tag.name System
// @tag.description Health and status
package main
