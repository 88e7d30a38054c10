// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package api is the HTTP surface of Cinematch.
//
// Routes are served by a chi router (see SetupChi):
//
//	GET    /ping                                  liveness, {"message":"pong"}
//	GET    /search?query=                         TMDB multi search
//	POST   /recommendations                       suggestions from favorites
//	POST   /profiles                              build and store a profile
//	GET    /profiles                              list the session's profiles
//	GET    /profiles/{profileID}                  fetch one profile
//	DELETE /profiles/{profileID}                  delete one profile
//	POST   /profiles/{profileID}/recommendations  suggestions from a profile
//	GET    /health                                status, uptime and store size
//	GET    /metrics                               Prometheus
//	GET    /swagger/*                             API documentation
//
// /ping, /search and /recommendations return bare JSON bodies. Everything
// else, and every error, uses the APIResponse envelope.
//
// Profiles are scoped to the browser session carried by the session cookie.
// Creating and listing profiles starts a session when none exists; routes
// addressing a specific profile answer 400 without one.
package api
