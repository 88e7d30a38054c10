// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package services adapts server components to suture.Service.
//
// HTTPServerService turns ListenAndServe and Shutdown into a context-driven
// Serve. PeriodicService runs a task on a ticker; the store gauge reporter
// and the poster cache maintenance are built on it.
package services
