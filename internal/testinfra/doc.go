// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package testinfra starts throwaway containers for integration tests.
//
// Everything here sits behind the integration build tag:
//
//	go test -tags integration ./internal/ratelimit/...
//
// A Redis container backs the distributed limiter tests:
//
//	func TestRedisInterval(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    rc, err := testinfra.NewRedisContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, rc)
//
//	    client := redis.NewClient(&redis.Options{Addr: rc.Addr})
//	    ...
//	}
//
// Tests are skipped when Docker is not reachable.
package testinfra
