// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides the infrastructure HTTP middleware shared by every
route: request IDs, Prometheus instrumentation and gzip compression.

All middleware use chi's func(http.Handler) http.Handler shape so they can be
passed straight to r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)          // X-Request-ID + logging context
	r.Use(middleware.PrometheusMetrics)  // api_requests_total and friends
	r.Use(middleware.Compression)        // gzip when the client accepts it

Request ID:

An incoming X-Request-ID header is kept (so IDs survive a reverse proxy),
otherwise a UUID is generated. The ID is echoed in the response header and
stored in the logging context, so logging.Ctx(ctx) tags every line with
request_id and correlation_id.

Prometheus Metrics:

Requests are labeled by chi route pattern ("/profiles/{profileID}") rather
than raw path, keeping label cardinality bounded by the number of routes.
Unmatched paths are reported as "unmatched".

Compression:

The decision to compress is made on the first Write, so empty responses such
as 204 No Content and 304 Not Modified are passed through untouched.
*/
package middleware
