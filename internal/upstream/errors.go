// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package upstream

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrUnavailable is returned while a service's circuit breaker is open or
// saturated in half-open state.
var ErrUnavailable = errors.New("upstream unavailable")

// maxErrorBodySize caps how much of an error response body is kept.
const maxErrorBodySize = 64 * 1024

// StatusError is returned for every non-2xx response.
type StatusError struct {
	Service string
	Status  int
	Body    string
	// RetryAfter is the parsed Retry-After header, or 0 when absent.
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Service, e.Status, e.Body)
}

// StatusCode returns the HTTP status. It lets retry.IsRateLimited classify
// the error without importing this package.
func (e *StatusError) StatusCode() int {
	return e.Status
}

// IsStatus reports whether err is a StatusError with the given status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

func newStatusError(service string, resp *http.Response) *StatusError {
	return &StatusError{
		Service:    service,
		Status:     resp.StatusCode,
		Body:       strings.TrimSpace(string(readBodyForError(resp.Body))),
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
	}
}

// readBodyForError reads at most maxErrorBodySize bytes of r.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("... (truncated)")...)
	}
	return body
}

// parseRetryAfter accepts both forms of RFC 9110 Retry-After: delay seconds
// and an HTTP date.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
