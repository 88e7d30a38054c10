// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"context"
	"net/http"

	"github.com/tomtom215/cinematch/internal/logging"
)

type contextKey struct{}

// Session is the browser session attached to a request.
type Session struct {
	ID string
	// New is true when the request carried no valid cookie and the session
	// was created for it.
	New bool
}

// FromContext returns the session stored by Middleware.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	ctx = context.WithValue(ctx, contextKey{}, s)
	return logging.ContextWithSessionID(ctx, s.ID)
}

// Middleware gets or creates the session of every request. A missing,
// expired or forged cookie starts a new session; the cookie is reissued
// for new sessions and for sessions past half their lifetime.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, claims := m.resolve(r)

		if claims == nil || m.needsRefresh(claims) {
			token, err := m.Sign(s.ID)
			if err != nil {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to sign session cookie")
			} else {
				http.SetCookie(w, m.cookie(token))
			}
		}

		ctx := WithSession(r.Context(), s)
		if s.New {
			logging.Ctx(ctx).Info().Msg("New session created")
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolve returns the request's session and its verified claims, or a new
// session and nil claims.
func (m *Manager) resolve(r *http.Request) (Session, *Claims) {
	c, err := r.Cookie(m.cookieName)
	if err == nil && c.Value != "" {
		claims, verr := m.Verify(c.Value)
		if verr == nil {
			return Session{ID: claims.SessionID}, claims
		}
		logging.Ctx(r.Context()).Debug().Err(verr).Msg("Discarding invalid session cookie")
	}
	return Session{ID: NewSessionID(), New: true}, nil
}

// Require rejects requests that did not arrive with a valid session cookie.
// It must run after Middleware. reject writes the error response.
func Require(reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := FromContext(r.Context())
			if !ok || s.New {
				logging.Ctx(r.Context()).Warn().Msg("No active session found")
				reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
