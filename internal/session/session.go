// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package session identifies browsers with a signed session cookie.
//
// The cookie holds an HS256 JWT whose sid claim is a random UUID. The
// signing key is derived from the configured session secret with
// HKDF-SHA256, so the raw secret never signs anything directly. Profiles are
// keyed by sid; nothing else is stored client side.
package session

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
)

const (
	issuer     = "cinematch"
	keyInfo    = "cinematch session cookie signing key"
	keyLength  = 32
	defaultAge = 14 * 24 * time.Hour
)

// ErrInvalidToken is returned for cookies that fail verification.
var ErrInvalidToken = errors.New("session: invalid token")

// Claims are the JWT claims stored in the cookie.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager issues and verifies session cookies.
type Manager struct {
	key        []byte
	cookieName string
	maxAge     time.Duration
	secure     bool
	now        func() time.Time
}

// NewManager creates a Manager from the security settings. An empty secret
// is replaced by a random one, which invalidates every session on restart;
// config validation forbids that in production.
func NewManager(cfg *config.SecurityConfig) (*Manager, error) {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		logging.Warn().Msg("SESSION_SECRET not set, using an ephemeral key; sessions will not survive a restart")
		secret = make([]byte, keyLength)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}

	key, err := deriveKey(secret)
	if err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}

	m := &Manager{
		key:        key,
		cookieName: cfg.SessionCookie,
		maxAge:     cfg.SessionMaxAge,
		secure:     cfg.CookieSecure,
		now:        time.Now,
	}
	if m.cookieName == "" {
		m.cookieName = "session"
	}
	if m.maxAge <= 0 {
		m.maxAge = defaultAge
	}
	return m, nil
}

func deriveKey(secret []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte(keyInfo))
	key := make([]byte, keyLength)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// NewSessionID returns a fresh random session ID.
func NewSessionID() string {
	return uuid.NewString()
}

// Sign returns a signed token for sessionID.
func (m *Manager) Sign(sessionID string) (string, error) {
	now := m.now()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.maxAge)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks token and returns its claims.
func (m *Manager) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || uuid.Validate(claims.SessionID) != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// cookie builds the Set-Cookie value for token.
func (m *Manager) cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.maxAge / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// needsRefresh reports whether claims are past half their lifetime, so a
// session in active use never expires.
func (m *Manager) needsRefresh(claims *Claims) bool {
	if claims.IssuedAt == nil {
		return true
	}
	return m.now().Sub(claims.IssuedAt.Time) > m.maxAge/2
}
