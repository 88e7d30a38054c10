// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package profiles keeps cinematic profiles in memory, grouped by session.
//
// A Store is built once in main and injected into the HTTP handlers:
//
//	store := profiles.NewStore()
//	id := store.GenerateProfileID()
//	store.Save(sessionID, id, profile)
//
// A profile ID is only unique within its session, so two sessions may store
// different profiles under the same ID. Nothing is persisted and nothing is
// evicted; all profiles are lost when the process exits.
package profiles

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tomtom215/cinematch/internal/models"
)

// Store maps session ID -> profile ID -> profile. It is safe for concurrent
// use. Writers to the same profile ID are last-write-wins.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]map[string]models.Profile
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]map[string]models.Profile),
	}
}

// GenerateProfileID returns a new random UUID.
func (s *Store) GenerateProfileID() string {
	return uuid.NewString()
}

// Save inserts or overwrites the profile stored under (sessionID, profileID).
func (s *Store) Save(sessionID, profileID string, profile models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inner, ok := s.sessions[sessionID]
	if !ok {
		inner = make(map[string]models.Profile)
		s.sessions[sessionID] = inner
	}
	inner[profileID] = profile.Clone()
}

// Get returns the profile and true, or the zero Profile and false when
// either the session or the profile is unknown.
func (s *Store) Get(sessionID, profileID string) (models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.sessions[sessionID][profileID]
	if !ok {
		return models.Profile{}, false
	}
	return profile.Clone(), true
}

// List returns a copy of every profile of the session. An unknown session
// yields an empty, non-nil map.
func (s *Store) List(sessionID string) map[string]models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inner := s.sessions[sessionID]
	out := make(map[string]models.Profile, len(inner))
	for id, p := range inner {
		out[id] = p.Clone()
	}
	return out
}

// Delete removes the profile and reports whether it existed. A session
// left without profiles is dropped.
func (s *Store) Delete(sessionID, profileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	inner, ok := s.sessions[sessionID]
	if !ok {
		return false
	}
	if _, ok := inner[profileID]; !ok {
		return false
	}
	delete(inner, profileID)
	if len(inner) == 0 {
		delete(s.sessions, sessionID)
	}
	return true
}

// SessionCount returns the number of sessions holding at least one profile.
func (s *Store) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, inner := range s.sessions {
		if len(inner) > 0 {
			n++
		}
	}
	return n
}

// TotalProfileCount returns the number of profiles across all sessions.
func (s *Store) TotalProfileCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, inner := range s.sessions {
		n += len(inner)
	}
	return n
}
