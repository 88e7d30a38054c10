// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

// DefaultMaxToolCalls bounds search_movies calls per agent run.
const DefaultMaxToolCalls = 4

// DefaultPosterConcurrency bounds concurrent poster lookups per response.
const DefaultPosterConcurrency = 4

type settings struct {
	maxToolCalls      int
	posterConcurrency int
}

// Option configures a ProfileCreator or Recommender.
type Option func(*settings)

// WithMaxToolCalls sets how many tool calls one agent run may make. Zero
// disables tools.
func WithMaxToolCalls(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.maxToolCalls = n
		}
	}
}

// WithPosterConcurrency sets how many poster lookups run at once.
func WithPosterConcurrency(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.posterConcurrency = n
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		maxToolCalls:      DefaultMaxToolCalls,
		posterConcurrency: DefaultPosterConcurrency,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
