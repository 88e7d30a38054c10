// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package retry

import (
	"errors"
	"testing"
	"time"
)

func TestPolicyValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy Policy
		want   error
	}{
		{"default", DefaultPolicy(), nil},
		{"zero retries", Policy{MaxRetries: 0, BaseDelay: time.Second, MaxDelay: time.Second}, nil},
		{"negative retries", Policy{MaxRetries: -1, BaseDelay: time.Second, MaxDelay: time.Second}, ErrNegativeRetries},
		{"zero base", Policy{MaxRetries: 1, MaxDelay: time.Second}, ErrBaseDelay},
		{"max below base", Policy{MaxRetries: 1, BaseDelay: 2 * time.Second, MaxDelay: time.Second}, ErrMaxDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.policy.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPolicyDelay_WithoutJitterIsExact(t *testing.T) {
	t.Parallel()

	p := Policy{MaxRetries: 10, BaseDelay: time.Second, MaxDelay: 30 * time.Second}
	want := []time.Duration{
		time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second,
		30 * time.Second, 30 * time.Second,
	}
	for k, w := range want {
		if got := p.Delay(k, 0.99); got != w {
			t.Errorf("Delay(%d) = %v, want %v", k, got, w)
		}
	}
}

func TestPolicyDelay_NeverExceedsMax(t *testing.T) {
	t.Parallel()

	p := Policy{MaxRetries: 100, BaseDelay: 250 * time.Millisecond, MaxDelay: 5 * time.Second, Jitter: true}
	for k := 0; k < 100; k++ {
		for _, u := range []float64{0, 0.25, 0.999} {
			if got := p.Delay(k, u); got > p.MaxDelay {
				t.Fatalf("Delay(%d, %v) = %v exceeds max %v", k, u, got, p.MaxDelay)
			}
		}
	}
}

func TestPolicyBackoff_LargeAttemptDoesNotOverflow(t *testing.T) {
	t.Parallel()

	p := Policy{BaseDelay: time.Second, MaxDelay: time.Minute}
	if got := p.Backoff(5000); got != time.Minute {
		t.Errorf("Backoff(5000) = %v, want %v", got, time.Minute)
	}
	if got := p.Backoff(-1); got != time.Second {
		t.Errorf("Backoff(-1) = %v, want %v", got, time.Second)
	}
}
