// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"
)

// statusErr is a minimal StatusCoder for tests.
type statusErr struct{ code int }

func (e *statusErr) Error() string   { return fmt.Sprintf("status %d", e.code) }
func (e *statusErr) StatusCode() int { return e.code }

// recordingSleeper records requested delays without sleeping.
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	return nil
}

func (s *recordingSleeper) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

func TestIsRateLimited(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"429", &statusErr{http.StatusTooManyRequests}, true},
		{"wrapped 429", fmt.Errorf("search: %w", &statusErr{http.StatusTooManyRequests}), true},
		{"500", &statusErr{http.StatusInternalServerError}, false},
		{"404", &statusErr{http.StatusNotFound}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsRateLimited(tt.err); got != tt.want {
				t.Errorf("IsRateLimited(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDo_AlwaysRateLimited_ExhaustsBudget(t *testing.T) {
	t.Parallel()

	sleeper := &recordingSleeper{}
	policy := Policy{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 30 * time.Second, Jitter: false}
	r := New("test", policy, WithSleep(sleeper.Sleep))

	lastErr := &statusErr{http.StatusTooManyRequests}
	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return lastErr
	})

	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
	if err != lastErr {
		t.Errorf("err = %v, want the exact last error", err)
	}
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	got := sleeper.Delays()
	if len(got) != len(want) {
		t.Fatalf("delays = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDo_InvocationCountMatchesBudget(t *testing.T) {
	t.Parallel()

	for _, maxRetries := range []int{0, 1, 2, 5} {
		t.Run(fmt.Sprintf("max_retries_%d", maxRetries), func(t *testing.T) {
			t.Parallel()
			sleeper := &recordingSleeper{}
			r := New("test", Policy{MaxRetries: maxRetries, BaseDelay: time.Millisecond, MaxDelay: time.Second, Jitter: true},
				WithSleep(sleeper.Sleep))

			calls := 0
			_ = r.Do(context.Background(), func(context.Context) error {
				calls++
				return &statusErr{http.StatusTooManyRequests}
			})
			if calls != maxRetries+1 {
				t.Errorf("calls = %d, want %d", calls, maxRetries+1)
			}
			if len(sleeper.Delays()) != maxRetries {
				t.Errorf("sleeps = %d, want %d", len(sleeper.Delays()), maxRetries)
			}
		})
	}
}

func TestDo_NonRateLimitedErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	sleeper := &recordingSleeper{}
	r := New("test", DefaultPolicy(), WithSleep(sleeper.Sleep))

	boom := &statusErr{http.StatusBadGateway}
	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return boom
	})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if err != boom {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if len(sleeper.Delays()) != 0 {
		t.Errorf("expected no sleeps, got %v", sleeper.Delays())
	}
}

func TestDoValue_RecoversAfter429(t *testing.T) {
	t.Parallel()

	sleeper := &recordingSleeper{}
	r := New("test", Policy{MaxRetries: 5, BaseDelay: time.Second, MaxDelay: 30 * time.Second},
		WithSleep(sleeper.Sleep))

	calls := 0
	got, err := DoValue(context.Background(), r, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &statusErr{http.StatusTooManyRequests}
		}
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("result = %q, want ok", got)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_ContextCanceledDuringBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	r := New("test", Policy{MaxRetries: 3, BaseDelay: time.Hour, MaxDelay: time.Hour})

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- r.Do(ctx, func(context.Context) error {
			calls++
			return &statusErr{http.StatusTooManyRequests}
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Do did not return after cancellation")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDo_JitterBounded(t *testing.T) {
	t.Parallel()

	sleeper := &recordingSleeper{}
	policy := Policy{MaxRetries: 6, BaseDelay: time.Second, MaxDelay: 10 * time.Second, Jitter: true}
	r := New("test", policy, WithSleep(sleeper.Sleep), WithJitterSource(func() float64 { return 0.5 }))

	_ = r.Do(context.Background(), func(context.Context) error {
		return &statusErr{http.StatusTooManyRequests}
	})

	want := []time.Duration{
		1500 * time.Millisecond,
		2500 * time.Millisecond,
		4500 * time.Millisecond,
		8500 * time.Millisecond,
		10 * time.Second,
		10 * time.Second,
	}
	got := sleeper.Delays()
	if len(got) != len(want) {
		t.Fatalf("delays = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	sleeper := &recordingSleeper{}
	r := New("test", Policy{MaxRetries: 1, BaseDelay: time.Second, MaxDelay: time.Second}, WithSleep(sleeper.Sleep))

	calls := 0
	fn := Wrap(r, func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, &statusErr{http.StatusTooManyRequests}
		}
		return 42, nil
	})

	got, err := fn(context.Background())
	if err != nil || got != 42 {
		t.Fatalf("fn() = %d, %v; want 42, nil", got, err)
	}
}

func TestWithClassifier(t *testing.T) {
	t.Parallel()

	transient := errors.New("transient")
	sleeper := &recordingSleeper{}
	r := New("test", Policy{MaxRetries: 2, BaseDelay: time.Second, MaxDelay: time.Second},
		WithSleep(sleeper.Sleep),
		WithClassifier(func(err error) bool { return errors.Is(err, transient) }))

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return transient
	})
	if !errors.Is(err, transient) || calls != 3 {
		t.Errorf("err = %v calls = %d, want transient and 3 calls", err, calls)
	}
}

func TestSleep(t *testing.T) {
	t.Parallel()

	if err := Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Sleep() = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep(canceled) = %v, want context.Canceled", err)
	}
}
