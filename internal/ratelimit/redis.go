// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/retry"
)

// intervalScript claims the slot key for ARGV[2] milliseconds. It returns 0
// when the slot was claimed, otherwise the remaining lock time in ms.
var intervalScript = redis.NewScript(`
if redis.call("SET", KEYS[1], ARGV[1], "NX", "PX", ARGV[2]) then
  return 0
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 1 then
  return 1
end
return ttl
`)

// RedisInterval spaces permits across every replica sharing a Redis
// instance. A permit claims a key that expires after minInterval; callers
// that find the key taken sleep for its remaining TTL and try again.
//
// When Redis is unreachable the limiter degrades to a process-local
// MinInterval so outbound calls keep their spacing within one replica.
type RedisInterval struct {
	client      redis.Scripter
	key         string
	name        string
	minInterval time.Duration
	fallback    *MinInterval
	sleep       retry.SleepFunc
}

// NewRedisInterval creates a distributed interval limiter. prefix namespaces
// the key, e.g. "cinematch:limiter:" gives "cinematch:limiter:langsearch".
func NewRedisInterval(client redis.Scripter, prefix, name string, minInterval time.Duration) *RedisInterval {
	return &RedisInterval{
		client:      client,
		key:         buildKey(prefix, name),
		name:        name,
		minInterval: minInterval,
		fallback:    NewMinInterval(name, minInterval),
		sleep:       retry.Sleep,
	}
}

func buildKey(prefix, name string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return name
	}
	if strings.HasSuffix(prefix, ":") {
		return prefix + name
	}
	return prefix + ":" + name
}

// Acquire claims the next slot, waiting as long as another holder owns it.
func (r *RedisInterval) Acquire(ctx context.Context) (time.Duration, error) {
	if r.minInterval <= 0 {
		return 0, ctx.Err()
	}

	token := uuid.NewString()
	ttlMs := r.minInterval.Milliseconds()
	if ttlMs < 1 {
		ttlMs = 1
	}

	var waited time.Duration
	for {
		remaining, err := r.claim(ctx, token, ttlMs)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return waited, ctxErr
			}
			logging.Ctx(ctx).Warn().Err(err).
				Str("limiter", r.name).
				Msg("Redis limiter unavailable, falling back to local spacing")
			wait, fbErr := r.fallback.Acquire(ctx)
			return waited + wait, fbErr
		}
		if remaining == 0 {
			metrics.RecordLimiterWait(r.name, waited)
			return waited, nil
		}
		if err := r.sleep(ctx, remaining); err != nil {
			return waited, err
		}
		waited += remaining
	}
}

func (r *RedisInterval) claim(ctx context.Context, token string, ttlMs int64) (time.Duration, error) {
	res, err := intervalScript.Run(ctx, r.client, []string{r.key}, token, ttlMs).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, fmt.Errorf("ratelimit: empty script reply")
		}
		return 0, err
	}
	return time.Duration(res) * time.Millisecond, nil
}

// Key returns the Redis key this limiter claims.
func (r *RedisInterval) Key() string {
	return r.key
}
