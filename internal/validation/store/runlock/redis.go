package runlock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "julee/pkg/domain"
	"julee/pkg/platform/sentinel"
)

// DefaultLockTTL bounds how long a crashed orchestrator can hold a lock.
// A run that outlives the TTL loses exclusivity, so it should comfortably
// exceed the worst-case stage duration; resumability makes a stolen lock
// safe (the next Run re-derives its position from persisted status).
const DefaultLockTTL = 5 * time.Minute

// Redis is a RunLocker backed by SET NX with a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisOption func(*Redis)

func WithTTL(ttl time.Duration) RedisOption {
	return func(l *Redis) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

func NewRedis(client *redis.Client, opts ...RedisOption) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	l := &Redis{client: client, ttl: DefaultLockTTL}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func lockKey(validationID id.ValidationID) string {
	return "julee:runlock:" + validationID.String()
}

func (l *Redis) Acquire(ctx context.Context, validationID id.ValidationID) error {
	acquired, err := l.client.SetNX(ctx, lockKey(validationID), "1", l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !acquired {
		return sentinel.ErrConflict
	}
	return nil
}

func (l *Redis) Release(ctx context.Context, validationID id.ValidationID) error {
	if err := l.client.Del(ctx, lockKey(validationID)).Err(); err != nil {
		return fmt.Errorf("release run lock: %w", err)
	}
	return nil
}
