package adapters

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/outbound"
)

// redisGenerationLock is the advisory in-flight guard for media generation.
// SET NX with a TTL: the TTL bounds how long a crashed request can keep a
// story locked.
type redisGenerationLock struct {
	logger outbound.LoggerPort
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGenerationLock(logger outbound.LoggerPort, client *redis.Client, ttl time.Duration) outbound.GenerationLockPort {
	return &redisGenerationLock{
		logger: logger,
		client: client,
		ttl:    ttl,
	}
}

func (r *redisGenerationLock) Acquire(ctx context.Context, key string) (bool, error) {
	acquired, err := r.client.SetNX(ctx, key, "1", r.ttl).Result()
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to acquire generation lock", map[string]interface{}{
			"key": key,
		})
		return false, err
	}
	return acquired, nil
}

func (r *redisGenerationLock) Release(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.WarnWithFields("Failed to release generation lock, TTL will expire it", map[string]interface{}{
			"key": key,
		})
	}
}
