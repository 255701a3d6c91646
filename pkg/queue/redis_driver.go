package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisQueueKey = "vypar:queue:jobs"

// RedisDriver is a queue driver backed by Redis. Jobs use LPUSH/BRPOP
// on a list, so multiple server instances can share one queue.
type RedisDriver struct {
	rdb *redis.Client
	ctx context.Context
}

// NewRedisDriver creates a Redis-backed queue driver.
// Pass the same *redis.Client used by pkg/cache.
func NewRedisDriver(rdb *redis.Client) *RedisDriver {
	return &RedisDriver{rdb: rdb, ctx: context.Background()}
}

// Push adds a job payload to the queue (LPUSH).
func (d *RedisDriver) Push(payload []byte) error {
	if err := d.rdb.LPush(d.ctx, redisQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("queue/redis: push: %w", err)
	}
	return nil
}

// Pop blocks until a job is available (BRPOP with 5s timeout).
func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	result, err := d.rdb.BRPop(ctx, 5*time.Second, redisQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // timeout — no jobs ready, normal
		}
		return nil, fmt.Errorf("queue/redis: pop: %w", err)
	}
	if len(result) < 2 {
		return nil, nil
	}
	return []byte(result[1]), nil
}
