package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisQueue is a Redis-list-backed Queue (RPUSH/BLPOP).
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue wraps a Redis client as a queue on the given list key. The
// connection is pinged so a dead Redis fails at startup, not on first job.
func NewRedisQueue(ctx context.Context, client *redis.Client, key string) (*RedisQueue, error) {
	if key == "" {
		key = "ragmill:jobs"
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	log.Printf("NewRedisQueue: key=%s", key)
	return &RedisQueue{client: client, key: key}, nil
}

func (r *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	if err := r.client.RPush(ctx, r.key, data).Err(); err != nil {
		return fmt.Errorf("failed to push job to Redis: %w", err)
	}
	return nil
}

func (r *RedisQueue) Dequeue(ctx context.Context) (Job, error) {
	// BLPOP with timeout 0 blocks until a job arrives; go-redis aborts the
	// call when ctx is cancelled.
	val, err := r.client.BLPop(ctx, 0, r.key).Result()
	if err != nil {
		if ctx.Err() != nil {
			return Job{}, ctx.Err()
		}
		if errors.Is(err, redis.Nil) {
			return Job{}, fmt.Errorf("queue %s returned no job: %w", r.key, err)
		}
		return Job{}, fmt.Errorf("failed to pop job from Redis: %w", err)
	}
	if len(val) < 2 {
		return Job{}, fmt.Errorf("unexpected BLPOP reply of %d elements", len(val))
	}

	var job Job
	if err := json.Unmarshal([]byte(val[1]), &job); err != nil {
		return Job{}, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return job, nil
}
