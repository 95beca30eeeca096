// internal/cache/redis.go
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// How long a recorded-reference marker survives. Gateways re-deliver
// webhooks within hours, not weeks; the database unique constraint remains
// the source of truth after expiry.
const recordedExpiry = 24 * time.Hour

// RecordedCache answers "has this reference already been recorded?" fast,
// so repeat webhook deliveries can be short-circuited before the database.
type RecordedCache interface {
	IsRecorded(ctx context.Context, reference string) (bool, error)
	MarkRecorded(ctx context.Context, reference string) error
}

// RedisCache implements RecordedCache on Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *RedisCache) key(reference string) string {
	return fmt.Sprintf("phcr:recorded:%s", reference)
}

func (c *RedisCache) IsRecorded(ctx context.Context, reference string) (bool, error) {
	_, err := c.client.Get(ctx, c.key(reference)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis GET error: %w", err)
	}
	return true, nil
}

func (c *RedisCache) MarkRecorded(ctx context.Context, reference string) error {
	if err := c.client.Set(ctx, c.key(reference), "1", recordedExpiry).Err(); err != nil {
		return fmt.Errorf("redis SET error: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error { return c.client.Close() }
