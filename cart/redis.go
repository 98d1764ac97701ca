package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "foodees:cart:"

// RedisStore shares carts between API instances. Keys expire after ttl of
// inactivity, matching the session token lifetime.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := r.rdb.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return &Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart: redis get: %w", err)
	}
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("cart: decode: %w", err)
	}
	return &c, nil
}

func (r *RedisStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	if c.Empty() {
		return r.Delete(ctx, sessionID)
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := r.rdb.Set(ctx, redisKeyPrefix+sessionID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("cart: redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, redisKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("cart: redis del: %w", err)
	}
	return nil
}
