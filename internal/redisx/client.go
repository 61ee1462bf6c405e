package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	r := redis.NewClient(&redis.Options{Addr: addr})
	_ = r.WithTimeout(2 * time.Second)
	return r
}

func Exists(ctx context.Context, rdb *redis.Client, key string) (bool, error) {
	n, err := rdb.Exists(ctx, key).Result()
	return n > 0, err
}

// StatusCache keeps the latest known order status in redis so the read
// path can answer without touching postgres.
type StatusCache struct {
	R *redis.Client
}

func (c *StatusCache) SetStatus(ctx context.Context, orderID, status string) error {
	key := fmt.Sprintf(KeyOrderStatus, orderID)
	body := fmt.Sprintf(`{"status":%q}`, status)
	return c.R.Set(ctx, key, body, TTLStatusCache).Err()
}

func (c *StatusCache) GetStatus(ctx context.Context, orderID string) (string, error) {
	key := fmt.Sprintf(KeyOrderStatus, orderID)
	return c.R.Get(ctx, key).Result()
}
