package redisad

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

const keyPrefix = "travel:ratelimit"

type Client struct{ c *redis.Client }

func New(addr, pass string, db int) *Client {
	return &Client{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *Client) Ping(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}

func (r *Client) Close() error { return r.c.Close() }

// LimiterStore returns a rate-limit store shared by every API replica
// pointed at the same Redis.
func (r *Client) LimiterStore() (limiter.Store, error) {
	store, err := redisstore.NewStoreWithOptions(r.c, limiter.StoreOptions{
		Prefix:   keyPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("redis limiter store: %w", err)
	}
	return store, nil
}
