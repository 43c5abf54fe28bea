package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/satriadivo/goshop/internal/domain/entity"
)

const cartTTL = 15 * time.Minute

type redisCartCache struct {
	rdb *redis.Client
}

func NewRedisCartCache(rdb *redis.Client) CartCache {
	return &redisCartCache{rdb: rdb}
}

func cartKey(email string) string { return "cart:" + email }

func (c *redisCartCache) Get(ctx context.Context, email string) (*entity.Cart, error) {
	b, err := c.rdb.Get(ctx, cartKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var cart entity.Cart
	if err := json.Unmarshal(b, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *redisCartCache) Set(ctx context.Context, email string, cart *entity.Cart) error {
	b, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cartKey(email), b, cartTTL).Err()
}

func (c *redisCartCache) Delete(ctx context.Context, email string) error {
	return c.rdb.Del(ctx, cartKey(email)).Err()
}
