package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nurpe/contractgen/internal/model"
)

const cacheKeyPrefix = "registry:company:"

func Connect(redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, taxID string) (*model.CompanyRecord, error) {
	raw, err := c.client.Get(ctx, cacheKeyPrefix+taxID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var rec model.CompanyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *RedisCache) Put(ctx context.Context, taxID string, rec model.CompanyRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+taxID, raw, c.ttl).Err()
}
