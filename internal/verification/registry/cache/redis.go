package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"healthsphere/internal/verification/models"
	id "healthsphere/pkg/domain"
)

const redisKeyPrefix = "registry:license:"

// Redis persists lookup results in Redis with TTL eviction, shared across instances.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed cache.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get loads a cached lookup result.
func (c *Redis) Get(ctx context.Context, license id.LicenseNumber) (*models.LookupResult, error) {
	data, err := c.client.Get(ctx, key(license)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("read registry cache: %w", err)
	}
	var result models.LookupResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode registry cache: %w", err)
	}
	return &result, nil
}

// Set writes a lookup result, overwriting any existing entry.
func (c *Redis) Set(ctx context.Context, result *models.LookupResult) error {
	if result == nil {
		return fmt.Errorf("lookup result is required")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode registry cache: %w", err)
	}
	if err := c.client.Set(ctx, key(result.LicenseNumber), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("write registry cache: %w", err)
	}
	return nil
}

func key(license id.LicenseNumber) string {
	return redisKeyPrefix + license.String()
}
