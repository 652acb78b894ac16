package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.AnalysisCache = (*AnalysisCache)(nil)

const cachePrefix = "cache:"

// AnalysisCache implements driven.AnalysisCache using Redis.
// Results are keyed by a content digest computed upstream, so the cache
// never has to invalidate on edit: a changed document is a new key.
type AnalysisCache struct {
	client *redis.Client
}

// NewAnalysisCache creates a new Redis-backed AnalysisCache
func NewAnalysisCache(client *redis.Client) *AnalysisCache {
	return &AnalysisCache{client: client}
}

// Get retrieves a cached result
func (c *AnalysisCache) Get(ctx context.Context, key string) (*domain.AnalysisResult, error) {
	data, err := c.client.Get(ctx, cachePrefix+key).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached result: %w", err)
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}

	return &result, nil
}

// Set stores a result with the given TTL
func (c *AnalysisCache) Set(ctx context.Context, key string, result *domain.AnalysisResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := c.client.Set(ctx, cachePrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache result: %w", err)
	}

	return nil
}

// Delete drops a cached result
func (c *AnalysisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, cachePrefix+key).Err()
}
