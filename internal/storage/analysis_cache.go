// Package storage holds the Redis-backed cache of external analyses.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/analyzer"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
)

const (
	// DefaultTTL is how long an analysis stays cached.
	DefaultTTL = 24 * time.Hour
	keyPrefix  = "comment-tagger:analysis:"
)

// AnalysisCache stores analyzer results keyed by analyzer.CacheKey.
type AnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ analyzer.Cache = (*AnalysisCache)(nil)

// NewAnalysisCache creates a cache. A non-positive ttl uses DefaultTTL.
func NewAnalysisCache(client *redis.Client, ttl time.Duration) *AnalysisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &AnalysisCache{client: client, ttl: ttl}
}

// Get returns the cached analysis for key. A miss is (nil, false, nil).
func (c *AnalysisCache) Get(ctx context.Context, key string) (*domain.ExternalAnalysis, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached analysis: %w", err)
	}

	var result domain.ExternalAnalysis
	if unmarshalErr := json.Unmarshal(data, &result); unmarshalErr != nil {
		return nil, false, fmt.Errorf("decode cached analysis: %w", unmarshalErr)
	}
	return &result, true, nil
}

// Set stores result under key with the cache TTL.
func (c *AnalysisCache) Set(ctx context.Context, key string, result *domain.ExternalAnalysis) error {
	if result == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	if setErr := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); setErr != nil {
		return fmt.Errorf("set cached analysis: %w", setErr)
	}
	return nil
}
