package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/campus-records/pkg/errors"
)

// CacheRepository stores JSON-encoded payloads in an in-process go-cache.
// Encoding keeps cached reports independent of the live records they came from.
type CacheRepository struct {
	client *gocache.Cache
	logger *zap.Logger
}

// NewCacheRepository constructs a cache repository with the given default
// expiration and janitor interval.
func NewCacheRepository(ttl, cleanupInterval time.Duration, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{client: gocache.New(ttl, cleanupInterval), logger: logger}
}

// Get retrieves and unmarshals the cached value into the provided destination.
func (r *CacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}

	raw, found := r.client.Get(key)
	if !found {
		return appErrors.ErrCacheMiss
	}
	payload, ok := raw.([]byte)
	if !ok {
		r.client.Delete(key)
		return fmt.Errorf("cache value for %s has type %T", key, raw)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}

	return nil
}

// Set marshals the provided value and stores it with the given TTL.
func (r *CacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}

	r.client.Set(key, payload, ttl)
	return nil
}

// DeleteByPattern removes cached entries matching pattern. A trailing "*"
// matches any suffix ("transcript:*"); otherwise the key must match exactly.
func (r *CacheRepository) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.client == nil {
		return nil
	}

	prefix, wildcard := strings.CutSuffix(pattern, "*")
	if !wildcard {
		r.client.Delete(pattern)
		return nil
	}
	for key := range r.client.Items() {
		if strings.HasPrefix(key, prefix) {
			r.client.Delete(key)
		}
	}
	r.logger.Debug("cache invalidated", zap.String("pattern", pattern))
	return nil
}
