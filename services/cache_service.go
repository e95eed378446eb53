package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/roteirolab/roteiro-backend/config"
	"github.com/roteirolab/roteiro-backend/logger"
	"github.com/roteirolab/roteiro-backend/types"
	"go.uber.org/zap"
)

// PresentationCache caches composed presentation payloads by public token.
// Shared links are read far more often than quotes change, so this shields
// the stores from the public hot path. When Redis is not configured every
// method is a no-op; cache misses and cache errors are equivalent.
type PresentationCache struct {
	client  *redis.Client
	ttl     time.Duration
	enabled bool
	log     *zap.SugaredLogger
}

// NewPresentationCache builds the cache from config. A disabled config
// yields a functioning no-op cache.
func NewPresentationCache(cfg *config.RedisConfig) *PresentationCache {
	cache := &PresentationCache{
		ttl:     time.Duration(cfg.TTLSeconds) * time.Second,
		enabled: cfg.Enabled,
		log:     logger.GetLogger(),
	}
	if cfg.Enabled {
		cache.client = redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}
	return cache
}

// NewPresentationCacheWithClient wires an existing client, used by tests.
func NewPresentationCacheWithClient(client *redis.Client, ttl time.Duration) *PresentationCache {
	return &PresentationCache{
		client:  client,
		ttl:     ttl,
		enabled: true,
		log:     logger.GetLogger(),
	}
}

func cacheKey(publicID string) string {
	return fmt.Sprintf("presentation:%s", publicID)
}

// Get returns the cached payload or nil on any miss or error.
func (c *PresentationCache) Get(ctx context.Context, publicID string) *types.PresentationPayload {
	if !c.enabled || c.client == nil {
		return nil
	}

	data, err := c.client.Get(ctx, cacheKey(publicID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnw("Presentation cache read failed", "publicId", publicID, "error", err)
		}
		return nil
	}

	var payload types.PresentationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.log.Warnw("Presentation cache entry corrupt, ignoring", "publicId", publicID, "error", err)
		return nil
	}
	return &payload
}

// Set stores the payload; failures are logged and swallowed.
func (c *PresentationCache) Set(ctx context.Context, publicID string, payload *types.PresentationPayload) {
	if !c.enabled || c.client == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		c.log.Warnw("Failed to encode presentation payload for cache", "error", err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(publicID), data, c.ttl).Err(); err != nil {
		c.log.Warnw("Presentation cache write failed", "publicId", publicID, "error", err)
	}
}

// Invalidate drops the cached payload after a quote changes.
func (c *PresentationCache) Invalidate(ctx context.Context, publicID string) {
	if !c.enabled || c.client == nil || publicID == "" {
		return
	}
	if err := c.client.Del(ctx, cacheKey(publicID)).Err(); err != nil {
		c.log.Warnw("Presentation cache invalidation failed", "publicId", publicID, "error", err)
	}
}
