// Package cache provides the Redis read-through cache for bucket lookups on
// the locate path. The cache is never authoritative: every failure, parse
// error included, degrades to a miss and falls back to the store.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"propsearch/internal/bucket/models"
	"propsearch/internal/platform/redis"
)

const keyPrefix = "propsearch:bucket:"

// Buckets caches bucket rows keyed by cell identifier.
type Buckets struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewBuckets builds the cache. A nil client yields a nil cache, which callers
// treat as "no cache wired".
func NewBuckets(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Buckets {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Buckets{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached bucket for a cell, or (nil, false) on any miss.
func (c *Buckets) Get(ctx context.Context, cellID string) (*models.GeoBucket, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+cellID).Bytes()
	if err != nil {
		return nil, false
	}
	var bucket models.GeoBucket
	if err := json.Unmarshal(raw, &bucket); err != nil {
		c.logger.WarnContext(ctx, "dropping undecodable bucket cache entry",
			"cell_id", cellID, "error", err)
		c.client.Del(ctx, keyPrefix+cellID)
		return nil, false
	}
	return &bucket, true
}

// Set stores the bucket with the configured TTL. Write failures are logged
// and swallowed; the next Get simply misses.
func (c *Buckets) Set(ctx context.Context, cellID string, bucket *models.GeoBucket) {
	raw, err := json.Marshal(bucket)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+cellID, raw, c.ttl).Err(); err != nil {
		c.logger.DebugContext(ctx, "bucket cache write failed",
			"cell_id", cellID, "error", err)
	}
}
