//go:build integration

package cache_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"propsearch/internal/bucket/cache"
	"propsearch/internal/bucket/models"
	"propsearch/internal/platform/redis"
	"propsearch/pkg/testutil/containers"
)

func TestBucketsCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	buckets := cache.NewBuckets(&redis.Client{Client: rc.Client}, time.Minute, logger)

	t.Run("miss on unknown cell", func(t *testing.T) {
		_, ok := buckets.Get(ctx, "89754e64993ffff")
		require.False(t, ok)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		want := &models.GeoBucket{
			CellID:        "89754e64993ffff",
			Centroid:      orb.Point{3.6285, 6.4698},
			CanonicalName: "sangotedo",
			NameVariants:  []string{"sangotedo", "sangotedo ajah"},
			PropertyCount: 3,
		}
		buckets.Set(ctx, want.CellID, want)

		got, ok := buckets.Get(ctx, want.CellID)
		require.True(t, ok)
		require.Equal(t, want.CanonicalName, got.CanonicalName)
		require.Equal(t, want.NameVariants, got.NameVariants)
		require.Equal(t, want.PropertyCount, got.PropertyCount)
		require.InDelta(t, want.Centroid[0], got.Centroid[0], 0.000001)
	})

	t.Run("undecodable entry degrades to a miss", func(t *testing.T) {
		require.NoError(t, rc.Client.Set(ctx, "propsearch:bucket:bad", "{not json", time.Minute).Err())

		_, ok := buckets.Get(ctx, "bad")
		require.False(t, ok)

		exists, err := rc.Client.Exists(ctx, "propsearch:bucket:bad").Result()
		require.NoError(t, err)
		require.Zero(t, exists, "poison entries are evicted")
	})

	t.Run("nil client yields nil cache", func(t *testing.T) {
		require.Nil(t, cache.NewBuckets(nil, time.Minute, logger))
	})
}
