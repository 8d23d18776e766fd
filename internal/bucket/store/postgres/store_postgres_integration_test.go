//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/suite"

	"propsearch/internal/bucket/models"
	"propsearch/internal/bucket/store/postgres"
	"propsearch/pkg/platform/sentinel"
	"propsearch/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
	ctx      context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = postgres.New(s.postgres.Pool)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	// Truncate in dependency order.
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "properties", "location_index", "geo_buckets"))
}

func newBucket(cellID, name string) *models.GeoBucket {
	return &models.GeoBucket{
		CellID:        cellID,
		Centroid:      orb.Point{3.6285, 6.4698},
		CanonicalName: name,
		NameVariants:  []string{name},
		PropertyCount: 1,
	}
}

func (s *PostgresStoreSuite) TestCreateAndGet() {
	created, inserted, err := s.store.CreateIfAbsent(s.ctx, newBucket("89754e64993ffff", "sangotedo"))
	s.Require().NoError(err)
	s.True(inserted)
	s.Equal("sangotedo", created.CanonicalName)
	s.False(created.CreatedAt.IsZero())

	got, err := s.store.GetByCell(s.ctx, "89754e64993ffff")
	s.Require().NoError(err)
	s.Equal(created.CellID, got.CellID)
	s.Equal([]string{"sangotedo"}, got.NameVariants)
	s.InDelta(3.6285, got.Centroid[0], 0.000001)
	s.InDelta(6.4698, got.Centroid[1], 0.000001)

	_, err = s.store.GetByCell(s.ctx, "no-such-cell")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestCreateIfAbsentConcurrent() {
	const goroutines = 20

	var wg sync.WaitGroup
	results := make([]*models.GeoBucket, goroutines)
	createds := make([]bool, goroutines)
	errs := make([]error, goroutines)
	for i := range goroutines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], createds[i], errs[i] = s.store.CreateIfAbsent(s.ctx, newBucket("cell-race", "sangotedo"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for i := range goroutines {
		s.Require().NoError(errs[i])
		s.Equal("cell-race", results[i].CellID)
		s.Equal("sangotedo", results[i].CanonicalName)
		if createds[i] {
			winners++
		}
	}
	s.Equal(1, winners, "exactly one insert wins the race")

	buckets, err := s.store.ListBuckets(s.ctx)
	s.Require().NoError(err)
	s.Len(buckets, 1)
}

func (s *PostgresStoreSuite) TestIncrementAndAddVariant() {
	_, _, err := s.store.CreateIfAbsent(s.ctx, newBucket("cell-a", "sangotedo"))
	s.Require().NoError(err)

	const writers = 25
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.store.IncrementAndAddVariant(s.ctx, "cell-a", "sangotedo ajah", 20)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		s.Require().NoError(err)
	}

	got, err := s.store.GetByCell(s.ctx, "cell-a")
	s.Require().NoError(err)
	s.Equal(1+writers, got.PropertyCount, "no lost increments")
	s.Equal([]string{"sangotedo", "sangotedo ajah"}, got.NameVariants)

	s.Run("cap skips append but still counts", func() {
		s.Require().NoError(s.store.IncrementAndAddVariant(s.ctx, "cell-a", "third name", 2))
		got, err := s.store.GetByCell(s.ctx, "cell-a")
		s.Require().NoError(err)
		s.Equal(2+writers, got.PropertyCount)
		s.Len(got.NameVariants, 2)
	})

	s.Run("missing bucket", func() {
		err := s.store.IncrementAndAddVariant(s.ctx, "missing", "x", 20)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestGetByCellsPreservesOrder() {
	for _, cell := range []string{"c1", "c2", "c3"} {
		_, _, err := s.store.CreateIfAbsent(s.ctx, newBucket(cell, "name "+cell))
		s.Require().NoError(err)
	}

	got, err := s.store.GetByCells(s.ctx, []string{"c2", "missing", "c3", "c1"})
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("c2", got[0].CellID)
	s.Equal("c3", got[1].CellID)
	s.Equal("c1", got[2].CellID)
}

func (s *PostgresStoreSuite) TestSearchIndex() {
	_, _, err := s.store.CreateIfAbsent(s.ctx, newBucket("cell-a", "sangotedo"))
	s.Require().NoError(err)

	entry := &models.LocationIndexEntry{
		OriginalName:   "Sangotedo",
		NormalizedName: "sangotedo",
		BucketCellID:   "cell-a",
		PhoneticCode:   "SNKT",
		Trigrams:       []string{"san", "ang", "ngo", "got", "ote", "ted", "edo"},
	}
	s.Require().NoError(s.store.UpsertIndexEntry(s.ctx, entry))
	s.Require().NoError(s.store.UpsertIndexEntry(s.ctx, entry), "replay is a no-op")

	s.Run("trigram candidates", func() {
		found, err := s.store.SearchIndex(s.ctx, "sangoted", "")
		s.Require().NoError(err)
		s.Require().Len(found, 1)
		s.Equal("cell-a", found[0].BucketCellID)
	})

	s.Run("phonetic candidates", func() {
		found, err := s.store.SearchIndex(s.ctx, "xxxxxx", "SNKT")
		s.Require().NoError(err)
		s.Require().Len(found, 1)
	})

	s.Run("no candidates", func() {
		found, err := s.store.SearchIndex(s.ctx, "yaba", "YP")
		s.Require().NoError(err)
		s.Empty(found)
	})
}

func (s *PostgresStoreSuite) TestStats() {
	stats, err := s.store.Stats(s.ctx)
	s.Require().NoError(err)
	s.Zero(stats.TotalBuckets)

	_, _, err = s.store.CreateIfAbsent(s.ctx, newBucket("c1", "sangotedo"))
	s.Require().NoError(err)
	_, _, err = s.store.CreateIfAbsent(s.ctx, &models.GeoBucket{CellID: "c2", CanonicalName: "ajah"})
	s.Require().NoError(err)

	stats, err = s.store.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, stats.TotalBuckets)
	s.Equal(1, stats.TotalProperties)
	s.Equal(1, stats.BucketsWithProperties)
	s.Equal(1, stats.EmptyBuckets)
}
