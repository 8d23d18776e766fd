// Package store defines the persistence contract for geo-buckets and the
// fuzzy-lookup index. The resolution engine only ever talks to this
// interface; the in-memory implementation doubles as the test fake.
package store

import (
	"context"

	"propsearch/internal/bucket/models"
)

// Store is the bucket persistence contract.
//
// Implementations must guarantee:
//   - CreateIfAbsent is atomic on cell ID: under concurrent creates for one
//     cell exactly one row wins and every caller receives the winning row.
//   - IncrementAndAddVariant is atomic per bucket row: concurrent assigns on
//     the same bucket never lose an increment.
//
// Reads may serve a slightly stale snapshot; the engine tolerates that.
// Infrastructure failures are reported as wrapped sentinel.ErrUnavailable.
type Store interface {
	// GetByCell returns the bucket for a cell, or sentinel.ErrNotFound.
	GetByCell(ctx context.Context, cellID string) (*models.GeoBucket, error)

	// CreateIfAbsent persists the bucket unless one already exists for its
	// cell, in which case the existing row is returned. The bool reports
	// whether this call inserted the row. Never errors on a lost race.
	CreateIfAbsent(ctx context.Context, bucket *models.GeoBucket) (*models.GeoBucket, bool, error)

	// IncrementAndAddVariant atomically increments the property count and
	// appends name to the variant set when it is new and the set is below
	// variantCap. At the cap, the count still increments.
	IncrementAndAddVariant(ctx context.Context, cellID, name string, variantCap int) error

	// GetByCells returns the buckets that exist among the given cells,
	// preserving the order of cellIDs. Missing cells are skipped.
	GetByCells(ctx context.Context, cellIDs []string) ([]*models.GeoBucket, error)

	// UpsertIndexEntry records a (normalized name, bucket) pair once;
	// replays are no-ops.
	UpsertIndexEntry(ctx context.Context, entry *models.LocationIndexEntry) error

	// SearchIndex returns candidate index entries that share trigrams with
	// the normalized query or carry the same phonetic code. Candidates are
	// coarse; the caller applies the real match decision.
	SearchIndex(ctx context.Context, normalizedQuery, phoneticCode string) ([]*models.LocationIndexEntry, error)

	// ListBuckets returns all buckets ordered by property count descending.
	ListBuckets(ctx context.Context) ([]*models.GeoBucket, error)

	// Stats aggregates bucket occupancy.
	Stats(ctx context.Context) (*models.BucketStats, error)
}
