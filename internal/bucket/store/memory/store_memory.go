// Package memory implements the bucket store in process memory. It is the
// reference implementation for the store contract and the fake the engine
// tests run against.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"propsearch/internal/bucket/models"
	"propsearch/internal/bucket/store"
	"propsearch/internal/location/normalizer"
	"propsearch/pkg/platform/sentinel"
)

// Store keeps buckets and index entries in maps guarded by one RWMutex, which
// gives the atomicity the contract asks for without row-level machinery.
type Store struct {
	mu      sync.RWMutex
	buckets map[string]*models.GeoBucket
	// entries preserves insertion order; keys dedupes (name, cell) pairs.
	entries []*models.LocationIndexEntry
	keys    map[indexKey]struct{}
}

type indexKey struct {
	normalizedName string
	cellID         string
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory bucket store.
func New() *Store {
	return &Store{
		buckets: make(map[string]*models.GeoBucket),
		keys:    make(map[indexKey]struct{}),
	}
}

func (s *Store) GetByCell(ctx context.Context, cellID string) (*models.GeoBucket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket, ok := s.buckets[cellID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneBucket(bucket), nil
}

func (s *Store) CreateIfAbsent(ctx context.Context, bucket *models.GeoBucket) (*models.GeoBucket, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.buckets[bucket.CellID]; ok {
		return cloneBucket(existing), false, nil
	}
	stored := cloneBucket(bucket)
	now := time.Now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.buckets[stored.CellID] = stored
	return cloneBucket(stored), true, nil
}

func (s *Store) IncrementAndAddVariant(ctx context.Context, cellID, name string, variantCap int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.buckets[cellID]
	if !ok {
		return sentinel.ErrNotFound
	}
	bucket.PropertyCount++
	if name != "" && !contains(bucket.NameVariants, name) && len(bucket.NameVariants) < variantCap {
		bucket.NameVariants = append(bucket.NameVariants, name)
	}
	bucket.UpdatedAt = time.Now()
	return nil
}

func (s *Store) GetByCells(ctx context.Context, cellIDs []string) ([]*models.GeoBucket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]*models.GeoBucket, 0, len(cellIDs))
	for _, id := range cellIDs {
		if bucket, ok := s.buckets[id]; ok {
			found = append(found, cloneBucket(bucket))
		}
	}
	return found, nil
}

func (s *Store) UpsertIndexEntry(ctx context.Context, entry *models.LocationIndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := indexKey{normalizedName: entry.NormalizedName, cellID: entry.BucketCellID}
	if _, ok := s.keys[key]; ok {
		return nil
	}
	stored := cloneEntry(entry)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.keys[key] = struct{}{}
	s.entries = append(s.entries, stored)
	return nil
}

// SearchIndex returns entries sharing at least one trigram with the query or
// carrying the same phonetic code. This mirrors the coarse pg_trgm/metaphone
// prefilter of the postgres implementation.
func (s *Store) SearchIndex(ctx context.Context, normalizedQuery, phoneticCode string) ([]*models.LocationIndexEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queryGrams := trigramSet(normalizedQuery)
	var out []*models.LocationIndexEntry
	for _, entry := range s.entries {
		if phoneticCode != "" && entry.PhoneticCode == phoneticCode {
			out = append(out, cloneEntry(entry))
			continue
		}
		if sharesTrigram(queryGrams, entry.Trigrams) {
			out = append(out, cloneEntry(entry))
		}
	}
	return out, nil
}

func (s *Store) ListBuckets(ctx context.Context) ([]*models.GeoBucket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.GeoBucket, 0, len(s.buckets))
	for _, bucket := range s.buckets {
		out = append(out, cloneBucket(bucket))
	}
	sortBuckets(out)
	return out, nil
}

func (s *Store) Stats(ctx context.Context) (*models.BucketStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.BucketStats{TotalBuckets: len(s.buckets)}
	if stats.TotalBuckets == 0 {
		return stats, nil
	}

	first := true
	for _, bucket := range s.buckets {
		stats.TotalProperties += bucket.PropertyCount
		if bucket.PropertyCount > 0 {
			stats.BucketsWithProperties++
		}
		if first || bucket.PropertyCount > stats.MaxPropertiesInBucket {
			stats.MaxPropertiesInBucket = bucket.PropertyCount
		}
		if first || bucket.PropertyCount < stats.MinPropertiesInBucket {
			stats.MinPropertiesInBucket = bucket.PropertyCount
		}
		first = false
	}
	stats.EmptyBuckets = stats.TotalBuckets - stats.BucketsWithProperties
	stats.AvgPropertiesPerBucket = float64(stats.TotalProperties) / float64(stats.TotalBuckets)
	return stats, nil
}

func cloneBucket(b *models.GeoBucket) *models.GeoBucket {
	clone := *b
	clone.NameVariants = append([]string(nil), b.NameVariants...)
	return &clone
}

func cloneEntry(e *models.LocationIndexEntry) *models.LocationIndexEntry {
	clone := *e
	clone.Trigrams = append([]string(nil), e.Trigrams...)
	return &clone
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func trigramSet(s string) map[string]struct{} {
	grams := normalizer.Trigrams(s)
	set := make(map[string]struct{}, len(grams))
	for _, g := range grams {
		set[g] = struct{}{}
	}
	return set
}

func sharesTrigram(queryGrams map[string]struct{}, entryGrams []string) bool {
	for _, g := range entryGrams {
		if _, ok := queryGrams[g]; ok {
			return true
		}
	}
	return false
}

func sortBuckets(buckets []*models.GeoBucket) {
	// Property count descending, then canonical name for a stable listing.
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].PropertyCount != buckets[j].PropertyCount {
			return buckets[i].PropertyCount > buckets[j].PropertyCount
		}
		return buckets[i].CanonicalName < buckets[j].CanonicalName
	})
}
