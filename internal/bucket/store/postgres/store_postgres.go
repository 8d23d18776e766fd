// Package postgres persists geo-buckets in PostgreSQL. Create-if-absent rides
// on the cell_id primary key, the count/variant update is a single atomic
// statement, and fuzzy candidate lookup uses pg_trgm plus the phonetic code
// index.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"

	"propsearch/internal/bucket/models"
	"propsearch/internal/bucket/store"
	"propsearch/pkg/platform/sentinel"
)

// Store implements store.Store on a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// New constructs a PostgreSQL-backed bucket store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const bucketColumns = `cell_id, centroid_lng, centroid_lat, canonical_name, name_variants, property_count, created_at, updated_at`

func (s *Store) GetByCell(ctx context.Context, cellID string) (*models.GeoBucket, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+bucketColumns+` FROM geo_buckets WHERE cell_id = $1`, cellID)
	bucket, err := scanBucket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bucket by cell: %w", err)
	}
	return bucket, nil
}

func (s *Store) CreateIfAbsent(ctx context.Context, bucket *models.GeoBucket) (*models.GeoBucket, bool, error) {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO geo_buckets (cell_id, centroid_lng, centroid_lat, canonical_name, name_variants, property_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (cell_id) DO NOTHING`,
		bucket.CellID, bucket.Centroid[0], bucket.Centroid[1],
		bucket.CanonicalName, bucket.NameVariants, bucket.PropertyCount,
	)
	if err != nil {
		return nil, false, fmt.Errorf("create bucket: %w", err)
	}
	created := tag.RowsAffected() == 1
	// Lost the race or won it; either way the row for this cell is the truth.
	winner, err := s.GetByCell(ctx, bucket.CellID)
	if err != nil {
		return nil, created, fmt.Errorf("read bucket after create: %w", err)
	}
	return winner, created, nil
}

func (s *Store) IncrementAndAddVariant(ctx context.Context, cellID, name string, variantCap int) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE geo_buckets
		SET property_count = property_count + 1,
		    name_variants = CASE
		        WHEN $2 = '' OR $2 = ANY(name_variants) OR cardinality(name_variants) >= $3
		            THEN name_variants
		        ELSE array_append(name_variants, $2)
		    END,
		    updated_at = now()
		WHERE cell_id = $1`,
		cellID, name, variantCap,
	)
	if err != nil {
		return fmt.Errorf("increment bucket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Store) GetByCells(ctx context.Context, cellIDs []string) ([]*models.GeoBucket, error) {
	if len(cellIDs) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+bucketColumns+`
		FROM geo_buckets
		JOIN unnest($1::text[]) WITH ORDINALITY AS requested(cell_id, ord) USING (cell_id)
		ORDER BY requested.ord`,
		cellIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("get buckets by cells: %w", err)
	}
	defer rows.Close()
	return collectBuckets(rows)
}

func (s *Store) UpsertIndexEntry(ctx context.Context, entry *models.LocationIndexEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO location_index (original_name, normalized_name, bucket_cell_id, phonetic_code, trigrams)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (normalized_name, bucket_cell_id) DO NOTHING`,
		entry.OriginalName, entry.NormalizedName, entry.BucketCellID,
		entry.PhoneticCode, entry.Trigrams,
	)
	if err != nil {
		return fmt.Errorf("upsert index entry: %w", err)
	}
	return nil
}

func (s *Store) SearchIndex(ctx context.Context, normalizedQuery, phoneticCode string) ([]*models.LocationIndexEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT original_name, normalized_name, bucket_cell_id, phonetic_code, trigrams, created_at
		FROM location_index
		WHERE normalized_name % $1
		   OR ($2 <> '' AND phonetic_code = $2)
		ORDER BY created_at`,
		normalizedQuery, phoneticCode,
	)
	if err != nil {
		return nil, fmt.Errorf("search location index: %w", err)
	}
	defer rows.Close()

	var entries []*models.LocationIndexEntry
	for rows.Next() {
		entry := &models.LocationIndexEntry{}
		if err := rows.Scan(
			&entry.OriginalName, &entry.NormalizedName, &entry.BucketCellID,
			&entry.PhoneticCode, &entry.Trigrams, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan index entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search location index: %w", err)
	}
	return entries, nil
}

func (s *Store) ListBuckets(ctx context.Context) ([]*models.GeoBucket, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+bucketColumns+`
		FROM geo_buckets
		ORDER BY property_count DESC, canonical_name`)
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}
	defer rows.Close()
	return collectBuckets(rows)
}

func (s *Store) Stats(ctx context.Context) (*models.BucketStats, error) {
	stats := &models.BucketStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT count(*),
		       COALESCE(sum(property_count), 0),
		       COALESCE(avg(property_count), 0),
		       COALESCE(max(property_count), 0),
		       COALESCE(min(property_count), 0),
		       count(*) FILTER (WHERE property_count > 0)
		FROM geo_buckets`).Scan(
		&stats.TotalBuckets, &stats.TotalProperties, &stats.AvgPropertiesPerBucket,
		&stats.MaxPropertiesInBucket, &stats.MinPropertiesInBucket, &stats.BucketsWithProperties,
	)
	if err != nil {
		return nil, fmt.Errorf("bucket stats: %w", err)
	}
	stats.EmptyBuckets = stats.TotalBuckets - stats.BucketsWithProperties
	return stats, nil
}

func collectBuckets(rows pgx.Rows) ([]*models.GeoBucket, error) {
	var buckets []*models.GeoBucket
	for rows.Next() {
		bucket, err := scanBucket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bucket: %w", err)
		}
		buckets = append(buckets, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate buckets: %w", err)
	}
	return buckets, nil
}

func scanBucket(row pgx.Row) (*models.GeoBucket, error) {
	bucket := &models.GeoBucket{}
	var lng, lat float64
	if err := row.Scan(
		&bucket.CellID, &lng, &lat, &bucket.CanonicalName,
		&bucket.NameVariants, &bucket.PropertyCount,
		&bucket.CreatedAt, &bucket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	bucket.Centroid = orb.Point{lng, lat}
	return bucket, nil
}
