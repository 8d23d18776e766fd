// Package models holds the canonical records of the geo-bucket domain.
package models

import (
	"time"

	"github.com/paulmach/orb"
)

// GeoBucket is the canonical grouping unit: one bucket per grid cell. The
// centroid is always the deterministic center of the cell, never an average
// of assigned points, so recomputation is idempotent. Buckets only ever grow
// (variants, count); deletion and merging are administrative operations
// outside this service.
type GeoBucket struct {
	CellID        string    `json:"cell_id"`
	Centroid      orb.Point `json:"centroid"` // (lng, lat)
	CanonicalName string    `json:"canonical_name"`
	NameVariants  []string  `json:"name_variants"`
	PropertyCount int       `json:"property_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LocationIndexEntry is a denormalized row supporting fuzzy name lookup
// without touching full bucket rows. Created once per distinct
// (normalized name, bucket) pair and never mutated.
type LocationIndexEntry struct {
	OriginalName   string    `json:"original_name"`
	NormalizedName string    `json:"normalized_name"`
	BucketCellID   string    `json:"bucket_cell_id"`
	PhoneticCode   string    `json:"phonetic_code"`
	Trigrams       []string  `json:"trigrams"`
	CreatedAt      time.Time `json:"created_at"`
}

// BucketStats aggregates bucket occupancy for the stats endpoint.
type BucketStats struct {
	TotalBuckets           int     `json:"total_buckets"`
	TotalProperties        int     `json:"total_properties"`
	AvgPropertiesPerBucket float64 `json:"avg_properties_per_bucket"`
	MaxPropertiesInBucket  int     `json:"max_properties_in_bucket"`
	MinPropertiesInBucket  int     `json:"min_properties_in_bucket"`
	BucketsWithProperties  int     `json:"buckets_with_properties"`
	EmptyBuckets           int     `json:"empty_buckets"`

	// Details is populated only when the caller asks for it.
	Details []*GeoBucket `json:"bucket_details,omitempty"`
}
