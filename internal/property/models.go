// Package property manages listings: the write path assigns every listing to
// its geo-bucket, the search path resolves free-text locations into buckets
// and returns the listings they hold.
package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Property is one listing. BucketCellID is set exactly once per creation and
// only changes when the coordinates change, which is treated as a fresh
// assignment.
type Property struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	LocationName string    `json:"location_name"`
	Location     orb.Point `json:"location"` // (lng, lat)
	BucketCellID string    `json:"bucket_cell_id"`
	Price        float64   `json:"price"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateInput carries the caller-supplied fields for a new listing.
type CreateInput struct {
	Title        string  `json:"title"`
	LocationName string  `json:"location_name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Price        float64 `json:"price"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
}

// UpdateInput carries a full replacement of the mutable fields.
type UpdateInput struct {
	Title        string  `json:"title"`
	LocationName string  `json:"location_name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Price        float64 `json:"price"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
}

// SearchQuery is a free-text location search, optionally anchored at a point.
type SearchQuery struct {
	LocationName string
	Lat, Lng     *float64
	Limit        int
}

// SearchResult pairs the listings with the buckets the query resolved to, so
// clients can show which neighborhoods matched.
type SearchResult struct {
	Properties     []*Property `json:"properties"`
	MatchedBuckets []string    `json:"matched_buckets"`
	TerminalLayer  string      `json:"terminal_layer"`
}
