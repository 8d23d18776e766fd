package property

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	bucketmodels "propsearch/internal/bucket/models"
	bucketsvc "propsearch/internal/bucket/service"
	"propsearch/internal/geo"
	dErrors "propsearch/pkg/domain-errors"
	"propsearch/pkg/platform/sentinel"
)

const defaultSearchLimit = 50

// BucketResolver is the slice of the bucket engine the listing paths need.
type BucketResolver interface {
	Assign(ctx context.Context, point orb.Point, rawName string) (*bucketmodels.GeoBucket, error)
	Resolve(ctx context.Context, q bucketsvc.Query) (*bucketsvc.Result, error)
}

// Service orchestrates listing CRUD around bucket assignment and resolution.
type Service struct {
	store   Store
	buckets BucketResolver
	logger  *slog.Logger
}

// NewService creates a listing service.
func NewService(store Store, buckets BucketResolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, buckets: buckets, logger: logger}
}

// Create validates the listing, assigns it to its geo-bucket, and persists it.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Property, error) {
	if err := validateInput(input.Title, input.LocationName, input.Lat, input.Lng, input.Price, input.Bedrooms, input.Bathrooms); err != nil {
		return nil, err
	}

	point := orb.Point{input.Lng, input.Lat}
	bucket, err := s.buckets.Assign(ctx, point, input.LocationName)
	if err != nil {
		return nil, err
	}

	p := &Property{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(input.Title),
		LocationName: input.LocationName,
		Location:     point,
		BucketCellID: bucket.CellID,
		Price:        input.Price,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, storeFailure("create property", err)
	}

	s.logger.InfoContext(ctx, "property created",
		"property_id", p.ID, "cell_id", p.BucketCellID)
	return p, nil
}

// Get returns one listing by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Property, error) {
	p, err := s.store.Get(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "property not found")
	}
	if err != nil {
		return nil, storeFailure("load property", err)
	}
	return p, nil
}

// List returns the newest listings across all buckets.
func (s *Service) List(ctx context.Context, limit int) ([]*Property, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	properties, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, storeFailure("list properties", err)
	}
	return properties, nil
}

// Update replaces the mutable fields. A changed coordinate or location name
// is a fresh assignment: the listing moves to the bucket of its new point.
// The old bucket keeps its count; buckets only ever grow.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Property, error) {
	if err := validateInput(input.Title, input.LocationName, input.Lat, input.Lng, input.Price, input.Bedrooms, input.Bathrooms); err != nil {
		return nil, err
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	point := orb.Point{input.Lng, input.Lat}
	if point != p.Location || input.LocationName != p.LocationName {
		bucket, err := s.buckets.Assign(ctx, point, input.LocationName)
		if err != nil {
			return nil, err
		}
		p.BucketCellID = bucket.CellID
	}

	p.Title = strings.TrimSpace(input.Title)
	p.LocationName = input.LocationName
	p.Location = point
	p.Price = input.Price
	p.Bedrooms = input.Bedrooms
	p.Bathrooms = input.Bathrooms

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "property not found")
		}
		return nil, storeFailure("update property", err)
	}
	return p, nil
}

// Delete removes a listing. Bucket counts are monotonic and stay untouched.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "property not found")
	}
	if err != nil {
		return storeFailure("delete property", err)
	}
	return nil
}

// Search resolves the location query into buckets, then returns the listings
// those buckets hold. Zero matched buckets is an empty result.
func (s *Service) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	query := bucketsvc.Query{RawName: q.LocationName}
	if q.Lat != nil && q.Lng != nil {
		query.Point = &orb.Point{*q.Lng, *q.Lat}
	}

	resolved, err := s.buckets.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		Properties:     []*Property{},
		MatchedBuckets: []string{},
		TerminalLayer:  string(resolved.TerminalLayer),
	}
	for _, bucket := range resolved.Buckets {
		result.MatchedBuckets = append(result.MatchedBuckets, bucket.CellID)
	}
	if len(result.MatchedBuckets) == 0 {
		return result, nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	properties, err := s.store.ListByBuckets(ctx, result.MatchedBuckets, limit)
	if err != nil {
		return nil, storeFailure("list properties", err)
	}
	if properties != nil {
		result.Properties = properties
	}
	return result, nil
}

func validateInput(title, locationName string, lat, lng, price float64, bedrooms, bathrooms int) error {
	if strings.TrimSpace(title) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "title is required")
	}
	if strings.TrimSpace(locationName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "location_name is required")
	}
	if err := geo.ValidateCoordinate(lat, lng); err != nil {
		return dErrors.Wrap(dErrors.CodeBadRequest, "invalid coordinate", err)
	}
	if price <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "price must be positive")
	}
	if bedrooms < 0 || bathrooms < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "bedrooms and bathrooms must not be negative")
	}
	return nil
}

func storeFailure(op string, err error) error {
	return dErrors.Wrap(dErrors.CodeUnavailable, "property store unavailable",
		fmt.Errorf("%s: %w", op, err))
}
