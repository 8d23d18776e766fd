// Package service implements the bucket resolution engine. Assign places a
// property's point and raw location name into its canonical geo-bucket,
// creating the bucket lazily; Resolve turns a free-text query into the ordered
// set of buckets that plausibly match it via layered spatial and fuzzy
// fallback. Both operations are stateless between calls, so any number may run
// concurrently against the same store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"propsearch/internal/bucket/models"
	"propsearch/internal/bucket/store"
	"propsearch/internal/geo"
	"propsearch/internal/location/matcher"
	"propsearch/internal/location/normalizer"
	"propsearch/internal/platform/metrics"
	domainerrors "propsearch/pkg/domain-errors"
	"propsearch/pkg/platform/sentinel"
)

var tracer = otel.Tracer("propsearch.bucket")

// ErrUnresolvableName is returned when a location name normalizes to nothing.
// Assign fails with it before touching the store, so no partial state is left.
var ErrUnresolvableName = domainerrors.New(domainerrors.CodeUnprocessable,
	"location name is empty after normalization")

// Config tunes the engine without redeploying it.
type Config struct {
	// MinResultsBeforeExpand is the result count below which Resolve keeps
	// falling through to the next layer.
	MinResultsBeforeExpand int
	// VariantCap bounds a bucket's name variant set.
	VariantCap int
}

const (
	defaultMinResultsBeforeExpand = 5
	defaultVariantCap             = 20
)

// EventPublisher receives domain events after successful writes.
// Implementations must not block the request path. May be nil.
type EventPublisher interface {
	BucketCreated(ctx context.Context, bucket *models.GeoBucket)
	PropertyAssigned(ctx context.Context, cellID, rawName string)
}

// BucketCache is an optional read-through cache for the Locate path. May be nil.
type BucketCache interface {
	Get(ctx context.Context, cellID string) (*models.GeoBucket, bool)
	Set(ctx context.Context, cellID string, bucket *models.GeoBucket)
}

// Option configures optional collaborators on the Service.
type Option func(*Service)

// WithMetrics wires Prometheus counters and histograms.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithEvents wires an event publisher for bucket/assignment events.
func WithEvents(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

// WithCache wires a bucket cache for the Locate path.
func WithCache(c BucketCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// Service is the bucket resolution engine.
type Service struct {
	grid    *geo.Grid
	names   *normalizer.Normalizer
	match   *matcher.Matcher
	store   store.Store
	cfg     Config
	metrics *metrics.Metrics
	events  EventPublisher
	cache   BucketCache
	logger  *slog.Logger
}

// New builds the engine. Grid resolution, normalization tables and matcher
// thresholds are all fixed at construction so concurrent calls share nothing
// mutable.
func New(grid *geo.Grid, names *normalizer.Normalizer, match *matcher.Matcher, st store.Store, cfg Config, opts ...Option) *Service {
	if cfg.MinResultsBeforeExpand <= 0 {
		cfg.MinResultsBeforeExpand = defaultMinResultsBeforeExpand
	}
	if cfg.VariantCap <= 0 {
		cfg.VariantCap = defaultVariantCap
	}
	s := &Service{
		grid:   grid,
		names:  names,
		match:  match,
		store:  st,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assign places (point, rawName) into its canonical bucket and returns the
// bucket after the write. The bucket is created on first assignment to its
// cell; a lost creation race falls back to the existing-bucket path.
func (s *Service) Assign(ctx context.Context, point orb.Point, rawName string) (*models.GeoBucket, error) {
	ctx, span := tracer.Start(ctx, "bucket.assign")
	defer span.End()

	cellID, err := s.grid.CellOf(point.Lat(), point.Lon())
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeBadRequest, "invalid coordinate", err)
	}
	name := s.names.Normalize(rawName)
	if name == "" {
		return nil, ErrUnresolvableName
	}
	span.SetAttributes(attribute.String("cell_id", cellID))

	bucket, err := s.store.GetByCell(ctx, cellID)
	created := false
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		bucket, created, err = s.createBucket(ctx, cellID, name)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, storeFailure("load bucket", err)
	}

	if !created {
		if err := s.store.IncrementAndAddVariant(ctx, cellID, name, s.cfg.VariantCap); err != nil {
			return nil, storeFailure("increment bucket", err)
		}
		bucket, err = s.store.GetByCell(ctx, cellID)
		if err != nil {
			return nil, storeFailure("reload bucket", err)
		}
	}

	entry := &models.LocationIndexEntry{
		OriginalName:   rawName,
		NormalizedName: name,
		BucketCellID:   cellID,
		PhoneticCode:   matcher.PhoneticCode(name),
		Trigrams:       normalizer.Trigrams(name),
	}
	if err := s.store.UpsertIndexEntry(ctx, entry); err != nil {
		return nil, storeFailure("index location name", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementAssigns()
	}
	if s.events != nil {
		s.events.PropertyAssigned(ctx, cellID, rawName)
	}
	return bucket, nil
}

// createBucket persists a fresh bucket for the cell with create-if-absent
// semantics. The bool reports whether this call won the creation race; a loser
// receives the winner's row and must take the increment path.
func (s *Service) createBucket(ctx context.Context, cellID, name string) (*models.GeoBucket, bool, error) {
	centroid, err := s.grid.CellCenter(cellID)
	if err != nil {
		return nil, false, domainerrors.Wrap(domainerrors.CodeInternal, "compute cell centroid", err)
	}
	winner, created, err := s.store.CreateIfAbsent(ctx, &models.GeoBucket{
		CellID:        cellID,
		Centroid:      centroid,
		CanonicalName: name,
		NameVariants:  []string{name},
		PropertyCount: 1,
	})
	if err != nil {
		return nil, false, storeFailure("create bucket", err)
	}
	if created {
		s.logger.InfoContext(ctx, "geo bucket created",
			"cell_id", cellID, "canonical_name", name)
		if s.metrics != nil {
			s.metrics.IncrementBucketsCreated()
		}
		if s.events != nil {
			s.events.BucketCreated(ctx, winner)
		}
	}
	return winner, created, nil
}

// GetBucket returns one bucket by cell identifier.
func (s *Service) GetBucket(ctx context.Context, cellID string) (*models.GeoBucket, error) {
	bucket, err := s.store.GetByCell(ctx, cellID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, domainerrors.New(domainerrors.CodeNotFound, "bucket not found")
	}
	if err != nil {
		return nil, storeFailure("load bucket", err)
	}
	return bucket, nil
}

// Locate is the read-mostly bucket lookup used by map views; it serves from
// the cache when one is wired.
func (s *Service) Locate(ctx context.Context, cellID string) (*models.GeoBucket, error) {
	if s.cache != nil {
		if bucket, ok := s.cache.Get(ctx, cellID); ok {
			return bucket, nil
		}
	}
	bucket, err := s.GetBucket(ctx, cellID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, cellID, bucket)
	}
	return bucket, nil
}

// LocateByName geocodes an exact location name to its bucket: the name is
// normalized and must equal a stored index entry exactly. Fuzzy lookups belong
// to Resolve; this is the cheap path for map pins.
func (s *Service) LocateByName(ctx context.Context, rawName string) (*models.GeoBucket, error) {
	name := s.names.Normalize(rawName)
	if name == "" {
		return nil, ErrUnresolvableName
	}

	// An identical name always appears among its own trigram/phonetic
	// candidates, so the index scan is a safe superset to filter.
	entries, err := s.store.SearchIndex(ctx, name, matcher.PhoneticCode(name))
	if err != nil {
		return nil, storeFailure("search location index", err)
	}
	for _, entry := range entries {
		if entry.NormalizedName == name {
			return s.Locate(ctx, entry.BucketCellID)
		}
	}
	return nil, domainerrors.New(domainerrors.CodeNotFound, "no bucket for location name")
}

// ListBuckets returns all buckets, busiest first.
func (s *Service) ListBuckets(ctx context.Context) ([]*models.GeoBucket, error) {
	buckets, err := s.store.ListBuckets(ctx)
	if err != nil {
		return nil, storeFailure("list buckets", err)
	}
	return buckets, nil
}

// Stats aggregates bucket occupancy; details are loaded only on request.
func (s *Service) Stats(ctx context.Context, includeDetails bool) (*models.BucketStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, storeFailure("aggregate stats", err)
	}
	if includeDetails {
		stats.Details, err = s.store.ListBuckets(ctx)
		if err != nil {
			return nil, storeFailure("list buckets", err)
		}
	}
	return stats, nil
}

// storeFailure classifies any unexpected store error as unavailable; the
// engine never retries, callers own the retry policy.
func storeFailure(op string, err error) error {
	return domainerrors.Wrap(domainerrors.CodeUnavailable, "bucket store unavailable",
		fmt.Errorf("%s: %w", op, err))
}
