package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/paulmach/orb"
	"go.opentelemetry.io/otel/attribute"

	"propsearch/internal/bucket/models"
	"propsearch/internal/location/matcher"
	domainerrors "propsearch/pkg/domain-errors"
	"propsearch/pkg/platform/sentinel"
)

// Layer identifies one resolution strategy. The engine reports the deepest
// layer that ran so callers and metrics can see how far a query escalated.
type Layer string

const (
	// LayerExactCell includes the bucket at the query point's own cell.
	LayerExactCell Layer = "exact_cell"
	// LayerNeighborName includes ring-1 buckets whose normalized names
	// exactly equal the normalized query.
	LayerNeighborName Layer = "neighbor_name"
	// LayerFuzzyName scans the location index grid-unconstrained and keeps
	// fuzzy-matching entries.
	LayerFuzzyName Layer = "fuzzy_name"
	// LayerExpandedSpatial widens to ring-2 with the fuzzy name rule.
	LayerExpandedSpatial Layer = "expanded_spatial"

	layerNone Layer = "none"
)

// Query is a resolve request. Point is optional; without it the spatial
// layers are skipped and resolution is purely name-driven.
type Query struct {
	RawName string
	Point   *orb.Point
}

// Result is the ordered, deduplicated outcome of one resolve call.
type Result struct {
	Buckets       []*models.GeoBucket
	TerminalLayer Layer
}

// strategy pairs a layer tag with its lookup and an applicability guard, so
// the orchestrator stays a flat loop instead of nested conditionals.
type strategy struct {
	layer      Layer
	applicable func(*resolveContext) bool
	run        func(context.Context, *resolveContext) ([]*models.GeoBucket, error)
}

// resolveContext carries the precomputed query facets shared by all layers.
type resolveContext struct {
	normalized string
	cellID     string // empty when the query had no point
}

// Resolve runs the layered fallback: exact cell, then ring-1 exact-name, then
// grid-unconstrained fuzzy, then ring-2 fuzzy. Layers union into one
// deduplicated, first-seen-ordered set; the walk stops as soon as the set
// reaches MinResultsBeforeExpand. Zero matches is an empty result, not an
// error.
func (s *Service) Resolve(ctx context.Context, q Query) (*Result, error) {
	ctx, span := tracer.Start(ctx, "bucket.resolve")
	defer span.End()
	start := time.Now()

	rc := &resolveContext{normalized: s.names.Normalize(q.RawName)}
	if q.Point != nil {
		cellID, err := s.grid.CellOf(q.Point.Lat(), q.Point.Lon())
		if err != nil {
			return nil, domainerrors.Wrap(domainerrors.CodeBadRequest, "invalid coordinate", err)
		}
		rc.cellID = cellID
	}

	strategies := []strategy{
		{LayerExactCell, hasCell, s.exactCell},
		{LayerNeighborName, hasCellAndName, s.neighborName},
		{LayerFuzzyName, hasName, s.fuzzyName},
		{LayerExpandedSpatial, hasCellAndName, s.expandedSpatial},
	}

	result := &Result{TerminalLayer: layerNone}
	seen := make(map[string]struct{})
	for _, st := range strategies {
		if !st.applicable(rc) {
			continue
		}
		found, err := st.run(ctx, rc)
		if err != nil {
			return nil, err
		}
		result.TerminalLayer = st.layer
		for _, bucket := range found {
			if _, dup := seen[bucket.CellID]; dup {
				continue
			}
			seen[bucket.CellID] = struct{}{}
			result.Buckets = append(result.Buckets, bucket)
		}
		if len(result.Buckets) >= s.cfg.MinResultsBeforeExpand {
			break
		}
	}

	span.SetAttributes(
		attribute.String("terminal_layer", string(result.TerminalLayer)),
		attribute.Int("result_count", len(result.Buckets)),
	)
	if s.metrics != nil {
		s.metrics.ObserveResolve(string(result.TerminalLayer), time.Since(start).Seconds())
	}
	return result, nil
}

func hasCell(rc *resolveContext) bool { return rc.cellID != "" }

func hasName(rc *resolveContext) bool { return rc.normalized != "" }

func hasCellAndName(rc *resolveContext) bool { return hasCell(rc) && hasName(rc) }

// exactCell returns the bucket at the query point's own cell, if one exists.
func (s *Service) exactCell(ctx context.Context, rc *resolveContext) ([]*models.GeoBucket, error) {
	bucket, err := s.store.GetByCell(ctx, rc.cellID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeFailure("exact cell lookup", err)
	}
	return []*models.GeoBucket{bucket}, nil
}

// neighborName returns ring-1 buckets whose canonical name or any variant
// equals the normalized query exactly.
func (s *Service) neighborName(ctx context.Context, rc *resolveContext) ([]*models.GeoBucket, error) {
	return s.ringByName(ctx, rc, 1, nameEquals)
}

// expandedSpatial widens to ring-2 and accepts any fuzzy name match.
func (s *Service) expandedSpatial(ctx context.Context, rc *resolveContext) ([]*models.GeoBucket, error) {
	return s.ringByName(ctx, rc, 2, s.nameMatches)
}

func (s *Service) ringByName(ctx context.Context, rc *resolveContext, k int, accept func(*models.GeoBucket, string) bool) ([]*models.GeoBucket, error) {
	ring, err := s.grid.RingOf(rc.cellID, k)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeInternal, "enumerate cell ring", err)
	}
	candidates, err := s.store.GetByCells(ctx, ring)
	if err != nil {
		return nil, storeFailure("load ring buckets", err)
	}
	var out []*models.GeoBucket
	for _, bucket := range candidates {
		if accept(bucket, rc.normalized) {
			out = append(out, bucket)
		}
	}
	return out, nil
}

// fuzzyName scans the location index for candidates sharing trigrams or a
// phonetic code with the query, applies the real match decision, and loads
// the owning buckets in first-seen order.
func (s *Service) fuzzyName(ctx context.Context, rc *resolveContext) ([]*models.GeoBucket, error) {
	entries, err := s.store.SearchIndex(ctx, rc.normalized, matcher.PhoneticCode(rc.normalized))
	if err != nil {
		return nil, storeFailure("search location index", err)
	}

	var cellIDs []string
	seen := make(map[string]struct{})
	for _, entry := range entries {
		if !s.match.Match(rc.normalized, entry.NormalizedName) {
			continue
		}
		if _, dup := seen[entry.BucketCellID]; dup {
			continue
		}
		seen[entry.BucketCellID] = struct{}{}
		cellIDs = append(cellIDs, entry.BucketCellID)
	}
	if len(cellIDs) == 0 {
		return nil, nil
	}

	buckets, err := s.store.GetByCells(ctx, cellIDs)
	if err != nil {
		return nil, storeFailure("load matched buckets", err)
	}
	return buckets, nil
}

// nameEquals is the strict layer-2 rule: exact equality against the canonical
// name or any stored variant.
func nameEquals(b *models.GeoBucket, name string) bool {
	return b.CanonicalName == name || slices.Contains(b.NameVariants, name)
}

// nameMatches is the broadened layer-4 rule: any fuzzy match against the
// canonical name or a variant.
func (s *Service) nameMatches(b *models.GeoBucket, name string) bool {
	if s.match.Match(name, b.CanonicalName) {
		return true
	}
	for _, variant := range b.NameVariants {
		if s.match.Match(name, variant) {
			return true
		}
	}
	return false
}
