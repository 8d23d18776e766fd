package property

import (
	"context"

	"github.com/google/uuid"
)

// Store is the listing persistence contract. Infrastructure failures are
// reported as wrapped sentinel.ErrUnavailable; missing rows as
// sentinel.ErrNotFound.
type Store interface {
	Create(ctx context.Context, p *Property) error
	Get(ctx context.Context, id uuid.UUID) (*Property, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns listings newest first, capped at limit.
	List(ctx context.Context, limit int) ([]*Property, error)

	// ListByBuckets returns listings in any of the given buckets, newest
	// first, capped at limit. Bucket order does not affect listing order.
	ListByBuckets(ctx context.Context, cellIDs []string, limit int) ([]*Property, error)
}
