package property

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"propsearch/pkg/platform/sentinel"
)

// MemoryStore keeps listings in a map guarded by one RWMutex. It backs unit
// tests and the storeless dev mode.
type MemoryStore struct {
	mu         sync.RWMutex
	properties map[uuid.UUID]*Property
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory listing store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{properties: make(map[uuid.UUID]*Property)}
}

func (s *MemoryStore) Create(ctx context.Context, p *Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.properties[p.ID]; exists {
		return sentinel.ErrConflict
	}
	stored := *p
	now := time.Now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.properties[p.ID] = &stored
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *MemoryStore) Update(ctx context.Context, p *Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.properties[p.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	stored := *p
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now()
	s.properties[p.ID] = &stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.properties, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Property, 0, len(s.properties))
	for _, p := range s.properties {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) ListByBuckets(ctx context.Context, cellIDs []string, limit int) ([]*Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(cellIDs))
	for _, id := range cellIDs {
		wanted[id] = struct{}{}
	}

	var out []*Property
	for _, p := range s.properties {
		if _, ok := wanted[p.BucketCellID]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
