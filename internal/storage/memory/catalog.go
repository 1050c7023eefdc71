// internal/storage/memory/catalog.go
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Inn-Chain/innchain-contract/internal/catalog"
)

// CatalogStore is an in-memory catalog store.
type CatalogStore struct {
	mu      sync.Mutex
	hotels  map[uuid.UUID]*catalog.Hotel
	classes map[uuid.UUID]*catalog.RoomClass
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		hotels:  make(map[uuid.UUID]*catalog.Hotel),
		classes: make(map[uuid.UUID]*catalog.RoomClass),
	}
}

func (s *CatalogStore) CreateHotel(_ context.Context, h *catalog.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h.CreatedAt = time.Now().UTC()
	h.UpdatedAt = h.CreatedAt
	h.Version = 1
	s.hotels[h.ID] = cloneHotel(h)
	return nil
}

func (s *CatalogStore) GetHotel(_ context.Context, id uuid.UUID) (*catalog.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hotels[id]
	if !ok {
		return nil, fmt.Errorf("hotel %s: %w", id, catalog.ErrNotFound)
	}
	return cloneHotel(h), nil
}

func (s *CatalogStore) UpdateHotel(_ context.Context, h *catalog.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.hotels[h.ID]
	if !ok {
		return fmt.Errorf("hotel %s: %w", h.ID, catalog.ErrNotFound)
	}
	if stored.Version != h.Version {
		return fmt.Errorf("hotel %s: %w", h.ID, catalog.ErrConflict)
	}
	h.Version++
	h.UpdatedAt = time.Now().UTC()
	s.hotels[h.ID] = cloneHotel(h)
	return nil
}

func (s *CatalogStore) ListHotels(_ context.Context) ([]*catalog.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*catalog.Hotel, 0, len(s.hotels))
	for _, h := range s.hotels {
		out = append(out, cloneHotel(h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *CatalogStore) CreateClass(_ context.Context, c *catalog.RoomClass) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	c.Version = 1
	clone := *c
	s.classes[c.ID] = &clone
	return nil
}

func (s *CatalogStore) GetClass(_ context.Context, id uuid.UUID) (*catalog.RoomClass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.classes[id]
	if !ok {
		return nil, fmt.Errorf("room class %s: %w", id, catalog.ErrNotFound)
	}
	clone := *c
	return &clone, nil
}

func (s *CatalogStore) UpdateClass(_ context.Context, c *catalog.RoomClass) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.classes[c.ID]
	if !ok {
		return fmt.Errorf("room class %s: %w", c.ID, catalog.ErrNotFound)
	}
	if stored.Version != c.Version {
		return fmt.Errorf("room class %s: %w", c.ID, catalog.ErrConflict)
	}
	c.Version++
	c.UpdatedAt = time.Now().UTC()
	clone := *c
	s.classes[c.ID] = &clone
	return nil
}

func cloneHotel(h *catalog.Hotel) *catalog.Hotel {
	clone := *h
	clone.OfferedClassIDs = append([]uuid.UUID(nil), h.OfferedClassIDs...)
	return &clone
}
