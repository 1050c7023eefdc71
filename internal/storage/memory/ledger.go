// internal/storage/memory/ledger.go
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Inn-Chain/innchain-contract/internal/ledger"
)

// LedgerStore is an in-memory booking store. A single mutex serializes all
// mutations, standing in for the serializable transactions the Postgres
// store relies on.
type LedgerStore struct {
	mu       sync.Mutex
	bookings map[int64]*ledger.Booking
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{bookings: make(map[int64]*ledger.Booking)}
}

func (s *LedgerStore) CreateBooking(_ context.Context, b *ledger.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[b.ID]; exists {
		return fmt.Errorf("booking %d already exists: %w", b.ID, ledger.ErrConflict)
	}
	b.CreatedAt = time.Now().UTC()
	b.Version = 1
	clone := *b
	s.bookings[b.ID] = &clone
	return nil
}

func (s *LedgerStore) GetBooking(_ context.Context, id int64) (*ledger.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", id, ledger.ErrNotFound)
	}
	clone := *b
	return &clone, nil
}

func (s *LedgerStore) UpdateFlags(_ context.Context, b *ledger.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.bookings[b.ID]
	if !ok {
		return fmt.Errorf("booking %d: %w", b.ID, ledger.ErrNotFound)
	}
	if stored.Version != b.Version {
		return fmt.Errorf("booking %d version %d != %d: %w", b.ID, stored.Version, b.Version, ledger.ErrConflict)
	}
	stored.RoomReleased = b.RoomReleased
	stored.DepositReleased = b.DepositReleased
	stored.Version++
	b.Version = stored.Version
	return nil
}

func (s *LedgerStore) ListByCustomer(_ context.Context, customer string) ([]*ledger.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*ledger.Booking
	for _, b := range s.bookings {
		if b.Customer == customer {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *LedgerStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.bookings)), nil
}
