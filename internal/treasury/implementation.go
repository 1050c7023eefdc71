// internal/treasury/implementation.go
package treasury

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// service implements the Service interface with in-process balances. A
// single mutex makes every transfer all-or-nothing, which is exactly the
// contract the booking ledger depends on.
type service struct {
	mu          sync.Mutex
	accounts    map[string]*Account
	escrow      int64
	entries     []Entry
	rateLimiter *rate.Limiter
}

// NewService creates a new treasury instance.
func NewService() Service {
	return &service{
		accounts:    make(map[string]*Account),
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 20),
	}
}

// OpenAccount registers a zero-balance account for the identity.
func (s *service) OpenAccount(_ context.Context, identity string) (*Account, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, fmt.Errorf("identity must not be empty: %w", ErrInvalidArgument)
	}
	if !s.rateLimiter.Allow() {
		return nil, ErrRateLimited
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if acct, exists := s.accounts[identity]; exists {
		clone := *acct
		return &clone, nil
	}
	acct := &Account{Identity: identity, CreatedAt: time.Now().UTC()}
	s.accounts[identity] = acct
	clone := *acct
	return &clone, nil
}

// Deposit tops up the identity's external balance.
func (s *service) Deposit(_ context.Context, identity string, amount int64) (*Account, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("deposit must be positive: %w", ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[identity]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", identity, ErrNotFound)
	}
	acct.Balance += amount
	s.record(EntryDeposit, identity, amount)
	clone := *acct
	return &clone, nil
}

// DebitFrom moves amount from the payer's balance into escrow. Fails with
// no effect if the available balance is insufficient.
func (s *service) DebitFrom(_ context.Context, payer string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("debit must not be negative: %w", ErrInvalidArgument)
	}
	if amount == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[payer]
	if !ok {
		return fmt.Errorf("account %s: %w", payer, ErrNotFound)
	}
	if acct.Balance < amount {
		return fmt.Errorf("account %s has %d, needs %d: %w", payer, acct.Balance, amount, ErrInsufficientFunds)
	}
	acct.Balance -= amount
	s.escrow += amount
	s.record(EntryDebit, payer, amount)
	return nil
}

// Credit moves amount out of escrow to the recipient.
func (s *service) Credit(_ context.Context, recipient string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("credit must not be negative: %w", ErrInvalidArgument)
	}
	if amount == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.escrow < amount {
		return fmt.Errorf("escrow holds %d, needs %d: %w", s.escrow, amount, ErrInsufficientEscrow)
	}
	acct, ok := s.accounts[recipient]
	if !ok {
		// Payout identities are not required to pre-register.
		acct = &Account{Identity: recipient, CreatedAt: time.Now().UTC()}
		s.accounts[recipient] = acct
	}
	s.escrow -= amount
	acct.Balance += amount
	s.record(EntryCredit, recipient, amount)
	return nil
}

// BalanceOf returns the identity's available balance.
func (s *service) BalanceOf(_ context.Context, identity string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[identity]
	if !ok {
		return 0, fmt.Errorf("account %s: %w", identity, ErrNotFound)
	}
	return acct.Balance, nil
}

// EscrowBalance returns the funds held by the pool across all bookings.
func (s *service) EscrowBalance(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.escrow, nil
}

// Entries lists the identity's transfer journal in occurrence order.
func (s *service) Entries(_ context.Context, identity string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Entry
	for _, e := range s.entries {
		if e.Identity == identity {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *service) record(entryType, identity string, amount int64) {
	s.entries = append(s.entries, Entry{
		ID:         uuid.New(),
		Type:       entryType,
		Identity:   identity,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	})
}
