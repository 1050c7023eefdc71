// internal/treasury/service.go
package treasury

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrInvalidArgument    = errors.New("invalid transfer argument")
	ErrInsufficientFunds  = errors.New("insufficient available balance")
	ErrInsufficientEscrow = errors.New("insufficient escrow balance")
	ErrRateLimited        = errors.New("account registration rate limit exceeded")
)

// Service is the fungible-asset gateway. DebitFrom and Credit each fully
// succeed or fail with no partial effect; the booking ledger builds its
// atomicity guarantees on top of that contract.
type Service interface {
	OpenAccount(ctx context.Context, identity string) (*Account, error)
	Deposit(ctx context.Context, identity string, amount int64) (*Account, error)
	// DebitFrom moves amount from the payer's balance into escrow.
	DebitFrom(ctx context.Context, payer string, amount int64) error
	// Credit moves amount out of escrow to the recipient, opening the
	// recipient's account if needed.
	Credit(ctx context.Context, recipient string, amount int64) error
	BalanceOf(ctx context.Context, identity string) (int64, error)
	EscrowBalance(ctx context.Context) (int64, error)
	Entries(ctx context.Context, identity string) ([]Entry, error)
}
