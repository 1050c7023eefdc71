// internal/treasury/domain.go
package treasury

import (
	"time"

	"github.com/google/uuid"
)

// Account holds an external balance for one identity. Escrowed funds are
// not part of any account; they live in the shared escrow pool.
type Account struct {
	Identity  string    `json:"identity"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry types recorded in the transfer journal.
const (
	EntryDeposit = "deposit"
	EntryDebit   = "debit"  // account -> escrow
	EntryCredit  = "credit" // escrow -> account
)

// Entry is one completed transfer. Every balance movement leaves exactly
// one entry, so the journal replays to the current balances.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Identity   string    `json:"identity"`
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}
