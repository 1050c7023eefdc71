// internal/ledger/store.go
package ledger

import "context"

// Store persists bookings. UpdateFlags must apply an optimistic version
// check so the second of two competing settlements is rejected; combined
// with the per-booking serialization in the service this yields exactly-once
// payout per flag.
type Store interface {
	CreateBooking(ctx context.Context, b *Booking) error
	GetBooking(ctx context.Context, id int64) (*Booking, error)
	// UpdateFlags persists the release flags of b if the stored version
	// still equals b.Version, then increments the version. Returns
	// ErrConflict on a version mismatch, ErrNotFound if the booking does
	// not exist.
	UpdateFlags(ctx context.Context, b *Booking) error
	ListByCustomer(ctx context.Context, customer string) ([]*Booking, error)
	Count(ctx context.Context) (int64, error)
}
