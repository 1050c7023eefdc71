// internal/ledger/service.go
package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the booking ledger service.
type Service interface {
	CreateBooking(ctx context.Context, caller string, hotelID, classID uuid.UUID, nights int, depositAmount int64) (*Booking, error)
	ConfirmCheckIn(ctx context.Context, caller string, bookingID int64) (*Booking, error)
	RefundDeposit(ctx context.Context, caller string, bookingID int64) (*Booking, error)
	ChargeDeposit(ctx context.Context, caller string, bookingID int64, amount int64) (*Booking, error)
	FullRefund(ctx context.Context, caller string, bookingID int64) (*Booking, error)
	GetBooking(ctx context.Context, bookingID int64) (*Booking, error)
	CustomerBookings(ctx context.Context, caller string) ([]*Booking, error)
}

// CatalogGateway is the read-only slice of the catalog the ledger depends on
// at booking time.
type CatalogGateway interface {
	// HotelPayout resolves the payout identity of a registered hotel.
	// Returns ErrNotFound if the hotel is not registered.
	HotelPayout(ctx context.Context, hotelID uuid.UUID) (string, error)
	IsClassOffered(ctx context.Context, hotelID, classID uuid.UUID) (bool, error)
	// PriceOf returns the price per night of a room class. Returns
	// ErrNotFound if the class does not exist.
	PriceOf(ctx context.Context, classID uuid.UUID) (int64, error)
}

// AssetGateway wraps the external fungible-asset ledger. Each call either
// fully succeeds or fails with no partial effect.
type AssetGateway interface {
	DebitFrom(ctx context.Context, payer string, amount int64) error
	Credit(ctx context.Context, recipient string, amount int64) error
}

// EventSink receives the observable settlement events in call order.
type EventSink interface {
	Append(ctx context.Context, aggregateID, aggregateType, eventType string, payload any) error
}
