// internal/ledger/domain.go
package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Settlement states, named by the (roomReleased, depositReleased) flag pair.
const (
	StateActive    = "active"     // (false, false)
	StateCheckedIn = "checked_in" // (true, false)
	StateSettled   = "settled"    // (true, true), terminal
)

// Booking is an escrowed reservation. RoomCost is frozen at creation time;
// later catalog price changes never affect it. The two release flags flip
// false→true exactly once each and never back.
type Booking struct {
	ID              int64     `json:"id"`
	Customer        string    `json:"customer"`
	HotelID         uuid.UUID `json:"hotel_id"`
	ClassID         uuid.UUID `json:"class_id"`
	Nights          int       `json:"nights"`
	RoomCost        int64     `json:"room_cost"`
	DepositAmount   int64     `json:"deposit_amount"`
	RoomReleased    bool      `json:"room_released"`
	DepositReleased bool      `json:"deposit_released"`
	CreatedAt       time.Time `json:"created_at"`
	Version         int       `json:"version"`
}

// State reports the settlement state implied by the release flags.
func (b Booking) State() string {
	switch {
	case b.RoomReleased && b.DepositReleased:
		return StateSettled
	case b.RoomReleased:
		return StateCheckedIn
	default:
		return StateActive
	}
}

// Escrowed is the balance still attributable to the booking.
func (b Booking) Escrowed() int64 {
	var total int64
	if !b.RoomReleased {
		total += b.RoomCost
	}
	if !b.DepositReleased {
		total += b.DepositAmount
	}
	return total
}

// Payout is an instruction to move funds out of escrow. Zero-amount legs are
// never produced; the flag still flips without a transfer call.
type Payout struct {
	Recipient string
	Amount    int64
}

// Event types appended to the booking journal, in call order.
const (
	EventBookingCreated      = "BookingCreated"
	EventRoomPaymentReleased = "RoomPaymentReleased"
	EventDepositRefunded     = "DepositRefunded"
	EventDepositCharged      = "DepositCharged"
	EventFullRefund          = "FullRefund"
)

// BookingCreatedEvent is published when a booking is persisted after the
// upfront total has been collected.
type BookingCreatedEvent struct {
	BookingID     int64     `json:"booking_id"`
	HotelID       uuid.UUID `json:"hotel_id"`
	ClassID       uuid.UUID `json:"class_id"`
	Customer      string    `json:"customer"`
	RoomCost      int64     `json:"room_cost"`
	DepositAmount int64     `json:"deposit_amount"`
}

// RoomPaymentReleasedEvent is published when check-in releases the room leg.
type RoomPaymentReleasedEvent struct {
	BookingID int64 `json:"booking_id"`
	Amount    int64 `json:"amount"`
}

// DepositRefundedEvent is published when the deposit is returned in full.
type DepositRefundedEvent struct {
	BookingID int64 `json:"booking_id"`
	Amount    int64 `json:"amount"`
}

// DepositChargedEvent is published when the deposit is split between hotel
// and customer.
type DepositChargedEvent struct {
	BookingID        int64 `json:"booking_id"`
	AmountToHotel    int64 `json:"amount_to_hotel"`
	AmountToCustomer int64 `json:"amount_to_customer"`
}

// FullRefundEvent is published when a pre-check-in cancellation returns the
// whole escrowed total to the customer.
type FullRefundEvent struct {
	BookingID   int64 `json:"booking_id"`
	TotalAmount int64 `json:"total_amount"`
}
