// internal/ledger/settlement.go
package ledger

import "fmt"

// The settlement transitions are pure: each maps (booking, caller, args) to
// (updated booking, payout instructions) with no side effects, so the money
// invariants are checkable without any environment. Callers execute the
// payouts and persist the updated booking as one atomic step.
//
// Zero-amount payout legs are omitted from the returned slice; the flag
// still flips.

// CheckIn releases the room leg to the hotel. Hotel-only.
func CheckIn(b Booking, p Policy, hotelPayout, caller string) (Booking, []Payout, error) {
	if err := p.Authorize(TransitionCheckIn, b, hotelPayout, caller); err != nil {
		return b, nil, err
	}
	if b.RoomReleased {
		return b, nil, fmt.Errorf("room already released: %w", ErrInvalidState)
	}
	b.RoomReleased = true
	var payouts []Payout
	if b.RoomCost > 0 {
		payouts = append(payouts, Payout{Recipient: hotelPayout, Amount: b.RoomCost})
	}
	return b, payouts, nil
}

// RefundDeposit returns the full deposit to the customer. Hotel or owner;
// independent of check-in status.
func RefundDeposit(b Booking, p Policy, hotelPayout, caller string) (Booking, []Payout, error) {
	if err := p.Authorize(TransitionRefundDeposit, b, hotelPayout, caller); err != nil {
		return b, nil, err
	}
	if b.DepositReleased {
		return b, nil, fmt.Errorf("deposit already released: %w", ErrInvalidState)
	}
	b.DepositReleased = true
	var payouts []Payout
	if b.DepositAmount > 0 {
		payouts = append(payouts, Payout{Recipient: b.Customer, Amount: b.DepositAmount})
	}
	return b, payouts, nil
}

// ChargeDeposit splits the deposit: amount to the hotel, the exact integer
// remainder to the customer. Hotel-only; the owner may never force a charge.
func ChargeDeposit(b Booking, p Policy, hotelPayout, caller string, amount int64) (Booking, []Payout, error) {
	if err := p.Authorize(TransitionChargeDeposit, b, hotelPayout, caller); err != nil {
		return b, nil, err
	}
	if b.DepositReleased {
		return b, nil, fmt.Errorf("deposit already released: %w", ErrInvalidState)
	}
	if amount < 0 || amount > b.DepositAmount {
		return b, nil, fmt.Errorf("charge %d outside [0, %d]: %w", amount, b.DepositAmount, ErrInvalidArgument)
	}
	b.DepositReleased = true
	var payouts []Payout
	if amount > 0 {
		payouts = append(payouts, Payout{Recipient: hotelPayout, Amount: amount})
	}
	if rest := b.DepositAmount - amount; rest > 0 {
		payouts = append(payouts, Payout{Recipient: b.Customer, Amount: rest})
	}
	return b, payouts, nil
}

// FullRefund cancels before check-in, returning the whole escrowed total to
// the customer and flipping both flags in one step. Customer, hotel or
// owner. This is the only place the two flag dimensions are coupled: once
// the room leg is released, cancellation is gone for good.
func FullRefund(b Booking, p Policy, hotelPayout, caller string) (Booking, []Payout, error) {
	if err := p.Authorize(TransitionFullRefund, b, hotelPayout, caller); err != nil {
		return b, nil, err
	}
	if b.RoomReleased {
		return b, nil, fmt.Errorf("already checked in: %w", ErrInvalidState)
	}
	total := b.RoomCost
	if !b.DepositReleased {
		total += b.DepositAmount
	}
	b.RoomReleased = true
	b.DepositReleased = true
	var payouts []Payout
	if total > 0 {
		payouts = append(payouts, Payout{Recipient: b.Customer, Amount: total})
	}
	return b, payouts, nil
}
