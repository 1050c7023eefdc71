// internal/ledger/policy.go
package ledger

// Transition identifies one of the four settlement operations.
type Transition int

const (
	TransitionCheckIn Transition = iota
	TransitionRefundDeposit
	TransitionChargeDeposit
	TransitionFullRefund
)

func (t Transition) String() string {
	switch t {
	case TransitionCheckIn:
		return "check_in"
	case TransitionRefundDeposit:
		return "refund_deposit"
	case TransitionChargeDeposit:
		return "charge_deposit"
	case TransitionFullRefund:
		return "full_refund"
	default:
		return "unknown"
	}
}

// Policy decides which caller may trigger which transition. Identities are
// opaque tokens supplied by the hosting layer; the policy only compares them.
//
// The lattice is deliberately asymmetric: the owner may force funds toward
// the customer (refund, full refund) but never toward the hotel (charge).
type Policy struct {
	Owner string
}

// Authorize returns ErrUnauthorized unless the caller holds a role permitted
// for the transition on this booking. hotelPayout is the payout identity of
// the booking's hotel, resolved from the catalog.
func (p Policy) Authorize(t Transition, b Booking, hotelPayout, caller string) error {
	switch t {
	case TransitionCheckIn, TransitionChargeDeposit:
		if caller == hotelPayout {
			return nil
		}
	case TransitionRefundDeposit:
		if caller == hotelPayout || caller == p.Owner {
			return nil
		}
	case TransitionFullRefund:
		if caller == b.Customer || caller == hotelPayout || caller == p.Owner {
			return nil
		}
	}
	return ErrUnauthorized
}
