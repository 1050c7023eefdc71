// internal/ledger/implementation.go
package ledger

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const aggregateType = "booking"

// idGenerator hands out monotonically increasing booking ids.
type idGenerator interface {
	NextID(ctx context.Context) (int64, error)
}

// service implements the Service interface. Every settlement call on the
// same booking is serialized through a per-booking lock, reproducing the
// fully serializing execution environment the state machine assumes.
type service struct {
	store   Store
	idgen   idGenerator
	catalog CatalogGateway
	assets  AssetGateway
	events  EventSink
	policy  Policy
	tracer  trace.Tracer

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewService creates a new booking ledger service instance. owner is the
// arbiter identity with the narrow override rights described by the policy.
func NewService(store Store, idgen idGenerator, catalog CatalogGateway, assets AssetGateway, events EventSink, owner string) Service {
	return &service{
		store:   store,
		idgen:   idgen,
		catalog: catalog,
		assets:  assets,
		events:  events,
		policy:  Policy{Owner: owner},
		tracer:  otel.Tracer("innchain/ledger"),
		locks:   map[int64]*sync.Mutex{},
	}
}

func (s *service) lockBooking(id int64) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// CreateBooking validates the hotel/class linkage, collects the upfront
// total and persists the booking. Collection and creation are atomic: if
// persisting fails after the debit, the debit is compensated.
func (s *service) CreateBooking(ctx context.Context, caller string, hotelID, classID uuid.UUID, nights int, depositAmount int64) (*Booking, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.create_booking",
		trace.WithAttributes(
			attribute.String("hotel.id", hotelID.String()),
			attribute.String("class.id", classID.String()),
			attribute.Int("nights", nights),
		),
	)
	defer span.End()

	if nights <= 0 {
		return nil, fmt.Errorf("nights must be positive: %w", ErrInvalidArgument)
	}
	if depositAmount < 0 {
		return nil, fmt.Errorf("deposit must not be negative: %w", ErrInvalidArgument)
	}

	if _, err := s.catalog.HotelPayout(ctx, hotelID); err != nil {
		return nil, fmt.Errorf("resolve hotel %s: %w", hotelID, err)
	}
	offered, err := s.catalog.IsClassOffered(ctx, hotelID, classID)
	if err != nil {
		return nil, fmt.Errorf("check class linkage: %w", err)
	}
	if !offered {
		return nil, fmt.Errorf("class %s not offered by hotel %s: %w", classID, hotelID, ErrInvalidArgument)
	}
	price, err := s.catalog.PriceOf(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("resolve price of class %s: %w", classID, err)
	}

	if price < 0 {
		return nil, fmt.Errorf("class %s has negative price %d: %w", classID, price, ErrInvalidArgument)
	}
	if price > 0 && int64(nights) > math.MaxInt64/price {
		return nil, fmt.Errorf("room cost %d*%d overflows: %w", price, nights, ErrInvalidArgument)
	}
	roomCost := price * int64(nights)
	if roomCost > math.MaxInt64-depositAmount {
		return nil, fmt.Errorf("booking total %d+%d overflows: %w", roomCost, depositAmount, ErrInvalidArgument)
	}
	total := roomCost + depositAmount
	if total <= 0 {
		return nil, fmt.Errorf("booking total must be positive: %w", ErrInvalidArgument)
	}

	if err := s.assets.DebitFrom(ctx, caller, total); err != nil {
		return nil, fmt.Errorf("collect %d from %s: %w (%v)", total, caller, ErrTransferFailed, err)
	}

	id, err := s.idgen.NextID(ctx)
	if err != nil {
		s.compensateDebit(ctx, caller, total)
		return nil, fmt.Errorf("next booking id: %w", err)
	}

	booking := &Booking{
		ID:            id,
		Customer:      caller,
		HotelID:       hotelID,
		ClassID:       classID,
		Nights:        nights,
		RoomCost:      roomCost,
		DepositAmount: depositAmount,
	}
	if err := s.store.CreateBooking(ctx, booking); err != nil {
		s.compensateDebit(ctx, caller, total)
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	s.emit(ctx, booking.ID, EventBookingCreated, BookingCreatedEvent{
		BookingID:     booking.ID,
		HotelID:       hotelID,
		ClassID:       classID,
		Customer:      caller,
		RoomCost:      roomCost,
		DepositAmount: depositAmount,
	})

	span.SetAttributes(attribute.Int64("booking.id", booking.ID))
	return booking, nil
}

// ConfirmCheckIn releases the room payment to the hotel.
func (s *service) ConfirmCheckIn(ctx context.Context, caller string, bookingID int64) (*Booking, error) {
	return s.settle(ctx, "ledger.check_in", bookingID, func(b Booking, hotelPayout string) (Booking, []Payout, error) {
		return CheckIn(b, s.policy, hotelPayout, caller)
	}, func(b Booking, _ []Payout) (string, any) {
		return EventRoomPaymentReleased, RoomPaymentReleasedEvent{BookingID: b.ID, Amount: b.RoomCost}
	})
}

// RefundDeposit returns the full deposit to the customer.
func (s *service) RefundDeposit(ctx context.Context, caller string, bookingID int64) (*Booking, error) {
	return s.settle(ctx, "ledger.refund_deposit", bookingID, func(b Booking, hotelPayout string) (Booking, []Payout, error) {
		return RefundDeposit(b, s.policy, hotelPayout, caller)
	}, func(b Booking, _ []Payout) (string, any) {
		return EventDepositRefunded, DepositRefundedEvent{BookingID: b.ID, Amount: b.DepositAmount}
	})
}

// ChargeDeposit splits the deposit between hotel and customer.
func (s *service) ChargeDeposit(ctx context.Context, caller string, bookingID int64, amount int64) (*Booking, error) {
	return s.settle(ctx, "ledger.charge_deposit", bookingID, func(b Booking, hotelPayout string) (Booking, []Payout, error) {
		return ChargeDeposit(b, s.policy, hotelPayout, caller, amount)
	}, func(b Booking, _ []Payout) (string, any) {
		return EventDepositCharged, DepositChargedEvent{BookingID: b.ID, AmountToHotel: amount, AmountToCustomer: b.DepositAmount - amount}
	})
}

// FullRefund cancels the booking before check-in.
func (s *service) FullRefund(ctx context.Context, caller string, bookingID int64) (*Booking, error) {
	return s.settle(ctx, "ledger.full_refund", bookingID, func(b Booking, hotelPayout string) (Booking, []Payout, error) {
		return FullRefund(b, s.policy, hotelPayout, caller)
	}, func(b Booking, payouts []Payout) (string, any) {
		var total int64
		for _, p := range payouts {
			total += p.Amount
		}
		return EventFullRefund, FullRefundEvent{BookingID: b.ID, TotalAmount: total}
	})
}

// settle runs one settlement transition: load, apply the pure transition,
// execute the payouts, persist the flags, emit the event. Any failure
// unwinds the legs already executed so no observable state has a flipped
// flag without matching funds moved.
func (s *service) settle(ctx context.Context, span string, bookingID int64, apply func(Booking, string) (Booking, []Payout, error), event func(Booking, []Payout) (string, any)) (*Booking, error) {
	ctx, sp := s.tracer.Start(ctx, span, trace.WithAttributes(attribute.Int64("booking.id", bookingID)))
	defer sp.End()

	unlock := s.lockBooking(bookingID)
	defer unlock()

	current, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	hotelPayout, err := s.catalog.HotelPayout(ctx, current.HotelID)
	if err != nil {
		return nil, fmt.Errorf("resolve hotel payout: %w", err)
	}

	updated, payouts, err := apply(*current, hotelPayout)
	if err != nil {
		return nil, err
	}

	executed, err := s.executePayouts(ctx, payouts)
	if err != nil {
		s.compensatePayouts(ctx, executed)
		return nil, err
	}

	if err := s.store.UpdateFlags(ctx, &updated); err != nil {
		s.compensatePayouts(ctx, executed)
		return nil, err
	}

	eventType, payload := event(updated, payouts)
	s.emit(ctx, updated.ID, eventType, payload)

	return &updated, nil
}

func (s *service) executePayouts(ctx context.Context, payouts []Payout) ([]Payout, error) {
	var executed []Payout
	for _, p := range payouts {
		if err := s.assets.Credit(ctx, p.Recipient, p.Amount); err != nil {
			return executed, fmt.Errorf("pay %d to %s: %w (%v)", p.Amount, p.Recipient, ErrTransferFailed, err)
		}
		executed = append(executed, p)
	}
	return executed, nil
}

// compensatePayouts pulls already-credited legs back into escrow after a
// later step failed. Failures here are logged, never swallowed.
func (s *service) compensatePayouts(ctx context.Context, executed []Payout) {
	for _, p := range executed {
		if err := s.assets.DebitFrom(ctx, p.Recipient, p.Amount); err != nil {
			log.Printf("ledger: failed to compensate payout of %d to %s: %v", p.Amount, p.Recipient, err)
		}
	}
}

func (s *service) compensateDebit(ctx context.Context, payer string, amount int64) {
	log.Printf("ledger: compensating failed booking creation, returning %d to %s", amount, payer)
	if err := s.assets.Credit(ctx, payer, amount); err != nil {
		log.Printf("ledger: failed to compensate debit of %d from %s: %v", amount, payer, err)
	}
}

// emit appends an observable event. The journal is an external observer
// feed; an append failure after funds have moved is logged rather than
// unwound.
func (s *service) emit(ctx context.Context, bookingID int64, eventType string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, strconv.FormatInt(bookingID, 10), aggregateType, eventType, payload); err != nil {
		log.Printf("ledger: failed to append %s event for booking %d: %v", eventType, bookingID, err)
	}
}

// GetBooking returns a snapshot of the booking.
func (s *service) GetBooking(ctx context.Context, bookingID int64) (*Booking, error) {
	return s.store.GetBooking(ctx, bookingID)
}

// CustomerBookings lists the caller's bookings in creation order.
func (s *service) CustomerBookings(ctx context.Context, caller string) ([]*Booking, error) {
	return s.store.ListByCustomer(ctx, caller)
}
