// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

// service implements the Service interface.
type service struct {
	store  Store
	events EventSink
}

// NewService creates a new catalog service instance.
func NewService(store Store, events EventSink) Service {
	return &service{store: store, events: events}
}

// RegisterHotel creates a new hotel with no linked classes.
func (s *service) RegisterHotel(ctx context.Context, name, payoutIdentity string) (*Hotel, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("hotel name must not be empty: %w", ErrInvalidArgument)
	}
	if strings.TrimSpace(payoutIdentity) == "" {
		return nil, fmt.Errorf("payout identity must not be empty: %w", ErrInvalidArgument)
	}

	hotel := &Hotel{
		ID:             uuid.New(),
		Name:           name,
		PayoutIdentity: payoutIdentity,
	}
	if err := s.store.CreateHotel(ctx, hotel); err != nil {
		return nil, fmt.Errorf("persist hotel: %w", err)
	}

	s.emit(ctx, hotel.ID.String(), "hotel", "HotelRegistered", HotelRegisteredEvent{
		ID:             hotel.ID,
		Name:           name,
		PayoutIdentity: payoutIdentity,
	})
	return hotel, nil
}

// AddRoomClass creates a new room class in the global catalog.
func (s *service) AddRoomClass(ctx context.Context, name string, pricePerNight int64) (*RoomClass, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("class name must not be empty: %w", ErrInvalidArgument)
	}
	if pricePerNight <= 0 {
		return nil, fmt.Errorf("price per night must be positive: %w", ErrInvalidArgument)
	}

	class := &RoomClass{
		ID:            uuid.New(),
		Name:          name,
		PricePerNight: pricePerNight,
	}
	if err := s.store.CreateClass(ctx, class); err != nil {
		return nil, fmt.Errorf("persist room class: %w", err)
	}

	s.emit(ctx, class.ID.String(), "room_class", "RoomClassAdded", RoomClassAddedEvent{
		ID:            class.ID,
		Name:          name,
		PricePerNight: pricePerNight,
	})
	return class, nil
}

// LinkClass makes a room class bookable under a hotel.
func (s *service) LinkClass(ctx context.Context, hotelID, classID uuid.UUID) error {
	hotel, err := s.store.GetHotel(ctx, hotelID)
	if err != nil {
		return err
	}
	if _, err := s.store.GetClass(ctx, classID); err != nil {
		return err
	}
	if hotel.Offers(classID) {
		return fmt.Errorf("hotel %s: %w", hotelID, ErrAlreadyLinked)
	}

	hotel.OfferedClassIDs = append(hotel.OfferedClassIDs, classID)
	if err := s.store.UpdateHotel(ctx, hotel); err != nil {
		return fmt.Errorf("persist linkage: %w", err)
	}

	s.emit(ctx, hotelID.String(), "hotel", "ClassLinked", ClassLinkedEvent{HotelID: hotelID, ClassID: classID})
	return nil
}

// UpdatePrice reprices a room class. Existing bookings are unaffected; the
// ledger froze their room cost at creation.
func (s *service) UpdatePrice(ctx context.Context, classID uuid.UUID, pricePerNight int64) error {
	if pricePerNight <= 0 {
		return fmt.Errorf("price per night must be positive: %w", ErrInvalidArgument)
	}
	class, err := s.store.GetClass(ctx, classID)
	if err != nil {
		return err
	}

	class.PricePerNight = pricePerNight
	if err := s.store.UpdateClass(ctx, class); err != nil {
		return fmt.Errorf("persist price update: %w", err)
	}

	s.emit(ctx, classID.String(), "room_class", "PriceUpdated", PriceUpdatedEvent{ID: classID, NewPrice: pricePerNight})
	return nil
}

// GetHotel retrieves a hotel by id.
func (s *service) GetHotel(ctx context.Context, id uuid.UUID) (*Hotel, error) {
	return s.store.GetHotel(ctx, id)
}

// GetClass retrieves a room class by id.
func (s *service) GetClass(ctx context.Context, id uuid.UUID) (*RoomClass, error) {
	return s.store.GetClass(ctx, id)
}

// ListHotels returns all registered hotels.
func (s *service) ListHotels(ctx context.Context) ([]*Hotel, error) {
	return s.store.ListHotels(ctx)
}

func (s *service) emit(ctx context.Context, aggregateID, aggregateType, eventType string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, aggregateID, aggregateType, eventType, payload); err != nil {
		log.Printf("catalog: failed to append %s event for %s: %v", eventType, aggregateID, err)
	}
}
