// internal/catalog/domain.go
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Hotel is a registered property. PayoutIdentity is the sole identity
// authorized to act as "the hotel" for its bookings. OfferedClassIDs links
// the hotel into the global room-class catalog; a class must be linked
// before bookings referencing it under this hotel are accepted.
type Hotel struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	PayoutIdentity  string      `json:"payout_identity"`
	OfferedClassIDs []uuid.UUID `json:"offered_class_ids"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Version         int         `json:"version"`
}

// Offers reports whether the class is linked to the hotel.
func (h *Hotel) Offers(classID uuid.UUID) bool {
	for _, id := range h.OfferedClassIDs {
		if id == classID {
			return true
		}
	}
	return false
}

// RoomClass is a globally catalogued room type priced per night in minor
// units. Price changes never retroactively affect existing bookings; the
// ledger freezes the room cost at creation time.
type RoomClass struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	PricePerNight int64     `json:"price_per_night"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int       `json:"version"`
}

// HotelRegisteredEvent is published when a new hotel is registered.
type HotelRegisteredEvent struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	PayoutIdentity string    `json:"payout_identity"`
}

// RoomClassAddedEvent is published when a new room class enters the catalog.
type RoomClassAddedEvent struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	PricePerNight int64     `json:"price_per_night"`
}

// ClassLinkedEvent is published when a class is linked to a hotel.
type ClassLinkedEvent struct {
	HotelID uuid.UUID `json:"hotel_id"`
	ClassID uuid.UUID `json:"class_id"`
}

// PriceUpdatedEvent is published when a room class is repriced.
type PriceUpdatedEvent struct {
	ID       uuid.UUID `json:"id"`
	NewPrice int64     `json:"new_price"`
}
