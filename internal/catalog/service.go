// internal/catalog/service.go
package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("catalog record not found")
	ErrInvalidArgument = errors.New("invalid catalog argument")
	ErrAlreadyLinked   = errors.New("class already linked to hotel")
	ErrConflict        = errors.New("concurrent catalog update conflict")
)

// Service defines the interface for the catalog service. The booking ledger
// consumes the read side only; the mutation side is ordinary keyed-record
// management with no settlement semantics.
type Service interface {
	RegisterHotel(ctx context.Context, name, payoutIdentity string) (*Hotel, error)
	AddRoomClass(ctx context.Context, name string, pricePerNight int64) (*RoomClass, error)
	LinkClass(ctx context.Context, hotelID, classID uuid.UUID) error
	UpdatePrice(ctx context.Context, classID uuid.UUID, pricePerNight int64) error
	GetHotel(ctx context.Context, id uuid.UUID) (*Hotel, error)
	GetClass(ctx context.Context, id uuid.UUID) (*RoomClass, error)
	ListHotels(ctx context.Context) ([]*Hotel, error)
}

// Store persists catalog records.
type Store interface {
	CreateHotel(ctx context.Context, h *Hotel) error
	GetHotel(ctx context.Context, id uuid.UUID) (*Hotel, error)
	// UpdateHotel applies a version-checked update; returns ErrConflict on
	// a version mismatch.
	UpdateHotel(ctx context.Context, h *Hotel) error
	ListHotels(ctx context.Context) ([]*Hotel, error)
	CreateClass(ctx context.Context, c *RoomClass) error
	GetClass(ctx context.Context, id uuid.UUID) (*RoomClass, error)
	UpdateClass(ctx context.Context, c *RoomClass) error
}

// EventSink receives catalog events for downstream observers.
type EventSink interface {
	Append(ctx context.Context, aggregateID, aggregateType, eventType string, payload any) error
}
