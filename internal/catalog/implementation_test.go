// internal/catalog/implementation_test.go
package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inn-Chain/innchain-contract/internal/catalog"
	"github.com/Inn-Chain/innchain-contract/internal/storage/memory"
	"github.com/Inn-Chain/innchain-contract/pkg/eventstore"
)

func newCatalog(t *testing.T) (catalog.Service, *eventstore.Memory) {
	t.Helper()
	journal := eventstore.NewMemory()
	return catalog.NewService(memory.NewCatalogStore(), journal), journal
}

func TestRegisterHotel(t *testing.T) {
	svc, journal := newCatalog(t)
	ctx := context.Background()

	hotel, err := svc.RegisterHotel(ctx, "Grand Plaza", "acct:grand-plaza")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, hotel.ID)
	assert.Empty(t, hotel.OfferedClassIDs)

	got, err := svc.GetHotel(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, "acct:grand-plaza", got.PayoutIdentity)

	events := journal.LoadEvents(ctx, hotel.ID.String())
	require.Len(t, events, 1)
	assert.Equal(t, "HotelRegistered", events[0].EventType)
}

func TestRegisterHotelValidation(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	_, err := svc.RegisterHotel(ctx, "  ", "acct:x")
	assert.ErrorIs(t, err, catalog.ErrInvalidArgument)

	_, err = svc.RegisterHotel(ctx, "Hotel", "")
	assert.ErrorIs(t, err, catalog.ErrInvalidArgument)
}

func TestAddRoomClass(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	class, err := svc.AddRoomClass(ctx, "Deluxe", 1500)
	require.NoError(t, err)

	got, err := svc.GetClass(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), got.PricePerNight)

	_, err = svc.AddRoomClass(ctx, "Free", 0)
	assert.ErrorIs(t, err, catalog.ErrInvalidArgument)
}

func TestLinkClass(t *testing.T) {
	svc, journal := newCatalog(t)
	ctx := context.Background()

	hotel, err := svc.RegisterHotel(ctx, "Grand Plaza", "acct:grand-plaza")
	require.NoError(t, err)
	class, err := svc.AddRoomClass(ctx, "Deluxe", 1500)
	require.NoError(t, err)

	require.NoError(t, svc.LinkClass(ctx, hotel.ID, class.ID))

	got, err := svc.GetHotel(ctx, hotel.ID)
	require.NoError(t, err)
	assert.True(t, got.Offers(class.ID))

	// Relinking the same pair is rejected.
	err = svc.LinkClass(ctx, hotel.ID, class.ID)
	assert.ErrorIs(t, err, catalog.ErrAlreadyLinked)

	// Both ends must exist.
	assert.ErrorIs(t, svc.LinkClass(ctx, uuid.New(), class.ID), catalog.ErrNotFound)
	assert.ErrorIs(t, svc.LinkClass(ctx, hotel.ID, uuid.New()), catalog.ErrNotFound)

	events := journal.LoadEvents(ctx, hotel.ID.String())
	require.Len(t, events, 2)
	assert.Equal(t, "ClassLinked", events[1].EventType)
}

func TestClassSharedAcrossHotels(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	class, err := svc.AddRoomClass(ctx, "Standard", 900)
	require.NoError(t, err)

	first, err := svc.RegisterHotel(ctx, "First", "acct:first")
	require.NoError(t, err)
	second, err := svc.RegisterHotel(ctx, "Second", "acct:second")
	require.NoError(t, err)

	require.NoError(t, svc.LinkClass(ctx, first.ID, class.ID))
	require.NoError(t, svc.LinkClass(ctx, second.ID, class.ID))

	hotels, err := svc.ListHotels(ctx)
	require.NoError(t, err)
	require.Len(t, hotels, 2)
	for _, h := range hotels {
		assert.True(t, h.Offers(class.ID))
	}
}

func TestUpdatePrice(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	class, err := svc.AddRoomClass(ctx, "Deluxe", 1500)
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePrice(ctx, class.ID, 1800))
	got, err := svc.GetClass(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), got.PricePerNight)

	assert.ErrorIs(t, svc.UpdatePrice(ctx, class.ID, 0), catalog.ErrInvalidArgument)
	assert.ErrorIs(t, svc.UpdatePrice(ctx, uuid.New(), 100), catalog.ErrNotFound)
}
