// internal/storage/memory/ledger_test.go
package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inn-Chain/innchain-contract/internal/ledger"
	"github.com/Inn-Chain/innchain-contract/internal/storage/memory"
)

func newBooking(id int64) *ledger.Booking {
	return &ledger.Booking{
		ID:            id,
		Customer:      "acct:customer",
		HotelID:       uuid.New(),
		ClassID:       uuid.New(),
		Nights:        2,
		RoomCost:      2000,
		DepositAmount: 300,
	}
}

func TestLedgerStoreCreateAndGet(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	b := newBooking(1)
	require.NoError(t, store.CreateBooking(ctx, b))
	assert.Equal(t, 1, b.Version)
	assert.False(t, b.CreatedAt.IsZero())

	got, err := store.GetBooking(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, b.RoomCost, got.RoomCost)

	// Mutating the returned copy does not leak into the store.
	got.RoomReleased = true
	again, err := store.GetBooking(ctx, 1)
	require.NoError(t, err)
	assert.False(t, again.RoomReleased)

	assert.ErrorIs(t, store.CreateBooking(ctx, newBooking(1)), ledger.ErrConflict)
	_, err = store.GetBooking(ctx, 42)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestLedgerStoreUpdateFlagsVersionCheck(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	b := newBooking(1)
	require.NoError(t, store.CreateBooking(ctx, b))

	first, err := store.GetBooking(ctx, 1)
	require.NoError(t, err)
	second, err := store.GetBooking(ctx, 1)
	require.NoError(t, err)

	first.RoomReleased = true
	require.NoError(t, store.UpdateFlags(ctx, first))
	assert.Equal(t, 2, first.Version)

	// The stale reader loses.
	second.DepositReleased = true
	assert.ErrorIs(t, store.UpdateFlags(ctx, second), ledger.ErrConflict)

	got, err := store.GetBooking(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.RoomReleased)
	assert.False(t, got.DepositReleased)
}

func TestLedgerStoreListByCustomer(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	for _, id := range []int64{3, 1, 2} {
		require.NoError(t, store.CreateBooking(ctx, newBooking(id)))
	}
	other := newBooking(4)
	other.Customer = "acct:other"
	require.NoError(t, store.CreateBooking(ctx, other))

	bookings, err := store.ListByCustomer(ctx, "acct:customer")
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.Equal(t, int64(1), bookings[0].ID)
	assert.Equal(t, int64(3), bookings[2].ID)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
