// internal/clients/clients_test.go
package clients_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inn-Chain/innchain-contract/internal/catalog"
	"github.com/Inn-Chain/innchain-contract/internal/clients"
	"github.com/Inn-Chain/innchain-contract/internal/ledger"
	"github.com/Inn-Chain/innchain-contract/internal/storage/memory"
	"github.com/Inn-Chain/innchain-contract/internal/treasury"
)

func TestCatalogClientAgainstLiveHandler(t *testing.T) {
	svc := catalog.NewService(memory.NewCatalogStore(), nil)
	ctx := context.Background()

	hotel, err := svc.RegisterHotel(ctx, "Grand Plaza", "acct:grand-plaza")
	require.NoError(t, err)
	class, err := svc.AddRoomClass(ctx, "Deluxe", 1500)
	require.NoError(t, err)
	other, err := svc.AddRoomClass(ctx, "Suite", 4000)
	require.NoError(t, err)
	require.NoError(t, svc.LinkClass(ctx, hotel.ID, class.ID))

	srv := httptest.NewServer(catalog.NewHandler(svc).Routes([]byte("unused")))
	t.Cleanup(srv.Close)
	client := clients.NewCatalogClient(srv.URL)

	payout, err := client.HotelPayout(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, "acct:grand-plaza", payout)

	offered, err := client.IsClassOffered(ctx, hotel.ID, class.ID)
	require.NoError(t, err)
	assert.True(t, offered)

	offered, err = client.IsClassOffered(ctx, hotel.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, offered, "unlinked class is not offered")

	price, err := client.PriceOf(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), price)
}

func TestCatalogClientMapsNotFound(t *testing.T) {
	svc := catalog.NewService(memory.NewCatalogStore(), nil)
	srv := httptest.NewServer(catalog.NewHandler(svc).Routes([]byte("unused")))
	t.Cleanup(srv.Close)
	client := clients.NewCatalogClient(srv.URL)
	ctx := context.Background()

	_, err := client.HotelPayout(ctx, uuid.New())
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = client.PriceOf(ctx, uuid.New())
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestTreasuryClientAgainstLiveHandler(t *testing.T) {
	svc := treasury.NewService()
	ctx := context.Background()

	_, err := svc.OpenAccount(ctx, "acct:alice")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, "acct:alice", 1000)
	require.NoError(t, err)

	srv := httptest.NewServer(treasury.NewHandler(svc).Routes([]byte("unused")))
	t.Cleanup(srv.Close)
	client := clients.NewTreasuryClient(srv.URL)

	require.NoError(t, client.DebitFrom(ctx, "acct:alice", 600))
	require.NoError(t, client.Credit(ctx, "acct:hotel", 400))

	alice, err := svc.BalanceOf(ctx, "acct:alice")
	require.NoError(t, err)
	assert.Equal(t, int64(400), alice)
	hotel, err := svc.BalanceOf(ctx, "acct:hotel")
	require.NoError(t, err)
	assert.Equal(t, int64(400), hotel)
	escrow, err := svc.EscrowBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(200), escrow)
}

func TestTreasuryClientSurfacesDeclines(t *testing.T) {
	svc := treasury.NewService()
	ctx := context.Background()

	_, err := svc.OpenAccount(ctx, "acct:alice")
	require.NoError(t, err)

	srv := httptest.NewServer(treasury.NewHandler(svc).Routes([]byte("unused")))
	t.Cleanup(srv.Close)
	client := clients.NewTreasuryClient(srv.URL)

	err = client.DebitFrom(ctx, "acct:alice", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}
