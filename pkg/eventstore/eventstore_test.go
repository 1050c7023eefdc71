package eventstore_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inn-Chain/innchain-contract/internal/storage/postgres"
	"github.com/Inn-Chain/innchain-contract/pkg/eventstore"
)

// openTestDB connects to the database named by TEST_DATABASE_URL. Tests that
// need Postgres are skipped when it is unset so the unit suite stays
// self-contained.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	require.NoError(t, postgres.Migrate(context.Background(), db))
	_, err = db.Exec("TRUNCATE TABLE events")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAppendAndLoadEvents(t *testing.T) {
	db := openTestDB(t)
	es := eventstore.NewEventStore(db)
	ctx := context.Background()

	require.NoError(t, es.Append(ctx, "booking-1", "booking", "BookingCreated", map[string]int64{"amount": 3500}))
	require.NoError(t, es.Append(ctx, "booking-1", "booking", "RoomPaymentReleased", map[string]int64{"amount": 3000}))

	events, err := es.LoadEvents(ctx, "booking-1", 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 1, events[0].Version)
	assert.Equal(t, 2, events[1].Version)
	assert.Equal(t, "BookingCreated", events[0].EventType)

	version, err := es.GetCurrentVersion(ctx, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestAppendEventsDetectsConcurrencyConflict(t *testing.T) {
	db := openTestDB(t)
	es := eventstore.NewEventStore(db)
	ctx := context.Background()

	require.NoError(t, es.Append(ctx, "booking-1", "booking", "BookingCreated", nil))

	err := es.AppendEvents(ctx, "booking-1", "booking", 0, []eventstore.Event{{
		EventType: "RoomPaymentReleased",
		EventData: []byte("{}"),
	}})
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
}

func TestStreamEvents(t *testing.T) {
	db := openTestDB(t)
	es := eventstore.NewEventStore(db)
	ctx := context.Background()

	require.NoError(t, es.Append(ctx, "a", "booking", "First", nil))
	require.NoError(t, es.Append(ctx, "b", "booking", "Second", nil))
	require.NoError(t, es.Append(ctx, "c", "booking", "Third", nil))

	batch, err := es.StreamEvents(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)

	rest, err := es.StreamEvents(ctx, batch[1].ID, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "Third", rest[0].EventType)
}
