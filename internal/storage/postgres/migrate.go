// internal/storage/postgres/migrate.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		aggregate_id TEXT NOT NULL,
		aggregate_type TEXT NOT NULL,
		event_type TEXT NOT NULL,
		event_data JSONB NOT NULL,
		version INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (aggregate_id, version)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_aggregate ON events (aggregate_id, version)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT PRIMARY KEY,
		customer TEXT NOT NULL,
		hotel_id UUID NOT NULL,
		class_id UUID NOT NULL,
		nights INT NOT NULL,
		room_cost BIGINT NOT NULL,
		deposit_amount BIGINT NOT NULL,
		room_released BOOLEAN NOT NULL DEFAULT FALSE,
		deposit_released BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INT NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_customer ON bookings (customer, id)`,
	`CREATE TABLE IF NOT EXISTS hotels (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		payout_identity TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INT NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS room_classes (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		price_per_night BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INT NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS hotel_classes (
		hotel_id UUID NOT NULL REFERENCES hotels (id),
		class_id UUID NOT NULL REFERENCES room_classes (id),
		linked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (hotel_id, class_id)
	)`,
}

// Migrate applies the schema. Statements are idempotent so every service
// can run it at startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i, err)
		}
	}
	return nil
}
