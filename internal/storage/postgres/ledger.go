// internal/storage/postgres/ledger.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Inn-Chain/innchain-contract/internal/ledger"
)

// LedgerStore persists bookings in Postgres.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) CreateBooking(ctx context.Context, b *ledger.Booking) error {
	query := `
		INSERT INTO bookings (id, customer, hotel_id, class_id, nights, room_cost, deposit_amount, room_released, deposit_released)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, FALSE)
		RETURNING created_at, version
	`
	err := s.db.QueryRowContext(ctx, query,
		b.ID, b.Customer, b.HotelID, b.ClassID, b.Nights, b.RoomCost, b.DepositAmount,
	).Scan(&b.CreatedAt, &b.Version)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (s *LedgerStore) GetBooking(ctx context.Context, id int64) (*ledger.Booking, error) {
	query := `
		SELECT id, customer, hotel_id, class_id, nights, room_cost, deposit_amount, room_released, deposit_released, created_at, version
		FROM bookings
		WHERE id = $1
	`
	b := &ledger.Booking{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.Customer,
		&b.HotelID,
		&b.ClassID,
		&b.Nights,
		&b.RoomCost,
		&b.DepositAmount,
		&b.RoomReleased,
		&b.DepositReleased,
		&b.CreatedAt,
		&b.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("booking %d: %w", id, ledger.ErrNotFound)
		}
		return nil, fmt.Errorf("query booking: %w", err)
	}
	return b, nil
}

// UpdateFlags applies a version-checked flag update. Affecting zero rows
// means either the booking vanished or a concurrent settlement won.
func (s *LedgerStore) UpdateFlags(ctx context.Context, b *ledger.Booking) error {
	query := `
		UPDATE bookings
		SET room_released = $1, deposit_released = $2, version = version + 1
		WHERE id = $3 AND version = $4
	`
	res, err := s.db.ExecContext(ctx, query, b.RoomReleased, b.DepositReleased, b.ID, b.Version)
	if err != nil {
		return fmt.Errorf("update booking flags: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		if _, getErr := s.GetBooking(ctx, b.ID); getErr != nil {
			return getErr
		}
		return fmt.Errorf("booking %d: %w", b.ID, ledger.ErrConflict)
	}
	b.Version++
	return nil
}

func (s *LedgerStore) ListByCustomer(ctx context.Context, customer string) ([]*ledger.Booking, error) {
	query := `
		SELECT id, customer, hotel_id, class_id, nights, room_cost, deposit_amount, room_released, deposit_released, created_at, version
		FROM bookings
		WHERE customer = $1
		ORDER BY id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, customer)
	if err != nil {
		return nil, fmt.Errorf("query customer bookings: %w", err)
	}
	defer rows.Close()

	var out []*ledger.Booking
	for rows.Next() {
		b := &ledger.Booking{}
		if err := rows.Scan(
			&b.ID,
			&b.Customer,
			&b.HotelID,
			&b.ClassID,
			&b.Nights,
			&b.RoomCost,
			&b.DepositAmount,
			&b.RoomReleased,
			&b.DepositReleased,
			&b.CreatedAt,
			&b.Version,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}

func (s *LedgerStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

// MaxBookingID seeds the id generator so restarts never reuse an id.
func (s *LedgerStore) MaxBookingID(ctx context.Context) (int64, error) {
	var max int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM bookings`).Scan(&max); err != nil {
		return 0, fmt.Errorf("query max booking id: %w", err)
	}
	return max, nil
}
