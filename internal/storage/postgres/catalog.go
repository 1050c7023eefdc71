// internal/storage/postgres/catalog.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Inn-Chain/innchain-contract/internal/catalog"
)

// CatalogStore persists hotels and room classes in Postgres. Class linkage
// lives in the hotel_classes join table; the hotel row version still guards
// concurrent linkage updates.
type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) CreateHotel(ctx context.Context, h *catalog.Hotel) error {
	query := `
		INSERT INTO hotels (id, name, payout_identity)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at, version
	`
	err := s.db.QueryRowContext(ctx, query, h.ID, h.Name, h.PayoutIdentity).
		Scan(&h.CreatedAt, &h.UpdatedAt, &h.Version)
	if err != nil {
		return fmt.Errorf("insert hotel: %w", err)
	}
	return nil
}

func (s *CatalogStore) GetHotel(ctx context.Context, id uuid.UUID) (*catalog.Hotel, error) {
	query := `
		SELECT id, name, payout_identity, created_at, updated_at, version
		FROM hotels
		WHERE id = $1
	`
	h := &catalog.Hotel{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&h.ID, &h.Name, &h.PayoutIdentity, &h.CreatedAt, &h.UpdatedAt, &h.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("hotel %s: %w", id, catalog.ErrNotFound)
		}
		return nil, fmt.Errorf("query hotel: %w", err)
	}

	if h.OfferedClassIDs, err = s.linkedClasses(ctx, id); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *CatalogStore) linkedClasses(ctx context.Context, hotelID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT class_id FROM hotel_classes WHERE hotel_id = $1 ORDER BY linked_at ASC
	`, hotelID)
	if err != nil {
		return nil, fmt.Errorf("query linked classes: %w", err)
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan class id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// UpdateHotel bumps the hotel version and reconciles the linkage table with
// the hotel's offered class set.
func (s *CatalogStore) UpdateHotel(ctx context.Context, h *catalog.Hotel) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE hotels
		SET name = $1, payout_identity = $2, version = version + 1, updated_at = NOW()
		WHERE id = $3 AND version = $4
	`, h.Name, h.PayoutIdentity, h.ID, h.Version)
	if err != nil {
		return fmt.Errorf("update hotel: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("hotel %s: %w", h.ID, catalog.ErrConflict)
	}

	for _, classID := range h.OfferedClassIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO hotel_classes (hotel_id, class_id)
			VALUES ($1, $2)
			ON CONFLICT (hotel_id, class_id) DO NOTHING
		`, h.ID, classID)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
				return fmt.Errorf("room class %s: %w", classID, catalog.ErrNotFound)
			}
			return fmt.Errorf("link class: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	h.Version++
	return nil
}

func (s *CatalogStore) ListHotels(ctx context.Context) ([]*catalog.Hotel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, payout_identity, created_at, updated_at, version
		FROM hotels
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query hotels: %w", err)
	}
	defer rows.Close()

	var out []*catalog.Hotel
	for rows.Next() {
		h := &catalog.Hotel{}
		if err := rows.Scan(&h.ID, &h.Name, &h.PayoutIdentity, &h.CreatedAt, &h.UpdatedAt, &h.Version); err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hotels: %w", err)
	}

	for _, h := range out {
		if h.OfferedClassIDs, err = s.linkedClasses(ctx, h.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *CatalogStore) CreateClass(ctx context.Context, c *catalog.RoomClass) error {
	query := `
		INSERT INTO room_classes (id, name, price_per_night)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at, version
	`
	err := s.db.QueryRowContext(ctx, query, c.ID, c.Name, c.PricePerNight).
		Scan(&c.CreatedAt, &c.UpdatedAt, &c.Version)
	if err != nil {
		return fmt.Errorf("insert room class: %w", err)
	}
	return nil
}

func (s *CatalogStore) GetClass(ctx context.Context, id uuid.UUID) (*catalog.RoomClass, error) {
	query := `
		SELECT id, name, price_per_night, created_at, updated_at, version
		FROM room_classes
		WHERE id = $1
	`
	c := &catalog.RoomClass{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.PricePerNight, &c.CreatedAt, &c.UpdatedAt, &c.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("room class %s: %w", id, catalog.ErrNotFound)
		}
		return nil, fmt.Errorf("query room class: %w", err)
	}
	return c, nil
}

func (s *CatalogStore) UpdateClass(ctx context.Context, c *catalog.RoomClass) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE room_classes
		SET name = $1, price_per_night = $2, version = version + 1, updated_at = NOW()
		WHERE id = $3 AND version = $4
	`, c.Name, c.PricePerNight, c.ID, c.Version)
	if err != nil {
		return fmt.Errorf("update room class: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("room class %s: %w", c.ID, catalog.ErrConflict)
	}
	c.Version++
	return nil
}
