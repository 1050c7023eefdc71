// internal/clients/catalog_client.go
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/Inn-Chain/innchain-contract/internal/catalog"
	"github.com/Inn-Chain/innchain-contract/internal/ledger"
)

// CatalogClient gives the ledger its read-only view of the catalog service.
// It satisfies ledger.CatalogGateway.
type CatalogClient struct {
	baseURL string
	client  *http.Client
}

func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{baseURL: baseURL, client: http.DefaultClient}
}

func (c *CatalogClient) getHotel(ctx context.Context, hotelID uuid.UUID) (*catalog.Hotel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/hotels/%s", c.baseURL, hotelID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("hotel %s: %w", hotelID, ledger.ErrNotFound)
	default:
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var hotel catalog.Hotel
	if err := json.NewDecoder(resp.Body).Decode(&hotel); err != nil {
		return nil, err
	}
	return &hotel, nil
}

// HotelPayout resolves the payout identity of a registered hotel.
func (c *CatalogClient) HotelPayout(ctx context.Context, hotelID uuid.UUID) (string, error) {
	hotel, err := c.getHotel(ctx, hotelID)
	if err != nil {
		return "", err
	}
	return hotel.PayoutIdentity, nil
}

// IsClassOffered reports whether the class is linked to the hotel.
func (c *CatalogClient) IsClassOffered(ctx context.Context, hotelID, classID uuid.UUID) (bool, error) {
	hotel, err := c.getHotel(ctx, hotelID)
	if err != nil {
		return false, err
	}
	return hotel.Offers(classID), nil
}

// PriceOf returns the price per night of a room class.
func (c *CatalogClient) PriceOf(ctx context.Context, classID uuid.UUID) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/classes/%s", c.baseURL, classID), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return 0, fmt.Errorf("room class %s: %w", classID, ledger.ErrNotFound)
	default:
		return 0, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var class catalog.RoomClass
	if err := json.NewDecoder(resp.Body).Decode(&class); err != nil {
		return 0, err
	}
	return class.PricePerNight, nil
}
