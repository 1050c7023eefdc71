// internal/clients/treasury_client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// TreasuryClient calls the asset transfer gateway. It satisfies
// ledger.AssetGateway. A non-2xx response means the transfer did not happen
// at all; the gateway never partially applies a call.
type TreasuryClient struct {
	baseURL string
	client  *http.Client
}

func NewTreasuryClient(baseURL string) *TreasuryClient {
	return &TreasuryClient{baseURL: baseURL, client: http.DefaultClient}
}

// DebitFrom moves amount from the payer's external balance into escrow.
func (c *TreasuryClient) DebitFrom(ctx context.Context, payer string, amount int64) error {
	return c.post(ctx, "/debits", map[string]any{"payer": payer, "amount": amount})
}

// Credit moves amount out of escrow to the recipient.
func (c *TreasuryClient) Credit(ctx context.Context, recipient string, amount int64) error {
	return c.post(ctx, "/credits", map[string]any{"recipient": recipient, "amount": amount})
}

func (c *TreasuryClient) post(ctx context.Context, path string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("treasury declined %s with status %d: %s", path, resp.StatusCode, bytes.TrimSpace(msg))
}
