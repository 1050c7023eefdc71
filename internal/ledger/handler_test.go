// internal/ledger/handler_test.go
package ledger_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inn-Chain/innchain-contract/internal/auth"
	"github.com/Inn-Chain/innchain-contract/internal/ledger"
)

var testSecret = []byte("test_secret")

func newHandlerFixture(t *testing.T) (*fixture, *httptest.Server) {
	t.Helper()
	f := newFixture(t, 1000, 100_000)
	srv := httptest.NewServer(ledger.NewHandler(f.svc).Routes(testSecret))
	t.Cleanup(srv.Close)
	return f, srv
}

func doRequest(t *testing.T, method, url, caller string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if caller != "" {
		token, err := auth.MintToken(testSecret, caller, time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBooking(t *testing.T, resp *http.Response) *ledger.Booking {
	t.Helper()
	b := &ledger.Booking{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(b))
	return b
}

func decodeReason(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["reason"]
}

func TestHandlerRequiresBearerToken(t *testing.T) {
	_, srv := newHandlerFixture(t)

	resp, err := http.Get(srv.URL + "/bookings")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandlerBookingLifecycle(t *testing.T) {
	f, srv := newHandlerFixture(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/bookings", customer, map[string]any{
		"hotel_id":       f.catalog.hotelID,
		"class_id":       f.catalog.classID,
		"nights":         3,
		"deposit_amount": 500,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	booking := decodeBooking(t, resp)
	assert.Equal(t, int64(3000), booking.RoomCost)

	resp = doRequest(t, http.MethodPost, fmt.Sprintf("%s/bookings/%d/check-in", srv.URL, booking.ID), hotel, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ledger.StateCheckedIn, decodeBooking(t, resp).State())

	resp = doRequest(t, http.MethodPost, fmt.Sprintf("%s/bookings/%d/deposit/charge", srv.URL, booking.ID), hotel, map[string]int64{"amount": 200})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ledger.StateSettled, decodeBooking(t, resp).State())

	resp = doRequest(t, http.MethodGet, srv.URL+"/bookings", customer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bookings []*ledger.Booking
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, booking.ID, bookings[0].ID)
}

func TestHandlerErrorMapping(t *testing.T) {
	f, srv := newHandlerFixture(t)

	create := func() *ledger.Booking {
		resp := doRequest(t, http.MethodPost, srv.URL+"/bookings", customer, map[string]any{
			"hotel_id":       f.catalog.hotelID,
			"class_id":       f.catalog.classID,
			"nights":         3,
			"deposit_amount": 500,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		return decodeBooking(t, resp)
	}

	t.Run("unknown booking is 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, srv.URL+"/bookings/9999", customer, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "not_found", decodeReason(t, resp))
	})

	t.Run("unauthorized caller is 403", func(t *testing.T) {
		b := create()
		resp := doRequest(t, http.MethodPost, fmt.Sprintf("%s/bookings/%d/check-in", srv.URL, b.ID), customer, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "authorization", decodeReason(t, resp))
	})

	t.Run("double release is 409", func(t *testing.T) {
		b := create()
		resp := doRequest(t, http.MethodPost, fmt.Sprintf("%s/bookings/%d/check-in", srv.URL, b.ID), hotel, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp = doRequest(t, http.MethodPost, fmt.Sprintf("%s/bookings/%d/check-in", srv.URL, b.ID), hotel, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "invalid_state", decodeReason(t, resp))
	})

	t.Run("charge above deposit is 400", func(t *testing.T) {
		b := create()
		resp := doRequest(t, http.MethodPost, fmt.Sprintf("%s/bookings/%d/deposit/charge", srv.URL, b.ID), hotel, map[string]int64{"amount": 501})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid_argument", decodeReason(t, resp))
	})

	t.Run("cancel after check-in is 409", func(t *testing.T) {
		b := create()
		resp := doRequest(t, http.MethodPost, fmt.Sprintf("%s/bookings/%d/check-in", srv.URL, b.ID), hotel, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp = doRequest(t, http.MethodPost, fmt.Sprintf("%s/bookings/%d/cancel", srv.URL, b.ID), customer, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestHandlerInsufficientFundsIs422(t *testing.T) {
	f := newFixture(t, 1000, 100)
	srv := httptest.NewServer(ledger.NewHandler(f.svc).Routes(testSecret))
	t.Cleanup(srv.Close)

	resp := doRequest(t, http.MethodPost, srv.URL+"/bookings", customer, map[string]any{
		"hotel_id":       f.catalog.hotelID,
		"class_id":       f.catalog.classID,
		"nights":         3,
		"deposit_amount": 500,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "transfer_failure", decodeReason(t, resp))
}
