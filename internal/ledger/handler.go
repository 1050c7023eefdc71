// internal/ledger/handler.go
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Inn-Chain/innchain-contract/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the ledger HTTP surface. Every route requires an
// authenticated caller; the subject of the bearer token is the identity the
// policy compares against.
func (h *Handler) Routes(jwtSecret []byte) http.Handler {
	r := chi.NewRouter()
	r.Use(auth.Middleware(jwtSecret))
	r.Post("/bookings", h.handleCreate)
	r.Get("/bookings", h.handleCustomerBookings)
	r.Get("/bookings/{id}", h.handleGet)
	r.Post("/bookings/{id}/check-in", h.handleCheckIn)
	r.Post("/bookings/{id}/deposit/refund", h.handleRefundDeposit)
	r.Post("/bookings/{id}/deposit/charge", h.handleChargeDeposit)
	r.Post("/bookings/{id}/cancel", h.handleFullRefund)
	return r
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HotelID       uuid.UUID `json:"hotel_id"`
		ClassID       uuid.UUID `json:"class_id"`
		Nights        int       `json:"nights"`
		DepositAmount int64     `json:"deposit_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), auth.CallerFromContext(r.Context()), req.HotelID, req.ClassID, req.Nights, req.DepositAmount)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(booking)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	booking, err := h.service.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(booking)
}

func (h *Handler) handleCustomerBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.CustomerBookings(r.Context(), auth.CallerFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	if bookings == nil {
		bookings = []*Booking{}
	}
	json.NewEncoder(w).Encode(bookings)
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.service.ConfirmCheckIn)
}

func (h *Handler) handleRefundDeposit(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.service.RefundDeposit)
}

func (h *Handler) handleFullRefund(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.service.FullRefund)
}

func (h *Handler) handleChargeDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	booking, err := h.service.ChargeDeposit(r.Context(), auth.CallerFromContext(r.Context()), id, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(booking)
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, caller string, id int64) (*Booking, error)) {
	id, err := bookingID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	booking, err := op(r.Context(), auth.CallerFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(booking)
}

func bookingID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// writeError maps the error taxonomy onto HTTP status codes. Reason tags
// travel in the body so callers can distinguish classes programmatically.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	reason := "internal"
	switch {
	case errors.Is(err, ErrNotFound):
		code, reason = http.StatusNotFound, "not_found"
	case errors.Is(err, ErrUnauthorized):
		code, reason = http.StatusForbidden, "authorization"
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrConflict):
		code, reason = http.StatusConflict, "invalid_state"
	case errors.Is(err, ErrInvalidArgument):
		code, reason = http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, ErrTransferFailed):
		code, reason = http.StatusUnprocessableEntity, "transfer_failure"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"reason": reason, "error": err.Error()})
}
