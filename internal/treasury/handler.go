// internal/treasury/handler.go
package treasury

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Inn-Chain/innchain-contract/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the treasury HTTP surface. Account management requires an
// authenticated caller acting on their own identity; the debit/credit
// endpoints are the internal gateway contract consumed by the ledger.
func (h *Handler) Routes(jwtSecret []byte) http.Handler {
	r := chi.NewRouter()
	r.Post("/debits", h.handleDebit)
	r.Post("/credits", h.handleCredit)
	r.Get("/escrow/balance", h.handleEscrowBalance)
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))
		r.Post("/accounts", h.handleOpenAccount)
		r.Post("/accounts/deposits", h.handleDeposit)
		r.Get("/accounts/balance", h.handleBalance)
		r.Get("/accounts/entries", h.handleEntries)
	})
	return r
}

func (h *Handler) handleOpenAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := h.service.OpenAccount(r.Context(), auth.CallerFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(acct)
}

func (h *Handler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	acct, err := h.service.Deposit(r.Context(), auth.CallerFromContext(r.Context()), req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(acct)
}

func (h *Handler) handleDebit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Payer  string `json:"payer"`
		Amount int64  `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.service.DebitFrom(r.Context(), req.Payer, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCredit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recipient string `json:"recipient"`
		Amount    int64  `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.service.Credit(r.Context(), req.Recipient, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.service.BalanceOf(r.Context(), auth.CallerFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]int64{"balance": balance})
}

func (h *Handler) handleEscrowBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.service.EscrowBalance(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]int64{"escrow_balance": balance})
}

func (h *Handler) handleEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Entries(r.Context(), auth.CallerFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	json.NewEncoder(w).Encode(entries)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	reason := "internal"
	switch {
	case errors.Is(err, ErrNotFound):
		code, reason = http.StatusNotFound, "not_found"
	case errors.Is(err, ErrInvalidArgument):
		code, reason = http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, ErrInsufficientFunds), errors.Is(err, ErrInsufficientEscrow):
		code, reason = http.StatusUnprocessableEntity, "transfer_failure"
	case errors.Is(err, ErrRateLimited):
		code, reason = http.StatusTooManyRequests, "rate_limited"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"reason": reason, "error": err.Error()})
}
