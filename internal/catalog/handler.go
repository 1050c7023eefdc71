// internal/catalog/handler.go
package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

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

// Routes mounts the catalog HTTP surface. Reads are open to the other
// services; mutations require an authenticated caller.
func (h *Handler) Routes(jwtSecret []byte) http.Handler {
	r := chi.NewRouter()
	r.Get("/hotels", h.handleListHotels)
	r.Get("/hotels/{id}", h.handleGetHotel)
	r.Get("/classes/{id}", h.handleGetClass)
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))
		r.Post("/hotels", h.handleRegisterHotel)
		r.Post("/classes", h.handleAddClass)
		r.Post("/hotels/{id}/classes/{classID}", h.handleLinkClass)
		r.Patch("/classes/{id}/price", h.handleUpdatePrice)
	})
	return r
}

func (h *Handler) handleRegisterHotel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name"`
		PayoutIdentity string `json:"payout_identity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	hotel, err := h.service.RegisterHotel(r.Context(), req.Name, req.PayoutIdentity)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(hotel)
}

func (h *Handler) handleAddClass(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string `json:"name"`
		PricePerNight int64  `json:"price_per_night"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	class, err := h.service.AddRoomClass(r.Context(), req.Name, req.PricePerNight)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(class)
}

func (h *Handler) handleLinkClass(w http.ResponseWriter, r *http.Request) {
	hotelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	classID, err := uuid.Parse(chi.URLParam(r, "classID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.service.LinkClass(r.Context(), hotelID, classID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	classID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req struct {
		PricePerNight int64 `json:"price_per_night"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.service.UpdatePrice(r.Context(), classID, req.PricePerNight); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetHotel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	hotel, err := h.service.GetHotel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(hotel)
}

func (h *Handler) handleGetClass(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	class, err := h.service.GetClass(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(class)
}

func (h *Handler) handleListHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.service.ListHotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if hotels == nil {
		hotels = []*Hotel{}
	}
	json.NewEncoder(w).Encode(hotels)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	reason := "internal"
	switch {
	case errors.Is(err, ErrNotFound):
		code, reason = http.StatusNotFound, "not_found"
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrAlreadyLinked):
		code, reason = http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, ErrConflict):
		code, reason = http.StatusConflict, "conflict"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"reason": reason, "error": err.Error()})
}
