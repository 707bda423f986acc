package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
)

// BookingRequester defines the booking operation used by the handler
type BookingRequester interface {
	RequestBooking(ctx context.Context, booking *entities.Booking) error
}

// BookingHandler handles booking requests
type BookingHandler struct {
	service BookingRequester
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingRequester) *BookingHandler {
	return &BookingHandler{service: service}
}

type bookingRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	PreferredDate string `json:"preferred_date"`
	Notes         string `json:"notes"`
}

// RequestBooking handles POST /api/providers/{id}/bookings
func (h *BookingHandler) RequestBooking(w http.ResponseWriter, r *http.Request) {
	var payload bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	booking := &entities.Booking{
		ProviderID:    r.PathValue("id"),
		CustomerName:  payload.CustomerName,
		CustomerPhone: payload.CustomerPhone,
		Address:       payload.Address,
		PreferredDate: payload.PreferredDate,
		Notes:         payload.Notes,
	}

	if err := h.service.RequestBooking(r.Context(), booking); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, booking)
}
