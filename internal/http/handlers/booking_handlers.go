package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ecovolt/portal/internal/domain"
	"github.com/ecovolt/portal/internal/http/response"
)

// CreateBooking creates a pending appointment owned by the session
// user.
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	var req domain.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	booking, err := h.bookingService.Create(r.Context(), sess, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Booking created successfully",
		"booking": booking.ToDTO(),
	})
}

// ListBookings returns the session user's bookings, date descending
// then time ascending.
func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	bookings, err := h.bookingService.ListForUser(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]domain.BookingDTO, 0, len(bookings))
	for i := range bookings {
		dtos = append(dtos, bookings[i].ToDTO())
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": dtos,
	})
}
