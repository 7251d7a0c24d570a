package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes wires the portal API. credentialLimit guards the endpoints
// that accept credentials; pass nil to run without rate limiting
// (tests, local dev without Redis).
func (h *Handlers) Routes(credentialLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		if credentialLimit != nil {
			r.With(credentialLimit).Post("/register", h.Register)
			r.With(credentialLimit).Post("/login", h.Login)
		} else {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		}
		r.Post("/logout", h.Logout)
		r.Get("/session", h.SessionStatus)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/me", h.GetProfile)
		r.Put("/me", h.UpdateProfile)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.CreateBooking)
		r.Get("/", h.ListBookings)
	})

	return r
}
