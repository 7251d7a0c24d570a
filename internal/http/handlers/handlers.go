package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecovolt/portal/internal/domain"
	"github.com/ecovolt/portal/internal/http/response"
	"github.com/ecovolt/portal/internal/platform/session"
	"github.com/ecovolt/portal/internal/service"
	"github.com/ecovolt/portal/pkg/logger"
)

type Handlers struct {
	authService    service.AuthService
	bookingService service.BookingService
	sessions       *session.Manager
}

func New(authService service.AuthService, bookingService service.BookingService, sessions *session.Manager) *Handlers {
	return &Handlers{
		authService:    authService,
		bookingService: bookingService,
		sessions:       sessions,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeServiceError maps the domain error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNoFields):
		response.BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		response.Unauthorized(w, "Not authenticated")
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.WriteError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error(), response.CodeUnauthorized)
	case errors.Is(err, domain.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, domain.ErrEmailTaken):
		response.WriteError(w, http.StatusConflict, domain.ErrEmailTaken.Error(), response.CodeEmailExists)
	default:
		response.InternalError(w, "An error occurred")
	}
}
