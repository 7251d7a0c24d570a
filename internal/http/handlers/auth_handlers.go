package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecovolt/portal/internal/domain"
	"github.com/ecovolt/portal/internal/http/response"
	"github.com/ecovolt/portal/internal/platform/session"
	"github.com/ecovolt/portal/pkg/logger"
)

// Register handles user sign-up. It never logs the new user in; the
// client is expected to go through the sign-in flow afterwards.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user.ToUserInfo(),
	})
}

// Login verifies credentials and writes the user id into the
// encrypted session cookie. An unknown email yields 404 and a wrong
// password 401, both with the same message.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	user, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.WriteError(w, http.StatusNotFound, domain.ErrInvalidCredentials.Error(), response.CodeNotFound)
			return
		}
		writeServiceError(w, err)
		return
	}

	if err := h.sessions.Save(w, session.Session{UserID: user.ID.Hex()}); err != nil {
		logger.ErrorContext(r.Context(), "Failed to write session cookie", "error", err)
		response.InternalError(w, "An error occurred")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "User logged in successfully",
		"is_logged_in": true,
	})
}

// Logout destroys the session unconditionally, whatever its prior
// state.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "User logged out",
	})
}

// SessionStatus reports whether the request carries a valid session.
func (h *Handlers) SessionStatus(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	writeJSON(w, http.StatusOK, map[string]bool{
		"is_logged_in": sess.IsAuthenticated(),
	})
}
