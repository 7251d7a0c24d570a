package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ecovolt/portal/internal/domain"
	"github.com/ecovolt/portal/internal/http/response"
)

// GetProfile returns the session user's summary for the dashboard.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	user, err := h.authService.CurrentUser(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": user.ToUserInfo(),
	})
}

// UpdateProfile applies a partial update to the session user's record.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), sess, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    user.ToUserInfo(),
	})
}
