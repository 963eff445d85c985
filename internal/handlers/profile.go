package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cinelog/cinelog-backend/internal/middleware"
	"github.com/cinelog/cinelog-backend/internal/store"
	"github.com/cinelog/cinelog-backend/pkg/utils"
)

type EditPasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// EditPassword handles PUT /profile for the token identity. The old password
// must verify and the new one must differ from it.
func (h *AuthHandler) EditPassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not authenticated")
		return
	}

	var req EditPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		writeMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}
	if req.OldPassword == req.NewPassword {
		writeMessage(w, http.StatusBadRequest, "New password cannot be equal to old password")
		return
	}

	record, err := h.Store.GetUserByEmail(r.Context(), user.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusBadRequest, "Incorrect password")
			return
		}
		log.Printf("edit password: %v", err)
		writeError(w, http.StatusInternalServerError, "Exception occurred while updating password")
		return
	}

	valid, err := utils.VerifyPassword(req.OldPassword, record.Password)
	if err != nil || !valid {
		writeMessage(w, http.StatusBadRequest, "Incorrect password")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		log.Printf("edit password: failed to hash: %v", err)
		writeError(w, http.StatusInternalServerError, "Exception occurred while updating password")
		return
	}

	if err := h.Store.UpdatePassword(r.Context(), user.Email, hash); err != nil {
		log.Printf("edit password: %v", err)
		writeError(w, http.StatusInternalServerError, "Exception occurred while updating password")
		return
	}

	writeMessage(w, http.StatusOK, "Password updated")
}
