package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bizlink/backend/internal/middleware"
	"github.com/bizlink/backend/internal/models"
	"github.com/bizlink/backend/internal/services"
)

type ProfileHandler struct {
	profiles *services.ProfileService
	network  *services.NetworkService
}

func NewProfileHandler(profiles *services.ProfileService, network *services.NetworkService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, network: network}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prof, err := h.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		log.Printf("[GetProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prof, err := h.profiles.Update(ctx, userID, &req)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		log.Printf("[UpdateProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

// GetMemberProfile returns another member's profile decorated with the
// caller's relationship status.
func (h *ProfileHandler) GetMemberProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	targetID := chi.URLParam(r, "userId")
	if targetID == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing userId"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	member, err := h.network.GetMember(ctx, userID, targetID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		log.Printf("[GetMemberProfile] user=%s target=%s error=%v", userID, targetID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(member))
}
