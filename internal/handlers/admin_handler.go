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

// AdminHandler exposes the role-gated operations: role updates and removing
// arbitrary members.
type AdminHandler struct {
	profiles *services.ProfileService
	accounts *services.AccountService
}

func NewAdminHandler(profiles *services.ProfileService, accounts *services.AccountService) *AdminHandler {
	return &AdminHandler{profiles: profiles, accounts: accounts}
}

// requireAdmin resolves the caller's profile and checks the admin role.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return false
	}

	prof, err := h.profiles.GetByUserID(r.Context(), userID)
	if err != nil || prof.Role != models.RoleAdmin {
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Admin role required"))
		return false
	}
	return true
}

type updateRoleBody struct {
	Role models.Role `json:"role"`
}

func (h *AdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	targetID := chi.URLParam(r, "userId")
	if targetID == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing userId"))
		return
	}

	var req updateRoleBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Role must be user or admin"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prof, err := h.profiles.SetRole(ctx, targetID, req.Role)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		log.Printf("[UpdateRole] target=%s error=%v", targetID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update role"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	targetID := chi.URLParam(r, "userId")
	if targetID == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing userId"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), services.DefaultAccountTimeout())
	defer cancel()

	result, err := h.accounts.DeleteAccount(ctx, targetID)
	if err != nil {
		log.Printf("[DeleteUser] target=%s error=%v", targetID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete user"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}
