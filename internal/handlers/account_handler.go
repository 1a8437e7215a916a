package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/bizlink/backend/internal/middleware"
	"github.com/bizlink/backend/internal/models"
	"github.com/bizlink/backend/internal/services"
)

type AccountHandler struct {
	accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// DeleteAccount removes the authenticated user's profile, connections and
// auth account.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), services.DefaultAccountTimeout())
	defer cancel()

	result, err := h.accounts.DeleteAccount(ctx, userID)
	if err != nil {
		log.Printf("[DeleteAccount] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete account"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}
