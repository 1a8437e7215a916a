package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bizlink/backend/internal/middleware"
	"github.com/bizlink/backend/internal/models"
	"github.com/bizlink/backend/internal/services"
)

type NetworkHandler struct {
	network     *services.NetworkService
	connections *services.ConnectionService
}

func NewNetworkHandler(network *services.NetworkService, connections *services.ConnectionService) *NetworkHandler {
	return &NetworkHandler{network: network, connections: connections}
}

// ListMembers returns the decorated directory, optionally narrowed by the
// search/type/location query parameters.
func (h *NetworkHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	filters := services.Filters{
		Search:      r.URL.Query().Get("search"),
		ProfileKind: r.URL.Query().Get("type"),
		Location:    r.URL.Query().Get("location"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	members, err := h.network.ListMembersFiltered(ctx, userID, filters)
	if err != nil {
		log.Printf("[ListMembers] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load members"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(members))
}

func (h *NetworkHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, err := h.connections.ListConnections(ctx, userID)
	if err != nil {
		log.Printf("[ListConnections] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load connections"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(entries))
}

func (h *NetworkHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
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

	status, err := h.connections.GetStatus(ctx, userID, targetID)
	if err != nil {
		log.Printf("[GetStatus] user=%s target=%s error=%v", userID, targetID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load status"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]models.ConnectionStatus{
		"status": status,
	}))
}

// Connect sends a connection request to the member in the URL.
func (h *NetworkHandler) Connect(w http.ResponseWriter, r *http.Request) {
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

	conn, err := h.connections.Request(ctx, userID, targetID)
	if err != nil {
		switch err {
		case services.ErrSelfConnection:
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Cannot connect to yourself"))
		case services.ErrConnectionExists:
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Connection already exists"))
		default:
			log.Printf("[Connect] user=%s target=%s error=%v", userID, targetID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to send request"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(conn))
}

// Accept accepts the pending request sent by the member in the URL.
func (h *NetworkHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	requesterID := chi.URLParam(r, "userId")
	if requesterID == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing userId"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	conn, err := h.connections.Accept(ctx, requesterID, userID)
	if err != nil {
		if err == services.ErrConnectionNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("No pending request from this member"))
			return
		}
		log.Printf("[Accept] user=%s requester=%s error=%v", userID, requesterID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to accept request"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(conn))
}

// Remove deletes the relationship with the member in the URL. Idempotent.
func (h *NetworkHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	if err := h.connections.Remove(ctx, userID, targetID); err != nil {
		log.Printf("[Remove] user=%s target=%s error=%v", userID, targetID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to remove connection"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}
