package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/bizlink/backend/internal/services"
	"github.com/bizlink/backend/internal/storage"
)

// Eventarc delivers CloudEvents; for Firebase Auth user-deleted events the
// body carries the deleted user record. Minimal fields we need: uid, email.
type authUserEvent struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// cloudEventEnvelope handles Eventarc structured content mode where the Auth
// payload is nested inside a "data" field.
type cloudEventEnvelope struct {
	Data authUserEvent `json:"data"`
}

var accounts *services.AccountService

func main() {
	addr := getEnv("PORT", "8080")

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI is required")
	}
	dbName := getEnv("MONGODB_DB", "bizlink")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := storage.NewMongoStore(ctx, mongoURI, dbName)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	profiles := services.NewProfileService(store)
	connections := services.NewConnectionService(store)
	// The auth user is already gone when this event fires; no auth client.
	accounts = services.NewAccountService(profiles, connections, nil)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	http.HandleFunc("/events", handleUserDeleted)

	log.Printf("cleanup-worker listening on :%s", addr)
	log.Fatal(http.ListenAndServe(":"+addr, nil))
}

func handleUserDeleted(w http.ResponseWriter, r *http.Request) {
	// Only accept POSTs from Eventarc.
	if r.Method != http.MethodPost {
		log.Printf("[worker] rejected non-POST method=%s", r.Method)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ceType := r.Header.Get("Ce-Type")
	ceSource := r.Header.Get("Ce-Source")
	log.Printf("[worker] event received: Ce-Type=%s Ce-Source=%s", ceType, ceSource)

	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("[worker] failed to read request body: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// Try binary content mode first, then the structured envelope.
	var ev authUserEvent
	if err := json.Unmarshal(rawBody, &ev); err != nil {
		log.Printf("[worker] failed to decode event body: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if ev.UID == "" {
		var envelope cloudEventEnvelope
		if err := json.Unmarshal(rawBody, &envelope); err == nil {
			ev = envelope.Data
		}
	}

	if ev.UID == "" {
		// Not a user event we care about; ack so Eventarc stops retrying.
		log.Printf("[worker] ignoring event without uid")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), services.DefaultAccountTimeout())
	defer cancel()

	result, err := accounts.DeleteAccount(ctx, ev.UID)
	if err != nil {
		log.Printf("[worker] cleanup uid=%s error=%v", ev.UID, err)
		http.Error(w, "cleanup failed", http.StatusInternalServerError)
		return
	}

	log.Printf("[worker] cleaned up uid=%s email=%s connections_removed=%d", ev.UID, ev.Email, result.ConnectionsRemoved)
	w.WriteHeader(http.StatusOK)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
