package services

import (
	"context"
	"log"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
)

// AccountService tears down everything a member owns: the profile document,
// every connection they appear in, and (best effort) the auth provider user.
type AccountService struct {
	profiles    *ProfileService
	connections *ConnectionService
	authClient  *fbauth.Client
}

func NewAccountService(profiles *ProfileService, connections *ConnectionService, authClient *fbauth.Client) *AccountService {
	return &AccountService{
		profiles:    profiles,
		connections: connections,
		authClient:  authClient,
	}
}

type DeleteAccountResult struct {
	UserID             string `json:"user_id"`
	ConnectionsRemoved int    `json:"connections_removed"`
}

// DeleteAccount removes the user's connections first so no directory entry is
// left pointing at a deleted profile, then the profile itself, then the auth
// user. Auth deletion is best effort; the worker path runs with no client.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) (*DeleteAccountResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	entries, err := s.connections.ListConnections(ctx, userID)
	if err != nil {
		return nil, err
	}

	removed := 0
	for _, entry := range entries {
		if err := s.connections.Remove(ctx, userID, entry.UserID); err != nil {
			return nil, err
		}
		removed++
	}

	if err := s.profiles.Delete(ctx, userID); err != nil {
		return nil, err
	}

	if s.authClient != nil {
		if err := s.authClient.DeleteUser(ctx, userID); err != nil {
			log.Printf("[DeleteAccount] auth user delete user=%s error=%v", userID, err)
		}
	}

	return &DeleteAccountResult{
		UserID:             userID,
		ConnectionsRemoved: removed,
	}, nil
}

// Helper for handlers that want a sane timeout.
func DefaultAccountTimeout() time.Duration { return 20 * time.Second }
