package services

import (
	"context"
	"errors"
	"time"

	"github.com/bizlink/backend/internal/models"
	"github.com/bizlink/backend/internal/storage"
)

var (
	ErrMissingUserID      = errors.New("missing user id")
	ErrSelfConnection     = errors.New("cannot connect to yourself")
	ErrConnectionExists   = errors.New("connection already exists")
	ErrConnectionNotFound = errors.New("connection not found")
)

// ConnectionService is the pairwise relationship state machine:
// none -> pending -> connected, with removal back to none from either state.
type ConnectionService struct {
	store storage.DocumentStore
}

func NewConnectionService(store storage.DocumentStore) *ConnectionService {
	return &ConnectionService{store: store}
}

// pairKey canonicalizes the undirected pair into a single document key, so
// (A,B) and (B,A) always resolve to the same record. Direction is kept in the
// document's from/to fields.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

// Request creates a pending connection from requester to target. A
// relationship already existing in either direction is rejected; the unique
// document key closes the race between two concurrent first requests.
func (s *ConnectionService) Request(ctx context.Context, requester, target string) (*models.Connection, error) {
	if requester == "" || target == "" {
		return nil, ErrMissingUserID
	}
	if requester == target {
		return nil, ErrSelfConnection
	}

	key := pairKey(requester, target)

	var existing models.Connection
	err := s.store.Get(ctx, storage.ConnectionsCollection, key, &existing)
	if err == nil {
		return nil, ErrConnectionExists
	}
	if err != storage.ErrNotFound {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	conn := &models.Connection{
		ID:         key,
		FromUserID: requester,
		ToUserID:   target,
		Status:     models.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Put(ctx, storage.ConnectionsCollection, key, conn, false); err != nil {
		if err == storage.ErrDuplicateKey {
			return nil, ErrConnectionExists
		}
		return nil, err
	}
	return conn, nil
}

// Accept marks the pending request sent by fromUserID to toUserID as
// connected. The stored direction must match exactly: only the recipient of a
// pending request can accept it.
func (s *ConnectionService) Accept(ctx context.Context, fromUserID, toUserID string) (*models.Connection, error) {
	if fromUserID == "" || toUserID == "" {
		return nil, ErrMissingUserID
	}

	key := pairKey(fromUserID, toUserID)

	var conn models.Connection
	if err := s.store.Get(ctx, storage.ConnectionsCollection, key, &conn); err != nil {
		if err == storage.ErrNotFound {
			return nil, ErrConnectionNotFound
		}
		return nil, err
	}
	if conn.Status != models.StatusPending || conn.FromUserID != fromUserID || conn.ToUserID != toUserID {
		return nil, ErrConnectionNotFound
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	update := map[string]interface{}{
		"status":     models.StatusConnected,
		"updated_at": now,
	}
	if err := s.store.Put(ctx, storage.ConnectionsCollection, key, update, true); err != nil {
		return nil, err
	}

	conn.Status = models.StatusConnected
	conn.UpdatedAt = now
	return &conn, nil
}

// Remove deletes the relationship between the two users, whichever side
// initiated it. Removing an absent relationship is a no-op, not an error.
func (s *ConnectionService) Remove(ctx context.Context, userA, userB string) error {
	if userA == "" || userB == "" {
		return ErrMissingUserID
	}
	return s.store.Delete(ctx, storage.ConnectionsCollection, pairKey(userA, userB))
}

// GetStatus returns the relationship state between two users, direction
// agnostic. Absence reads as StatusNone.
func (s *ConnectionService) GetStatus(ctx context.Context, userA, userB string) (models.ConnectionStatus, error) {
	if userA == "" || userB == "" {
		return models.StatusNone, ErrMissingUserID
	}

	var conn models.Connection
	err := s.store.Get(ctx, storage.ConnectionsCollection, pairKey(userA, userB), &conn)
	if err == storage.ErrNotFound {
		return models.StatusNone, nil
	}
	if err != nil {
		return models.StatusNone, err
	}
	return conn.Status, nil
}

// ListConnections returns every relationship the user participates in, keyed
// by the counterpart so the same person never appears twice.
func (s *ConnectionService) ListConnections(ctx context.Context, userID string) ([]models.ConnectionEntry, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	var sent, received []models.Connection
	if err := s.store.QueryEquals(ctx, storage.ConnectionsCollection, "from_user_id", userID, &sent); err != nil {
		return nil, err
	}
	if err := s.store.QueryEquals(ctx, storage.ConnectionsCollection, "to_user_id", userID, &received); err != nil {
		return nil, err
	}

	byCounterpart := make(map[string]models.ConnectionEntry)
	for _, c := range sent {
		byCounterpart[c.ToUserID] = models.ConnectionEntry{
			UserID:    c.ToUserID,
			Status:    c.Status,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
	}
	for _, c := range received {
		byCounterpart[c.FromUserID] = models.ConnectionEntry{
			UserID:    c.FromUserID,
			Status:    c.Status,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
	}

	out := make([]models.ConnectionEntry, 0, len(byCounterpart))
	for _, entry := range byCounterpart {
		out = append(out, entry)
	}
	return out, nil
}
