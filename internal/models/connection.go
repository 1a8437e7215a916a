package models

import "time"

// ConnectionStatus is the relationship state between two members. Absence of a
// connection document reads as StatusNone.
type ConnectionStatus string

const (
	StatusNone      ConnectionStatus = "none"
	StatusPending   ConnectionStatus = "pending"
	StatusConnected ConnectionStatus = "connected"
)

// Connection is one relationship document, keyed by the canonical pair id
// (lexicographically smaller user id first). FromUserID records who sent the
// request; only the recipient may accept.
type Connection struct {
	ID         string           `json:"id" bson:"_id"`
	FromUserID string           `json:"fromUserId" bson:"from_user_id"`
	ToUserID   string           `json:"toUserId" bson:"to_user_id"`
	Status     ConnectionStatus `json:"status" bson:"status"`
	CreatedAt  time.Time        `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" bson:"updated_at"`
}

// ConnectionEntry is one row of a member's connection list, keyed by the
// counterpart so a member never sees the same person twice.
type ConnectionEntry struct {
	UserID    string           `json:"userId"`
	Status    ConnectionStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
