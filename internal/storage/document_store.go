package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate document key")
)

// Collection names shared by both implementations.
const (
	UsersCollection       = "users"
	ConnectionsCollection = "connections"
)

// DocumentStore is the minimal key/document interface the workflow and
// directory layers run against. A document is any bson-marshalable value.
//
// Put with merge=false is a strict insert and fails with ErrDuplicateKey when
// the key already exists; with merge=true it set-merges the given fields into
// the existing document (creating it if absent). Delete is idempotent.
type DocumentStore interface {
	Put(ctx context.Context, collection, key string, doc interface{}, merge bool) error
	Get(ctx context.Context, collection, key string, dest interface{}) error
	Delete(ctx context.Context, collection, key string) error
	ListAll(ctx context.Context, collection string, dest interface{}) error
	QueryEquals(ctx context.Context, collection, field string, value interface{}, dest interface{}) error
	Close(ctx context.Context) error
}
