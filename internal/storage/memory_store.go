package storage

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

var errBadListDest = errors.New("dest must be a pointer to a slice")

// MemoryStore is an in-process DocumentStore used in dev mode and tests.
// Documents round-trip through bson so both implementations see identical
// field names and merge behavior.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]bson.Raw
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]bson.Raw),
	}
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// col lazily creates the collection map. Caller must hold the write lock;
// readers index s.collections directly so they stay safe under RLock.
func (s *MemoryStore) col(collection string) map[string]bson.Raw {
	c, ok := s.collections[collection]
	if !ok {
		c = make(map[string]bson.Raw)
		s.collections[collection] = c
	}
	return c
}

func (s *MemoryStore) Put(ctx context.Context, collection, key string, doc interface{}, merge bool) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.col(collection)
	existing, exists := c[key]

	if !merge {
		if exists {
			return ErrDuplicateKey
		}
		c[key] = raw
		return nil
	}

	if !exists {
		c[key] = raw
		return nil
	}

	// Top-level set-merge, matching Mongo's $set on the same fields.
	var base, updates bson.M
	if err := bson.Unmarshal(existing, &base); err != nil {
		return err
	}
	if err := bson.Unmarshal(raw, &updates); err != nil {
		return err
	}
	for k, v := range updates {
		base[k] = v
	}
	merged, err := bson.Marshal(base)
	if err != nil {
		return err
	}
	c[key] = merged
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, key string, dest interface{}) error {
	s.mu.RLock()
	raw, ok := s.collections[collection][key]
	s.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	return bson.Unmarshal(raw, dest)
}

func (s *MemoryStore) Delete(ctx context.Context, collection, key string) error {
	s.mu.Lock()
	delete(s.col(collection), key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ListAll(ctx context.Context, collection string, dest interface{}) error {
	s.mu.RLock()
	docs := make([]bson.Raw, 0, len(s.collections[collection]))
	for _, raw := range s.collections[collection] {
		docs = append(docs, raw)
	}
	s.mu.RUnlock()

	return decodeAll(docs, dest)
}

func (s *MemoryStore) QueryEquals(ctx context.Context, collection, field string, value interface{}, dest interface{}) error {
	s.mu.RLock()
	docs := make([]bson.Raw, 0)
	for _, raw := range s.collections[collection] {
		var m bson.M
		if err := bson.Unmarshal(raw, &m); err != nil {
			s.mu.RUnlock()
			return err
		}
		// Scalar equality; all query fields in this system are strings.
		if m[field] == value {
			docs = append(docs, raw)
		}
	}
	s.mu.RUnlock()

	return decodeAll(docs, dest)
}

// decodeAll unmarshals each raw document into a new element of the slice that
// dest points at.
func decodeAll(docs []bson.Raw, dest interface{}) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return errBadListDest
	}

	slice := v.Elem()
	out := reflect.MakeSlice(slice.Type(), 0, len(docs))
	elemType := slice.Type().Elem()

	for _, raw := range docs {
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		out = reflect.Append(out, elem.Elem())
	}
	slice.Set(out)
	return nil
}
