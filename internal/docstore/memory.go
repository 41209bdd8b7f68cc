package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryKey struct {
	identity   string
	collection string
	id         string
}

type memoryDoc struct {
	body      json.RawMessage
	updatedAt time.Time
}

// MemoryStore is an in-memory Store used by tests and local development
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[memoryKey]memoryDoc
	hub  *watchHub
}

// NewMemoryStore creates an empty in-memory document store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[memoryKey]memoryDoc),
		hub:  newWatchHub(),
	}
}

// Get returns the document at the given address, or ErrNotFound
func (s *MemoryStore) Get(ctx context.Context, identity, collection, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[memoryKey{identity, collection, id}]
	if !ok {
		return nil, ErrNotFound
	}

	return &Document{
		Identity:   identity,
		Collection: collection,
		ID:         id,
		Body:       append(json.RawMessage(nil), doc.body...),
		UpdatedAt:  doc.updatedAt,
	}, nil
}

// Set overwrites the document with the JSON encoding of v
func (s *MemoryStore) Set(ctx context.Context, identity, collection, id string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.docs[memoryKey{identity, collection, id}] = memoryDoc{body: body, updatedAt: now}
	s.mu.Unlock()

	s.hub.notify(watchKey(identity, collection, id), Document{
		Identity:   identity,
		Collection: collection,
		ID:         id,
		Body:       body,
		UpdatedAt:  now,
	})
	return nil
}

// Merge updates only the given top-level fields, creating the document
// from the fields if it does not exist
func (s *MemoryStore) Merge(ctx context.Context, identity, collection, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	key := memoryKey{identity, collection, id}
	now := time.Now().UTC()

	s.mu.Lock()
	merged := make(map[string]interface{})
	if existing, ok := s.docs[key]; ok {
		if err := json.Unmarshal(existing.body, &merged); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to decode existing document: %w", err)
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	body, err := json.Marshal(merged)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to encode merged document: %w", err)
	}
	s.docs[key] = memoryDoc{body: body, updatedAt: now}
	s.mu.Unlock()

	s.hub.notify(watchKey(identity, collection, id), Document{
		Identity:   identity,
		Collection: collection,
		ID:         id,
		Body:       body,
		UpdatedAt:  now,
	})
	return nil
}

// Add appends v to the collection under a generated document ID
func (s *MemoryStore) Add(ctx context.Context, identity, collection string, v interface{}) (string, error) {
	id := uuid.New().String()
	if err := s.Set(ctx, identity, collection, id, v); err != nil {
		return "", err
	}
	return id, nil
}

// List returns up to limit documents from the collection, most recently
// written first
func (s *MemoryStore) List(ctx context.Context, identity, collection string, limit int) ([]Document, error) {
	s.mu.RLock()
	var docs []Document
	for key, doc := range s.docs {
		if key.identity != identity || key.collection != collection {
			continue
		}
		docs = append(docs, Document{
			Identity:   identity,
			Collection: collection,
			ID:         key.id,
			Body:       append(json.RawMessage(nil), doc.body...),
			UpdatedAt:  doc.updatedAt,
		})
	}
	s.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UpdatedAt.Equal(docs[j].UpdatedAt) {
			return docs[i].UpdatedAt.After(docs[j].UpdatedAt)
		}
		return docs[i].ID < docs[j].ID
	})

	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// Watch subscribes to a single document
func (s *MemoryStore) Watch(ctx context.Context, identity, collection, id string) (*Subscription, error) {
	return s.hub.subscribe(watchKey(identity, collection, id), func() (Document, bool, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		doc, ok := s.docs[memoryKey{identity, collection, id}]
		if !ok {
			return Document{}, false, nil
		}
		return Document{
			Identity:   identity,
			Collection: collection,
			ID:         id,
			Body:       append(json.RawMessage(nil), doc.body...),
			UpdatedAt:  doc.updatedAt,
		}, true, nil
	})
}

// Close releases all watch subscriptions
func (s *MemoryStore) Close() error {
	s.hub.closeAll()
	return nil
}
