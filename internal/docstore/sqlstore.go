package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lingodrill/internal/database"
)

// SQLStore persists documents in the relational documents table. It works
// against any dialect supported by the database package.
type SQLStore struct {
	db        *database.DB
	namespace string
	hub       *watchHub
}

// NewSQLStore creates a document store over db, scoping every document to
// the given namespace
func NewSQLStore(db *database.DB, namespace string) *SQLStore {
	return &SQLStore{
		db:        db,
		namespace: namespace,
		hub:       newWatchHub(),
	}
}

// Get returns the document at the given address, or ErrNotFound
func (s *SQLStore) Get(ctx context.Context, identity, collection, id string) (*Document, error) {
	return getDocument(ctx, s.db, s.namespace, identity, collection, id)
}

// getDocument reads a single document. It accepts either *database.DB or
// *database.Tx so merges can read inside their transaction.
func getDocument(ctx context.Context, q database.DBTX, namespace, identity, collection, id string) (*Document, error) {
	query := "SELECT body, updated_at FROM documents WHERE namespace = ? AND identity = ? AND collection = ? AND doc_id = ?"

	var body string
	var updatedAt time.Time
	err := q.QueryRowContext(ctx, query, namespace, identity, collection, id).Scan(&body, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	return &Document{
		Identity:   identity,
		Collection: collection,
		ID:         id,
		Body:       json.RawMessage(body),
		UpdatedAt:  updatedAt,
	}, nil
}

// Set overwrites the document with the JSON encoding of v
func (s *SQLStore) Set(ctx context.Context, identity, collection, id string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	upsert := s.db.Dialect.UpsertDocumentQuery()
	if _, err := s.db.ExecContext(ctx, upsert, s.namespace, identity, collection, id, string(body)); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	s.hub.notify(watchKey(identity, collection, id), Document{
		Identity:   identity,
		Collection: collection,
		ID:         id,
		Body:       body,
		UpdatedAt:  time.Now().UTC(),
	})
	return nil
}

// Merge updates only the given top-level fields, creating the document
// from the fields if it does not exist. The read-modify-write runs in a
// transaction.
func (s *SQLStore) Merge(ctx context.Context, identity, collection, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin merge: %w", err)
	}
	defer tx.Rollback()

	merged := make(map[string]interface{})
	existing, err := getDocument(ctx, tx, s.namespace, identity, collection, id)
	switch {
	case err == nil:
		if err := json.Unmarshal(existing.Body, &merged); err != nil {
			return fmt.Errorf("failed to decode existing document: %w", err)
		}
	case errors.Is(err, ErrNotFound):
		// Merging into a missing document creates it
	default:
		return err
	}

	for k, v := range fields {
		merged[k] = v
	}

	body, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to encode merged document: %w", err)
	}

	upsert := tx.GetDialect().UpsertDocumentQuery()
	if _, err := tx.ExecContext(ctx, upsert, s.namespace, identity, collection, id, string(body)); err != nil {
		return fmt.Errorf("failed to write merged document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit merge: %w", err)
	}

	s.hub.notify(watchKey(identity, collection, id), Document{
		Identity:   identity,
		Collection: collection,
		ID:         id,
		Body:       body,
		UpdatedAt:  time.Now().UTC(),
	})
	return nil
}

// Add appends v to the collection under a generated document ID
func (s *SQLStore) Add(ctx context.Context, identity, collection string, v interface{}) (string, error) {
	id := uuid.New().String()
	if err := s.Set(ctx, identity, collection, id, v); err != nil {
		return "", err
	}
	return id, nil
}

// List returns up to limit documents from the collection, most recently
// written first
func (s *SQLStore) List(ctx context.Context, identity, collection string, limit int) ([]Document, error) {
	query := "SELECT doc_id, body, updated_at FROM documents WHERE namespace = ? AND identity = ? AND collection = ? ORDER BY updated_at DESC, doc_id LIMIT ?"

	rows, err := s.db.QueryContext(ctx, query, s.namespace, identity, collection, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var body string
		if err := rows.Scan(&doc.ID, &body, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Identity = identity
		doc.Collection = collection
		doc.Body = json.RawMessage(body)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// Watch subscribes to a single document
func (s *SQLStore) Watch(ctx context.Context, identity, collection, id string) (*Subscription, error) {
	return s.hub.subscribe(watchKey(identity, collection, id), func() (Document, bool, error) {
		doc, err := getDocument(ctx, s.db, s.namespace, identity, collection, id)
		if errors.Is(err, ErrNotFound) {
			return Document{}, false, nil
		}
		if err != nil {
			return Document{}, false, err
		}
		return *doc, true, nil
	})
}

// Close releases all watch subscriptions. The database handle is owned by
// the caller and stays open.
func (s *SQLStore) Close() error {
	s.hub.closeAll()
	return nil
}
