// Package docstore implements the per-learner document store backing
// profiles, progress and exercise results. Documents are JSON bodies
// addressed by identity, collection and document ID, scoped to a single
// deployment namespace.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = errors.New("document not found")

// Document is a stored JSON document along with its address and the time
// of its last write
type Document struct {
	Identity   string
	Collection string
	ID         string
	Body       json.RawMessage
	UpdatedAt  time.Time
}

// Decode unmarshals the document body into v
func (d *Document) Decode(v interface{}) error {
	return json.Unmarshal(d.Body, v)
}

// Store defines the document operations used by the service layer
type Store interface {
	// Get returns the document at the given address, or ErrNotFound
	Get(ctx context.Context, identity, collection, id string) (*Document, error)

	// Set overwrites the document at the given address with the JSON
	// encoding of v, creating it if it does not exist
	Set(ctx context.Context, identity, collection, id string, v interface{}) error

	// Merge updates only the given top-level fields of the document,
	// creating the document from the fields if it does not exist
	Merge(ctx context.Context, identity, collection, id string, fields map[string]interface{}) error

	// Add appends v to the collection under a generated document ID and
	// returns that ID
	Add(ctx context.Context, identity, collection string, v interface{}) (string, error)

	// List returns up to limit documents from the collection, most
	// recently written first
	List(ctx context.Context, identity, collection string, limit int) ([]Document, error)

	// Watch subscribes to a single document. The current version, if the
	// document exists, is delivered first; later writes follow. Delivery
	// conflates so a slow consumer only ever sees the latest version.
	Watch(ctx context.Context, identity, collection, id string) (*Subscription, error)

	// Close releases all watch subscriptions. Any database handle behind
	// the store stays open and is owned by the caller.
	Close() error
}
