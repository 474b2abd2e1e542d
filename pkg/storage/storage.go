// Package storage keeps a library of named hypergraph documents.
//
// Three backends implement [Store]:
//   - [FileStore]: one "<name>.json" file per document in a models directory
//   - [BadgerStore]: an embedded badger database in one directory
//   - [MongoStore]: one MongoDB record per document, stored as BSON
//
// Stores exchange documents as their JSON persisted form so callers can hand
// the bytes straight to the engine. Names are checked with
// [errors.ValidateDocumentName] before they touch a backend.
package storage

import (
	"context"
	"time"
)

// Store is a named document library.
type Store interface {
	// List returns the stored document names in ascending order.
	List(ctx context.Context) ([]string, error)

	// Get returns the persisted JSON of name. A missing document is a
	// NOT_FOUND error.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put stores raw under name, replacing any previous version.
	Put(ctx context.Context, name string, raw []byte) error

	// Delete removes name. Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close() error
}

// Info describes a stored document.
type Info struct {
	Name      string    `json:"name" bson:"_id"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
