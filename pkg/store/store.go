// Package store persists transformed diagrams for sharing.
//
// A saved diagram pairs the original source with its PAD JSON under a
// generated ID, so a playground link can reproduce the exact diagram
// without re-running the transform. Two backends:
//   - memory: process-local, for development and tests
//   - mongo: MongoDB, for multi-instance deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a diagram does not exist.
var ErrNotFound = errors.New("not found")

// Diagram is one saved transformation result.
type Diagram struct {
	ID        string    `bson:"_id" json:"id"`
	Source    string    `bson:"source" json:"source"`
	PAD       string    `bson:"pad" json:"pad"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// New creates a diagram record with a fresh ID and creation timestamp.
func New(source, padJSON string) *Diagram {
	return &Diagram{
		ID:        uuid.NewString(),
		Source:    source,
		PAD:       padJSON,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface diagram backends implement.
type Store interface {
	// Put saves a diagram. Saving an existing ID overwrites it.
	Put(ctx context.Context, d *Diagram) error

	// Get retrieves a diagram by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Diagram, error)

	// Delete removes a diagram. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
