// Package store persists canonical diagrams for the HTTP server.
//
// Backends:
//   - [MemoryStore]: process-local, for development and tests
//   - [MongoStore]: MongoDB collection, for shared deployments
//
// Diagrams are immutable once created; IDs are random UUIDs.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

// ErrNotFound is returned when a diagram does not exist.
var ErrNotFound = errors.New("not found")

// DefaultListLimit caps List when the caller passes zero.
const DefaultListLimit = 50

// Diagram is a stored canonical graph.
type Diagram struct {
	ID        string      `json:"id" bson:"_id"`
	Title     string      `json:"title,omitempty" bson:"title,omitempty"`
	Graph     graph.Graph `json:"graph" bson:"graph"`
	GraphHash string      `json:"graph_hash,omitempty" bson:"graph_hash,omitempty"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

// Store is the interface for diagram storage backends.
type Store interface {
	// Create stores g under a new ID.
	Create(ctx context.Context, g graph.Graph, graphHash string) (*Diagram, error)

	// Get returns the diagram or ErrNotFound.
	Get(ctx context.Context, id string) (*Diagram, error)

	// List returns up to limit diagrams, newest first.
	List(ctx context.Context, limit int) ([]*Diagram, error)

	// Delete removes a diagram or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewDiagram builds a diagram with a fresh ID and creation time.
func NewDiagram(g graph.Graph, graphHash string) *Diagram {
	return &Diagram{
		ID:        uuid.NewString(),
		Title:     g.Metadata.Title,
		Graph:     g.Clone(),
		GraphHash: graphHash,
		CreatedAt: time.Now().UTC(),
	}
}

// ValidID reports whether id has the UUID form produced by NewDiagram.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
