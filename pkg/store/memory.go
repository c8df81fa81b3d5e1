package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

// MemoryStore keeps diagrams in a map guarded by a mutex.
type MemoryStore struct {
	mu       sync.RWMutex
	diagrams map[string]*Diagram
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{diagrams: make(map[string]*Diagram)}
}

func (s *MemoryStore) Create(ctx context.Context, g graph.Graph, graphHash string) (*Diagram, error) {
	d := NewDiagram(g, graphHash)
	s.mu.Lock()
	s.diagrams[d.ID] = d
	s.mu.Unlock()
	return copyDiagram(d), nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.diagrams[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDiagram(d), nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Diagram, error) {
	s.mu.RLock()
	out := make([]*Diagram, 0, len(s.diagrams))
	for _, d := range s.diagrams {
		out = append(out, copyDiagram(d))
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Diagram) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.diagrams[id]; !ok {
		return ErrNotFound
	}
	delete(s.diagrams, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func copyDiagram(d *Diagram) *Diagram {
	c := *d
	c.Graph = d.Graph.Clone()
	return &c
}

var _ Store = (*MemoryStore)(nil)
