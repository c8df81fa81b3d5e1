package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

func sample(title string) graph.Graph {
	return graph.Graph{
		Version:  graph.Version,
		Metadata: graph.Metadata{Title: title},
		Lanes:    []graph.Lane{{ID: "l", Title: "L"}},
		Nodes:    []graph.Node{{ID: "a", Lane: "l", Title: "A", W: graph.Coord(240)}},
	}
}

func TestNewDiagram(t *testing.T) {
	g := sample("Plant")
	d := NewDiagram(g, "h")
	if !ValidID(d.ID) {
		t.Errorf("ID %q is not a UUID", d.ID)
	}
	if d.Title != "Plant" || d.GraphHash != "h" || d.CreatedAt.IsZero() {
		t.Errorf("diagram = %+v", d)
	}
	*g.Nodes[0].W = 1
	if *d.Graph.Nodes[0].W != 240 {
		t.Error("diagram should not alias the input graph")
	}
}

func TestValidID(t *testing.T) {
	if ValidID("not-a-uuid") {
		t.Error("ValidID accepted garbage")
	}
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	d1, err := s.Create(ctx, sample("one"), "h1")
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	d2, err := s.Create(ctx, sample("two"), "h2")
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, d1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "one" || len(got.Graph.Nodes) != 1 {
		t.Errorf("Get = %+v", got)
	}

	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) < 2 || list[0].ID != d2.ID {
		t.Errorf("List should be newest first, got %d items", len(list))
	}
	if one, _ := s.List(ctx, 1); len(one) != 1 {
		t.Errorf("List(1) returned %d items", len(one))
	}

	if err := s.Delete(ctx, d1.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, d1.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, d1.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
	_ = s.Delete(ctx, d2.ID)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close(context.Background())
	exerciseStore(t, s)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	d, _ := s.Create(ctx, sample("x"), "")
	d.Graph.Nodes[0].Title = "changed"

	got, _ := s.Get(ctx, d.ID)
	if got.Graph.Nodes[0].Title != "A" {
		t.Error("store state was mutated through a returned diagram")
	}
}

func TestNewMongoStore_RequiresURI(t *testing.T) {
	if _, err := NewMongoStore(context.Background(), MongoConfig{}); err == nil {
		t.Error("expected error for empty uri")
	}
}

func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("ARCHDIAGRAM_TEST_MONGO")
	if uri == "" {
		t.Skip("ARCHDIAGRAM_TEST_MONGO not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "archdiagram_test"})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close(ctx)
	exerciseStore(t, s)
}
