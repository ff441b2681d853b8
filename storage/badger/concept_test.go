package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/didact/core"
	"github.com/poiesic/didact/storage"
)

func TestConceptBasics(t *testing.T) {
	_, conceptRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	docID := core.IDFromContent("doc")

	added, err := conceptRepo.AddConcepts(ctx, &core.Concept{
		Name:       "goroutine",
		DocumentID: docID,
		Vector:     []float32{1, 0},
	})
	if err != nil {
		t.Fatalf("Failed to add concept: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("Expected 1 concept, got %d", len(added))
	}
	if added[0].Id != core.ConceptID("goroutine") {
		t.Fatal("Expected content-based concept ID")
	}

	found, err := conceptRepo.FindConceptByName(ctx, "goroutine")
	if err != nil {
		t.Fatalf("FindConceptByName failed: %v", err)
	}
	if found.Id != added[0].Id {
		t.Fatal("Name lookup returned wrong concept")
	}

	if _, err := conceptRepo.FindConceptByName(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestConceptAddIsIdempotent(t *testing.T) {
	_, conceptRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	first, err := conceptRepo.AddConcepts(ctx, &core.Concept{
		Name:       "channel",
		DocumentID: core.IDFromContent("doc1"),
		Vector:     []float32{1, 0},
	})
	if err != nil {
		t.Fatalf("Failed to add concept: %v", err)
	}

	// Same term from a different document resolves to the stored concept.
	second, err := conceptRepo.AddConcepts(ctx, &core.Concept{
		Name:       "channel",
		DocumentID: core.IDFromContent("doc2"),
		Vector:     []float32{0, 1},
	})
	if err != nil {
		t.Fatalf("Failed to re-add concept: %v", err)
	}

	if second[0].Id != first[0].Id {
		t.Fatal("Re-adding a term created a second concept")
	}
	if second[0].DocumentID != first[0].DocumentID {
		t.Fatal("Re-adding a term overwrote the stored concept")
	}

	count, err := conceptRepo.CountConcepts(ctx)
	if err != nil {
		t.Fatalf("CountConcepts failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 concept, got %d", count)
	}
}

func TestRelationships(t *testing.T) {
	_, conceptRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	docID := core.IDFromContent("doc")

	_, err = conceptRepo.AddConcepts(ctx,
		&core.Concept{Name: "goroutine", DocumentID: docID},
		&core.Concept{Name: "channel", DocumentID: docID},
	)
	if err != nil {
		t.Fatalf("Failed to add concepts: %v", err)
	}

	stored, err := conceptRepo.AddRelationships(ctx, docID, &core.Relationship{
		Concept1ID: core.ConceptID("goroutine"),
		Concept2ID: core.ConceptID("channel"),
		RelType:    core.DefaultRelationType,
	})
	if err != nil {
		t.Fatalf("Failed to add relationship: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("Expected 1 stored edge, got %d", len(stored))
	}

	rels, err := conceptRepo.GetRelationshipsByDocument(ctx, docID)
	if err != nil {
		t.Fatalf("GetRelationshipsByDocument failed: %v", err)
	}
	if len(rels) != 1 {
		t.Fatalf("Expected 1 edge, got %d", len(rels))
	}
	if rels[0].RelType != core.DefaultRelationType {
		t.Fatalf("Expected %q, got %q", core.DefaultRelationType, rels[0].RelType)
	}
}

func TestRelationshipSkipsMissingEndpoint(t *testing.T) {
	_, conceptRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	docID := core.IDFromContent("doc")

	_, err = conceptRepo.AddConcepts(ctx, &core.Concept{Name: "goroutine", DocumentID: docID})
	if err != nil {
		t.Fatalf("Failed to add concept: %v", err)
	}

	// Second endpoint was never stored; the edge is silently skipped.
	stored, err := conceptRepo.AddRelationships(ctx, docID, &core.Relationship{
		Concept1ID: core.ConceptID("goroutine"),
		Concept2ID: core.ConceptID("never stored"),
		RelType:    core.DefaultRelationType,
	})
	if err != nil {
		t.Fatalf("AddRelationships failed: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("Expected 0 stored edges, got %d", len(stored))
	}

	count, err := conceptRepo.CountRelationships(ctx)
	if err != nil {
		t.Fatalf("CountRelationships failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("Expected 0 edges, got %d", count)
	}
}
