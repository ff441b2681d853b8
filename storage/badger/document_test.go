package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/didact/core"
	"github.com/poiesic/didact/storage"
)

func makeTestDocument(content string) (*core.SourceDocument, []*core.ContentChunk) {
	doc := &core.SourceDocument{
		Id:      core.IDFromContent(content),
		Title:   "Test Document",
		Content: content,
		Kind:    core.SourceKindRawText,
		DocType: core.DocTypeTutorial,
	}

	half := len(content) / 2
	chunks := []*core.ContentChunk{
		{
			Id:         core.ChunkID(doc.Id, 0),
			DocumentID: doc.Id,
			Index:      0,
			Content:    content[:half],
			Start:      0,
			End:        half,
			Vector:     []float32{1, 0, 0},
		},
		{
			Id:         core.ChunkID(doc.Id, 1),
			DocumentID: doc.Id,
			Index:      1,
			Content:    content[half:],
			Start:      half,
			End:        len(content),
			Vector:     []float32{0, 1, 0},
		},
	}
	return doc, chunks
}

func TestDocumentBasics(t *testing.T) {
	docRepo, conceptRepo, artifactRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		artifactRepo.Close()
		conceptRepo.Close()
		docRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	doc, chunks := makeTestDocument("Goroutines are lightweight threads managed by the Go runtime.")

	if err := docRepo.AddDocument(ctx, doc, chunks); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	retrieved, err := docRepo.GetDocument(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if retrieved.Title != "Test Document" {
		t.Fatalf("Expected 'Test Document', got '%s'", retrieved.Title)
	}
	if retrieved.CreatedAt.IsZero() {
		t.Fatal("Expected CreatedAt to be populated")
	}

	got, err := docRepo.GetChunks(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get chunks: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(got))
	}
	if got[0].Index != 0 || got[1].Index != 1 {
		t.Fatalf("Chunks out of order: %d, %d", got[0].Index, got[1].Index)
	}
}

func TestDocumentNotFound(t *testing.T) {
	docRepo, _, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	if _, err := docRepo.GetDocument(ctx, 12345); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if err := docRepo.DeleteDocument(ctx, 12345); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDocumentDeleteCascadesChunks(t *testing.T) {
	docRepo, _, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	doc, chunks := makeTestDocument("Channels provide synchronized communication between goroutines.")

	if err := docRepo.AddDocument(ctx, doc, chunks); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	if err := docRepo.DeleteDocument(ctx, doc.Id); err != nil {
		t.Fatalf("Failed to delete document: %v", err)
	}

	got, err := docRepo.GetChunks(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get chunks: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Expected 0 chunks after delete, got %d", len(got))
	}

	count, err := docRepo.CountChunks(ctx)
	if err != nil {
		t.Fatalf("Failed to count chunks: %v", err)
	}
	if count != 0 {
		t.Fatalf("Expected chunk count 0, got %d", count)
	}
}

func TestFindSimilarChunks(t *testing.T) {
	docRepo, _, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	doc, chunks := makeTestDocument("The select statement waits on multiple channel operations at once.")

	if err := docRepo.AddDocument(ctx, doc, chunks); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	// Query vector aligned with the first chunk's vector.
	results, err := docRepo.FindSimilarChunks(ctx, []float32{1, 0, 0}, 0.5, 10)
	if err != nil {
		t.Fatalf("FindSimilarChunks failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Chunk.Index != 0 {
		t.Fatalf("Expected chunk 0, got %d", results[0].Chunk.Index)
	}
	if results[0].Score < 0.99 {
		t.Fatalf("Expected score ~1.0, got %f", results[0].Score)
	}

	// Lower threshold matches both; ordering is by score descending.
	results, err = docRepo.FindSimilarChunks(ctx, []float32{0.9, 0.1, 0}, 0.0, 10)
	if err != nil {
		t.Fatalf("FindSimilarChunks failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Score < results[1].Score {
		t.Fatal("Results not ordered by score descending")
	}
}

func TestSampleChunks(t *testing.T) {
	docRepo, _, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	doc, chunks := makeTestDocument("Mutexes guard shared state when channels are not a natural fit.")

	if err := docRepo.AddDocument(ctx, doc, chunks); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	sample, err := docRepo.SampleChunks(ctx, 1)
	if err != nil {
		t.Fatalf("SampleChunks failed: %v", err)
	}
	if len(sample) != 1 {
		t.Fatalf("Expected 1 sampled chunk, got %d", len(sample))
	}

	sample, err = docRepo.SampleChunks(ctx, 100)
	if err != nil {
		t.Fatalf("SampleChunks failed: %v", err)
	}
	if len(sample) != 2 {
		t.Fatalf("Expected 2 sampled chunks, got %d", len(sample))
	}
}
