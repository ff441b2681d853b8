package storage

import (
	"context"

	"github.com/poiesic/didact/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository provides operations for managing source documents
// and their content chunks.
type DocumentRepository interface {
	Repository
	// AddDocument stores a document together with its chunks atomically.
	// Document and chunk IDs must already be populated (content-based).
	// Re-adding an existing document overwrites it and its chunks.
	AddDocument(ctx context.Context, doc *core.SourceDocument, chunks []*core.ContentChunk) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.SourceDocument, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.SourceDocument, error)

	// DeleteDocument removes a document and all of its chunks.
	// Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, id core.ID) error

	// GetChunks retrieves the chunks of a document, ordered by chunk index.
	GetChunks(ctx context.Context, documentID core.ID) ([]*core.ContentChunk, error)

	// SampleChunks returns up to limit stored chunks in storage order.
	// Used for bounded duplicate detection.
	SampleChunks(ctx context.Context, limit int) ([]*core.ContentChunk, error)

	// FindSimilarChunks finds chunks similar to the given vector.
	// Returns chunks with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilarChunks(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)
}

// ConceptRepository provides operations for managing concepts and
// the relationships between them.
type ConceptRepository interface {
	Repository
	// AddConcepts adds one or more concepts to storage.
	// Uses content-based IDs (ConceptID of the term), so re-adding an
	// existing term keeps the stored concept and returns it unchanged.
	// Returns the stored concepts, one per input, in input order.
	AddConcepts(ctx context.Context, concepts ...*core.Concept) ([]*core.Concept, error)

	// GetConcept retrieves a single concept by ID.
	// Returns ErrNotFound if the concept doesn't exist.
	GetConcept(ctx context.Context, id core.ID) (*core.Concept, error)

	// GetConcepts retrieves multiple concepts by their IDs.
	// Returns only the concepts that exist (no error for missing concepts).
	GetConcepts(ctx context.Context, ids ...core.ID) ([]*core.Concept, error)

	// FindConceptByName finds a concept by its term.
	// Returns ErrNotFound if no matching concept exists.
	FindConceptByName(ctx context.Context, name string) (*core.Concept, error)

	// AddRelationships stores relationship edges attributed to the given
	// document. Edges whose endpoint concepts don't exist are skipped.
	// Returns the edges that were stored.
	AddRelationships(ctx context.Context, documentID core.ID, rels ...*core.Relationship) ([]*core.Relationship, error)

	// GetRelationshipsByDocument retrieves the relationship edges
	// attributed to a document.
	GetRelationshipsByDocument(ctx context.Context, documentID core.ID) ([]*core.Relationship, error)

	// CountConcepts returns the number of stored concepts.
	CountConcepts(ctx context.Context) (int, error)

	// CountRelationships returns the number of stored relationship edges.
	CountRelationships(ctx context.Context) (int, error)
}

// ArtifactRepository provides operations for managing generated artifacts.
type ArtifactRepository interface {
	Repository
	// AddArtifact stores the final artifact of a completed task.
	AddArtifact(ctx context.Context, artifact *core.Artifact) (*core.Artifact, error)

	// GetArtifact retrieves a single artifact by ID.
	// Returns ErrNotFound if the artifact doesn't exist.
	GetArtifact(ctx context.Context, id core.ID) (*core.Artifact, error)

	// GetArtifactsByTask retrieves the artifacts produced for a task.
	GetArtifactsByTask(ctx context.Context, taskID string) ([]*core.Artifact, error)
}
