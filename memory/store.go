package memory

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/poiesic/didact/ai"
	"github.com/poiesic/didact/core"
	"github.com/poiesic/didact/storage"
)

const (
	// DefaultChunkSize is the chunk window size in bytes.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the overlap between consecutive windows.
	DefaultChunkOverlap = 200

	// DefaultDedupThreshold is the cosine similarity at or above which a
	// new document counts as a duplicate of stored content.
	DefaultDedupThreshold = 0.95

	// DefaultDedupSampleCap bounds how many stored chunks duplicate
	// detection compares against.
	DefaultDedupSampleCap = 128

	// DefaultRelBonusPerEdge is the score bonus per relationship edge on
	// a result's parent document.
	DefaultRelBonusPerEdge = 0.05

	// DefaultRelBonusCap caps the total relationship bonus per result.
	DefaultRelBonusCap = 0.2
)

// Store is the semantic memory: source documents, their chunk embeddings,
// and the concept graph. It is the sole writer of the semantic index and
// is safe for concurrent use.
type Store struct {
	docs     storage.DocumentRepository
	concepts storage.ConceptRepository
	embedder ai.Embedder
	expander ai.QueryExpander

	chunkSize       int
	chunkOverlap    int
	dedupThreshold  float32
	dedupSampleCap  int
	relBonusPerEdge float32
	relBonusCap     float32

	logger *slog.Logger
}

// StoreResult reports the outcome of storing one document.
type StoreResult struct {
	// Stored is true when the document was written, false when it was
	// skipped as a duplicate.
	Stored bool

	// DocumentID is the identity of the document, populated either way.
	DocumentID core.ID

	// Chunks is the number of chunks written (zero when skipped).
	Chunks int
}

// Option configures a Store.
type Option func(*Store) error

// WithChunking sets the chunk window size and overlap.
// Overlap must be smaller than size.
func WithChunking(size, overlap int) Option {
	return func(s *Store) error {
		if size < 1 || overlap < 0 || overlap >= size {
			return ErrInvalidChunking
		}
		s.chunkSize = size
		s.chunkOverlap = overlap
		return nil
	}
}

// WithDedupThreshold sets the duplicate similarity threshold.
func WithDedupThreshold(threshold float32) Option {
	return func(s *Store) error {
		s.dedupThreshold = threshold
		return nil
	}
}

// WithDedupSampleCap bounds the stored chunks sampled for duplicate detection.
func WithDedupSampleCap(cap int) Option {
	return func(s *Store) error {
		if cap < 1 {
			cap = 1
		}
		s.dedupSampleCap = cap
		return nil
	}
}

// WithRelationshipBonus sets the per-edge search bonus and its cap.
func WithRelationshipBonus(perEdge, cap float32) Option {
	return func(s *Store) error {
		s.relBonusPerEdge = perEdge
		s.relBonusCap = cap
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates a semantic memory store.
func NewStore(
	docs storage.DocumentRepository,
	concepts storage.ConceptRepository,
	embedder ai.Embedder,
	expander ai.QueryExpander,
	opts ...Option,
) (*Store, error) {
	if docs == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if concepts == nil {
		return nil, ErrConceptRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Store{
		docs:            docs,
		concepts:        concepts,
		embedder:        embedder,
		expander:        expander,
		chunkSize:       DefaultChunkSize,
		chunkOverlap:    DefaultChunkOverlap,
		dedupThreshold:  DefaultDedupThreshold,
		dedupSampleCap:  DefaultDedupSampleCap,
		relBonusPerEdge: DefaultRelBonusPerEdge,
		relBonusCap:     DefaultRelBonusCap,
		logger:          slog.Default().With("component", "memory"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// StoreDocument validates, deduplicates, chunks, embeds, and stores a
// document. A duplicate of already-stored content is skipped, not an error.
func (s *Store) StoreDocument(ctx context.Context, doc *core.SourceDocument) (StoreResult, error) {
	if err := core.ValidateDocument(doc); err != nil {
		return StoreResult{}, err
	}

	if doc.Id == 0 {
		doc.Id = core.IDFromContent(doc.Content)
	}

	dup, err := s.IsDuplicate(ctx, doc)
	if err != nil {
		return StoreResult{}, err
	}
	if dup {
		s.logger.Info("skipping duplicate document", "title", doc.Title, "id", doc.Id)
		return StoreResult{Stored: false, DocumentID: doc.Id}, nil
	}

	spans := chunkSpans(len(doc.Content), s.chunkSize, s.chunkOverlap)
	texts := make([]string, len(spans))
	for i, sp := range spans {
		texts[i] = doc.Content[sp.Start:sp.End]
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return StoreResult{}, err
	}

	chunks := make([]*core.ContentChunk, len(spans))
	for i, sp := range spans {
		var vec []float32
		if i < len(vectors) {
			vec = vectors[i]
		}
		chunks[i] = &core.ContentChunk{
			Id:         core.ChunkID(doc.Id, i),
			DocumentID: doc.Id,
			Index:      i,
			Content:    texts[i],
			Start:      sp.Start,
			End:        sp.End,
			Vector:     vec,
		}
	}

	if err := s.docs.AddDocument(ctx, doc, chunks); err != nil {
		return StoreResult{}, err
	}

	s.logger.Info("stored document",
		"title", doc.Title,
		"id", doc.Id,
		"chunks", len(chunks))

	return StoreResult{Stored: true, DocumentID: doc.Id, Chunks: len(chunks)}, nil
}

// IsDuplicate reports whether the document's content is semantically
// equivalent to something already stored. It compares the full-text
// embedding against a bounded sample of stored chunk vectors.
func (s *Store) IsDuplicate(ctx context.Context, doc *core.SourceDocument) (bool, error) {
	vec, err := s.embedder.EmbedText(ctx, doc.Content)
	if err != nil {
		return false, err
	}
	if len(vec) == 0 {
		return false, nil
	}

	sample, err := s.docs.SampleChunks(ctx, s.dedupSampleCap)
	if err != nil {
		return false, err
	}

	for _, chunk := range sample {
		if cosineSimilarity(vec, chunk.Vector) >= s.dedupThreshold {
			return true, nil
		}
	}
	return false, nil
}

// StoreConcept embeds a concept term and stores it attributed to the
// document it was extracted from. Returns the concept's identity; a term
// stored before resolves to the existing concept.
func (s *Store) StoreConcept(ctx context.Context, term string, documentID core.ID) (core.ID, error) {
	vec, err := s.embedder.EmbedText(ctx, term)
	if err != nil {
		return 0, err
	}

	stored, err := s.concepts.AddConcepts(ctx, &core.Concept{
		Id:         core.ConceptID(term),
		Name:       term,
		DocumentID: documentID,
		Vector:     vec,
	})
	if err != nil {
		return 0, err
	}
	if len(stored) == 0 {
		return 0, storage.ErrNotFound
	}
	return stored[0].Id, nil
}

// StoreRelationship records a labeled edge between two concept terms.
// When either term is unknown the call is a no-op: ingestion never fails
// on a dangling edge.
func (s *Store) StoreRelationship(ctx context.Context, term1, term2, relType string) error {
	if relType == "" {
		relType = core.DefaultRelationType
	}

	c1, err := s.concepts.FindConceptByName(ctx, term1)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	c2, err := s.concepts.FindConceptByName(ctx, term2)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}

	// The edge is attributed to the document the first term came from.
	_, err = s.concepts.AddRelationships(ctx, c1.DocumentID, &core.Relationship{
		Concept1ID: c1.Id,
		Concept2ID: c2.Id,
		RelType:    relType,
	})
	return err
}

// Stats returns the semantic memory counters.
func (s *Store) Stats(ctx context.Context) (core.MemoryStats, error) {
	var stats core.MemoryStats
	var err error

	if stats.Documents, err = s.docs.CountDocuments(ctx); err != nil {
		return stats, err
	}
	if stats.Chunks, err = s.docs.CountChunks(ctx); err != nil {
		return stats, err
	}
	if stats.Concepts, err = s.concepts.CountConcepts(ctx); err != nil {
		return stats, err
	}
	if stats.Relationships, err = s.concepts.CountRelationships(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Unlike a raw dot product it is scale-invariant, so it works for
// embedders that don't return unit vectors.
func cosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	if minLen == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
