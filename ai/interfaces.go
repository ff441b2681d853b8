package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces long-form text from a prompt.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate produces a completion for the request and returns the full text.
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// GenerateStream produces a completion, invoking fn for each streamed
	// chunk as it arrives. Returns the full accumulated text.
	// fn may be nil, in which case this behaves like Generate.
	GenerateStream(ctx context.Context, req GenerateRequest, fn StreamFunc) (string, error)
}

// StreamFunc receives streamed output chunks during generation.
// Returning an error aborts the stream.
type StreamFunc func(ctx context.Context, chunk []byte) error

// ConceptExtractor extracts key concept terms from text.
// Implementations must be thread-safe for concurrent use.
type ConceptExtractor interface {
	// ExtractConcepts analyzes text and returns the key concept terms,
	// lowercase, most important first.
	// Returns an empty slice if no concepts are found.
	// Returns an error if concept extraction fails.
	ExtractConcepts(ctx context.Context, text string) ([]string, error)
}

// QueryExpander rewrites a search query into multiple variations to
// widen semantic recall.
// Implementations must be thread-safe for concurrent use.
type QueryExpander interface {
	// ExpandQuery returns query variations for the given query, the
	// original phrasing included. Returns an error if expansion fails;
	// callers are expected to fall back to the original query alone.
	ExpandQuery(ctx context.Context, query string) ([]string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages the service instances, ensuring they share
// configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the text generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// ConceptExtractor returns the concept extraction service.
	// The returned ConceptExtractor is safe for concurrent use.
	ConceptExtractor() ConceptExtractor

	// QueryExpander returns the query expansion service.
	// The returned QueryExpander is safe for concurrent use.
	QueryExpander() QueryExpander

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
