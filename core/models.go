package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical
// content always maps to the same identity.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ContentType identifies the kind of educational artifact a task produces.
type ContentType int

const (
	// ContentTypeVideoScript produces a narrated script with timing markers.
	ContentTypeVideoScript ContentType = iota + 1
	// ContentTypeTutorial produces a step-by-step guide.
	ContentTypeTutorial
	// ContentTypeBookChapter produces a long-form chapter.
	ContentTypeBookChapter
	// ContentTypeInteractive produces content with quizzes and exercises.
	ContentTypeInteractive
)

// String returns the wire name of the content type.
func (t ContentType) String() string {
	switch t {
	case ContentTypeVideoScript:
		return "video-script"
	case ContentTypeTutorial:
		return "tutorial"
	case ContentTypeBookChapter:
		return "book-chapter"
	case ContentTypeInteractive:
		return "interactive"
	}
	return fmt.Sprintf("content-type(%d)", int(t))
}

// ParseContentType parses a wire name into a ContentType.
func ParseContentType(s string) (ContentType, error) {
	switch s {
	case "video-script":
		return ContentTypeVideoScript, nil
	case "tutorial":
		return ContentTypeTutorial, nil
	case "book-chapter":
		return ContentTypeBookChapter, nil
	case "interactive":
		return ContentTypeInteractive, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidContentType, s)
}

// ContentProfile holds the generation parameters associated with a content type.
type ContentProfile struct {
	SystemInstruction string
	FormatRules       string
	MinWords          int
	MaxWords          int
}

// Profile returns the generation profile for the content type.
// Unknown values fall back to the tutorial profile.
func (t ContentType) Profile() ContentProfile {
	switch t {
	case ContentTypeVideoScript:
		return ContentProfile{
			SystemInstruction: "You are an educational video scriptwriter with a clear, engaging voice. Maintain technical accuracy and progressive learning.",
			FormatRules:       "Format as a narrated script with timing markers (e.g. [00:00] Intro) and short spoken sentences.",
			MinWords:          300,
			MaxWords:          2000,
		}
	case ContentTypeBookChapter:
		return ContentProfile{
			SystemInstruction: "You are an educational author writing textbook chapters. Maintain technical accuracy and progressive learning.",
			FormatRules:       "Format as a chapter with titled sections, learning objectives up front, and a summary.",
			MinWords:          800,
			MaxWords:          5000,
		}
	case ContentTypeInteractive:
		return ContentProfile{
			SystemInstruction: "You are an educational content creator designing interactive lessons. Maintain technical accuracy and progressive learning.",
			FormatRules:       "Include quizzes, exercises, and checkpoints after each section.",
			MinWords:          400,
			MaxWords:          3000,
		}
	case ContentTypeTutorial:
		fallthrough
	default:
		return ContentProfile{
			SystemInstruction: "You are an educational content creator with a clear, engaging voice. Maintain technical accuracy and progressive learning.",
			FormatRules:       "Format as a step-by-step guide with worked examples.",
			MinWords:          400,
			MaxWords:          3000,
		}
	}
}

// SourceKind identifies where a knowledge source comes from.
type SourceKind int

const (
	// SourceKindWebsite is a URL to be crawled and text-extracted.
	SourceKindWebsite SourceKind = iota + 1
	// SourceKindRepository is a GitHub repository whose README and docs are ingested.
	SourceKindRepository
	// SourceKindRawText is literal text passed in the locator.
	SourceKindRawText
	// SourceKindDocument is a local file path.
	SourceKindDocument
)

// String returns the wire name of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceKindWebsite:
		return "website"
	case SourceKindRepository:
		return "repository"
	case SourceKindRawText:
		return "raw-text"
	case SourceKindDocument:
		return "document"
	}
	return fmt.Sprintf("source-kind(%d)", int(k))
}

// ParseSourceKind parses a wire name into a SourceKind.
func ParseSourceKind(s string) (SourceKind, error) {
	switch s {
	case "website":
		return SourceKindWebsite, nil
	case "repository":
		return SourceKindRepository, nil
	case "raw-text":
		return SourceKindRawText, nil
	case "document":
		return SourceKindDocument, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSourceKind, s)
}

// Document type classifications assigned at ingestion.
const (
	DocTypeTutorial  = "tutorial"
	DocTypeReference = "reference"
	DocTypeExample   = "example"
	DocTypeOverview  = "overview"
)

// DefaultRelationType is the relation tag used when none is given.
const DefaultRelationType = "related-to"

// Source describes one knowledge source of a task.
// A Source is owned by its Task and never mutated after ingestion begins.
type Source struct {
	Kind     SourceKind
	Locator  string // URL, repo URL, file path, or literal text depending on Kind
	Depth    int    // crawl depth for website sources
	Metadata map[string]string
}

// Task is a content generation request. Immutable once enqueued.
type Task struct {
	ID            string
	Topic         string
	ContentType   ContentType
	AudienceLevel string
	Tone          string
	Constraints   map[string]string
	Sources       []Source
	CreatedAt     time.Time
}

// SourceDocument is the result of ingesting one Source.
// Owned by the memory store once stored; chunks reference it by ID.
type SourceDocument struct {
	Id        ID
	Title     string
	Content   string
	Kind      SourceKind
	URL       string
	DocType   string
	Metadata  map[string]string
	CreatedAt time.Time
}

// ContentChunk is a fixed-size, overlapping slice of a SourceDocument's text.
// Chunk identity derives from the parent document ID and the chunk index.
// Chunks are created once, immutable, and deleted only with their parent.
type ContentChunk struct {
	Id         ID
	DocumentID ID
	Index      int
	Content    string
	Start      int // offset of the first byte in the parent document
	End        int // offset one past the last byte
	Vector     []float32
	CreatedAt  time.Time
}

// ChunkID returns the deterministic identity of a chunk.
func ChunkID(documentID ID, index int) ID {
	return IDFromContent(fmt.Sprintf("%d_chunk_%d", documentID, index))
}

// Concept is a short extracted term tied to the document it was first
// extracted from. Concept identity derives from the term itself, so the
// same term extracted twice resolves to one concept.
type Concept struct {
	Id         ID
	Name       string
	DocumentID ID
	Vector     []float32
	CreatedAt  time.Time
}

// ConceptID returns the deterministic identity of a concept term.
func ConceptID(name string) ID {
	return IDFromContent("(" + name + ")")
}

// Relationship is a directed labeled edge between two concepts.
// It exists only while both endpoint concepts exist.
type Relationship struct {
	Id         ID
	Concept1ID ID
	Concept2ID ID
	RelType    string
	CreatedAt  time.Time
}

// RelationshipID returns the deterministic identity of a relationship edge.
func RelationshipID(concept1, concept2 ID, relType string) ID {
	return IDFromContent(fmt.Sprintf("(%d,%d,%s)", concept1, concept2, relType))
}

// GeneratedContent is one candidate artifact produced by a generation
// iteration. Later iterations supersede, never mutate, earlier ones.
type GeneratedContent struct {
	Id                     ID
	Title                  string
	ContentType            ContentType
	Content                string
	SourceDocuments        []ID
	WordCount              int
	Iteration              int
	AppliedRecommendations []string
	CreatedAt              time.Time
}

// QualityReport is the metric bundle scored for one GeneratedContent.
// Accuracy, Completeness, Engagement, Structure, and FactualConsistency
// are on [0,1]; Readability and OverallScore are on [0,100].
type QualityReport struct {
	Accuracy           float64
	Completeness       float64
	Readability        float64
	Engagement         float64
	Structure          float64
	FactualConsistency float64
	OverallScore       float64
	Recommendations    []string
	CreatedAt          time.Time
}

// Artifact is the persisted (content, report) pair of a completed task.
type Artifact struct {
	Id        ID
	TaskID    string
	Content   GeneratedContent
	Report    QualityReport
	CreatedAt time.Time
}

// SearchResult is a chunk match from relevance search.
type SearchResult struct {
	Chunk *ContentChunk
	Score float32
}

// MemoryStats reports counters of the semantic memory store.
type MemoryStats struct {
	Documents     int
	Chunks        int
	Concepts      int
	Relationships int
}
