// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/didact/ai"
	"github.com/poiesic/didact/core"
	"github.com/poiesic/didact/fetch"
	"github.com/poiesic/didact/memory"
)

const (
	// minRawTextLength is the minimum usable length for literal text and
	// local documents.
	minRawTextLength = 100

	// minFetchedLength is the minimum usable length for crawled websites
	// and repositories, whose extraction is noisier.
	minFetchedLength = 500
)

// SourceFetcher retrieves the raw text of one source.
// fetch.Registry is the standard implementation.
type SourceFetcher interface {
	Fetch(ctx context.Context, src core.Source) (fetch.Result, error)
}

// IngestResult reports what one source contributed to memory.
type IngestResult struct {
	DocumentID core.ID
	Title      string

	// Skipped is true when the content duplicated something already stored.
	Skipped bool

	// Chunks is the number of chunks written (zero when skipped).
	Chunks int

	// Concepts is the number of concept terms extracted and stored.
	Concepts int
}

// Ingestion fetches a source, classifies it, stores it in semantic
// memory, and populates the concept graph from its text.
type Ingestion struct {
	base
	fetcher   SourceFetcher
	store     *memory.Store
	extractor ai.ConceptExtractor
	logger    *slog.Logger
}

// NewIngestion creates the ingestion agent. The extractor may be nil, in
// which case concept graph population is skipped.
func NewIngestion(fetcher SourceFetcher, store *memory.Store, extractor ai.ConceptExtractor) (*Ingestion, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	return &Ingestion{
		base:      base{name: "ingestion"},
		fetcher:   fetcher,
		store:     store,
		extractor: extractor,
		logger:    slog.Default().With("agent", "ingestion"),
	}, nil
}

// Process ingests one source into semantic memory.
func (a *Ingestion) Process(ctx context.Context, src core.Source) (result IngestResult, err error) {
	a.setStatus(StatusProcessing)
	defer func() { a.finish(err) }()

	if err = core.ValidateSource(&src); err != nil {
		return IngestResult{}, err
	}

	fetched, err := a.fetcher.Fetch(ctx, src)
	if err != nil {
		return IngestResult{}, fmt.Errorf("fetching %s source: %w", src.Kind, err)
	}

	if len(fetched.Text) < minLengthFor(src.Kind) {
		return IngestResult{}, fmt.Errorf("%w: %s yielded %d bytes, need %d",
			ErrContentTooShort, src.Kind, len(fetched.Text), minLengthFor(src.Kind))
	}

	doc := &core.SourceDocument{
		Title:    fetched.Title,
		Content:  fetched.Text,
		Kind:     src.Kind,
		URL:      fetched.URL,
		DocType:  classifyDocType(fetched.Title, fetched.Text),
		Metadata: src.Metadata,
	}

	stored, err := a.store.StoreDocument(ctx, doc)
	if err != nil {
		return IngestResult{}, fmt.Errorf("storing document: %w", err)
	}

	result = IngestResult{
		DocumentID: stored.DocumentID,
		Title:      doc.Title,
		Skipped:    !stored.Stored,
		Chunks:     stored.Chunks,
	}
	if !stored.Stored {
		return result, nil
	}

	result.Concepts = a.populateConcepts(ctx, doc.Content, stored.DocumentID)
	return result, nil
}

// populateConcepts extracts key terms and links consecutive terms in the
// concept graph. Extraction failure degrades to an empty graph
// contribution; it never fails the ingestion.
func (a *Ingestion) populateConcepts(ctx context.Context, text string, documentID core.ID) int {
	if a.extractor == nil {
		return 0
	}

	terms, err := a.extractor.ExtractConcepts(ctx, text)
	if err != nil {
		a.logger.Warn("concept extraction failed", "document", documentID, "err", err)
		return 0
	}

	stored := 0
	for _, term := range terms {
		if _, err := a.store.StoreConcept(ctx, term, documentID); err != nil {
			a.logger.Warn("storing concept failed", "term", term, "err", err)
			continue
		}
		stored++
	}

	for i := 0; i+1 < len(terms); i++ {
		if err := a.store.StoreRelationship(ctx, terms[i], terms[i+1], core.DefaultRelationType); err != nil {
			a.logger.Warn("storing relationship failed",
				"term1", terms[i], "term2", terms[i+1], "err", err)
		}
	}
	return stored
}

func minLengthFor(kind core.SourceKind) int {
	switch kind {
	case core.SourceKindWebsite, core.SourceKindRepository:
		return minFetchedLength
	default:
		return minRawTextLength
	}
}

// classifyDocType assigns a coarse document class from title and text cues.
func classifyDocType(title, text string) string {
	probe := strings.ToLower(title)
	if len(text) > 2000 {
		text = text[:2000]
	}
	probe += " " + strings.ToLower(text)

	switch {
	case strings.Contains(probe, "tutorial"), strings.Contains(probe, "how to"),
		strings.Contains(probe, "step by step"), strings.Contains(probe, "getting started"):
		return core.DocTypeTutorial
	case strings.Contains(probe, "reference"), strings.Contains(probe, "api"),
		strings.Contains(probe, "specification"):
		return core.DocTypeReference
	case strings.Contains(probe, "example"), strings.Contains(probe, "sample"):
		return core.DocTypeExample
	default:
		return core.DocTypeOverview
	}
}
