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


// Package fetch retrieves raw text from the source kinds didact ingests:
// literal text, local files, websites, and GitHub repositories.
package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/poiesic/didact/core"
)

var (
	// ErrUnsupportedKind indicates no fetcher is registered for a source kind.
	ErrUnsupportedKind = errors.New("unsupported source kind")

	// ErrEmptyDocument indicates the source yielded no usable text.
	ErrEmptyDocument = errors.New("source yielded no text")
)

// Result is the raw material fetched from one source.
type Result struct {
	// Title is a human-readable name derived from the source.
	Title string

	// Text is the extracted plain text.
	Text string

	// URL is the canonical location of the source, empty for literal text.
	URL string
}

// Fetcher retrieves the text of one source.
// Implementations must be thread-safe for concurrent use.
type Fetcher interface {
	// Fetch retrieves the source's content.
	// Returns ErrEmptyDocument if the source yields no usable text.
	Fetch(ctx context.Context, src core.Source) (Result, error)
}

// Registry dispatches sources to the fetcher for their kind.
type Registry struct {
	fetchers map[core.SourceKind]Fetcher
}

// NewRegistry creates a registry with the standard fetchers for every
// source kind. A GitHub token may be empty for anonymous API access.
func NewRegistry(githubToken string) *Registry {
	return &Registry{
		fetchers: map[core.SourceKind]Fetcher{
			core.SourceKindRawText:    NewTextFetcher(),
			core.SourceKindDocument:   NewDocumentFetcher(),
			core.SourceKindWebsite:    NewWebsiteFetcher(),
			core.SourceKindRepository: NewRepositoryFetcher(githubToken),
		},
	}
}

// Register sets the fetcher for a source kind, replacing any existing one.
func (r *Registry) Register(kind core.SourceKind, f Fetcher) {
	r.fetchers[kind] = f
}

// Fetch dispatches to the fetcher registered for the source's kind.
func (r *Registry) Fetch(ctx context.Context, src core.Source) (Result, error) {
	f, ok := r.fetchers[src.Kind]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, src.Kind)
	}
	return f.Fetch(ctx, src)
}
