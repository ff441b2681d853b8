package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/didact/core"
)

// TextFetcher handles raw-text sources: the locator is the text itself.
type TextFetcher struct{}

// NewTextFetcher creates a fetcher for literal text sources.
func NewTextFetcher() *TextFetcher {
	return &TextFetcher{}
}

// Fetch returns the locator as the document text.
func (f *TextFetcher) Fetch(ctx context.Context, src core.Source) (Result, error) {
	text := strings.TrimSpace(src.Locator)
	if text == "" {
		return Result{}, ErrEmptyDocument
	}

	title := src.Metadata["title"]
	if title == "" {
		title = firstWords(text, 8)
	}

	return Result{Title: title, Text: text}, nil
}

// DocumentFetcher handles local file sources: the locator is a path.
type DocumentFetcher struct{}

// NewDocumentFetcher creates a fetcher for local file sources.
func NewDocumentFetcher() *DocumentFetcher {
	return &DocumentFetcher{}
}

// Fetch reads the file at the locator path.
func (f *DocumentFetcher) Fetch(ctx context.Context, src core.Source) (Result, error) {
	data, err := os.ReadFile(src.Locator)
	if err != nil {
		return Result{}, fmt.Errorf("reading document %s: %w", src.Locator, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return Result{}, ErrEmptyDocument
	}

	title := src.Metadata["title"]
	if title == "" {
		title = filepath.Base(src.Locator)
	}

	return Result{Title: title, Text: text, URL: src.Locator}, nil
}

// firstWords returns up to n leading words of text as a title stand-in.
func firstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
