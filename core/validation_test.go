package core

import (
	"errors"
	"testing"
)

func TestValidateTask(t *testing.T) {
	validSources := []Source{
		{Kind: SourceKindRawText, Locator: "Some inline teaching material."},
	}

	tests := []struct {
		name    string
		task    *Task
		wantErr error
	}{
		{
			name: "valid task",
			task: &Task{
				Topic:       "Goroutines and channels",
				ContentType: ContentTypeTutorial,
				Sources:     validSources,
			},
			wantErr: nil,
		},
		{
			name: "valid task with optional fields",
			task: &Task{
				Topic:         "Goroutines and channels",
				ContentType:   ContentTypeVideoScript,
				AudienceLevel: "beginner",
				Tone:          "friendly",
				Constraints:   map[string]string{"max_words": "900"},
				Sources:       validSources,
			},
			wantErr: nil,
		},
		{
			name:    "nil task",
			task:    nil,
			wantErr: ErrInvalidTask,
		},
		{
			name: "empty topic",
			task: &Task{
				ContentType: ContentTypeTutorial,
				Sources:     validSources,
			},
			wantErr: ErrEmptyTopic,
		},
		{
			name: "invalid content type",
			task: &Task{
				Topic:       "Goroutines",
				ContentType: ContentType(42),
				Sources:     validSources,
			},
			wantErr: ErrInvalidContentType,
		},
		{
			name: "zero content type",
			task: &Task{
				Topic:   "Goroutines",
				Sources: validSources,
			},
			wantErr: ErrInvalidContentType,
		},
		{
			name: "no sources",
			task: &Task{
				Topic:       "Goroutines",
				ContentType: ContentTypeTutorial,
			},
			wantErr: ErrNoSources,
		},
		{
			name: "invalid source",
			task: &Task{
				Topic:       "Goroutines",
				ContentType: ContentTypeTutorial,
				Sources:     []Source{{Kind: SourceKindWebsite}},
			},
			wantErr: ErrEmptyLocator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTask(tt.task)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTask() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateTask() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTask() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name    string
		source  *Source
		wantErr error
	}{
		{
			name:    "valid website source",
			source:  &Source{Kind: SourceKindWebsite, Locator: "https://example.com/docs", Depth: 1},
			wantErr: nil,
		},
		{
			name:    "valid raw text source",
			source:  &Source{Kind: SourceKindRawText, Locator: "inline text"},
			wantErr: nil,
		},
		{
			name:    "nil source",
			source:  nil,
			wantErr: ErrInvalidSource,
		},
		{
			name:    "unknown kind",
			source:  &Source{Kind: SourceKind(7), Locator: "x"},
			wantErr: ErrInvalidSourceKind,
		},
		{
			name:    "empty locator",
			source:  &Source{Kind: SourceKindDocument},
			wantErr: ErrEmptyLocator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSource(tt.source)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSource() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSource() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *SourceDocument
		wantErr error
	}{
		{
			name: "valid document",
			doc: &SourceDocument{
				Title:   "Concurrency Patterns",
				Content: "Goroutines are lightweight threads managed by the Go runtime.",
				Kind:    SourceKindRawText,
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name: "empty title",
			doc: &SourceDocument{
				Content: "text",
			},
			wantErr: ErrEmptyTitle,
		},
		{
			name: "empty content",
			doc: &SourceDocument{
				Title: "Concurrency Patterns",
			},
			wantErr: ErrEmptyContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
