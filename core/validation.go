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


package core

import "fmt"

// ValidateTask validates a Task before it may be enqueued.
//
// Validation rules:
//   - Topic must not be empty
//   - ContentType must be a known value
//   - Sources must be non-empty and each must validate
//
// NOT validated (optional request fields):
//   - AudienceLevel, Tone, Constraints
func ValidateTask(task *Task) error {
	if task == nil {
		return fmt.Errorf("%w: task is nil", ErrInvalidTask)
	}

	if task.Topic == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrEmptyTopic)
	}

	switch task.ContentType {
	case ContentTypeVideoScript, ContentTypeTutorial, ContentTypeBookChapter, ContentTypeInteractive:
	default:
		return fmt.Errorf("%w: %w: value %d", ErrInvalidTask, ErrInvalidContentType, task.ContentType)
	}

	if len(task.Sources) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrNoSources)
	}

	for i := range task.Sources {
		if err := ValidateSource(&task.Sources[i]); err != nil {
			return fmt.Errorf("%w: source %d: %w", ErrInvalidTask, i, err)
		}
	}

	return nil
}

// ValidateSource validates a Source descriptor.
func ValidateSource(src *Source) error {
	if src == nil {
		return fmt.Errorf("%w: source is nil", ErrInvalidSource)
	}

	switch src.Kind {
	case SourceKindWebsite, SourceKindRepository, SourceKindRawText, SourceKindDocument:
	default:
		return fmt.Errorf("%w: %w: value %d", ErrInvalidSource, ErrInvalidSourceKind, src.Kind)
	}

	if src.Locator == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSource, ErrEmptyLocator)
	}

	return nil
}

// ValidateDocument validates a SourceDocument before it is stored.
//
// NOT validated (populated by the memory store):
//   - ID (derived from content on store)
func ValidateDocument(doc *SourceDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyTitle)
	}

	if doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	return nil
}
