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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTask indicates a Task failed validation before enqueue.
	ErrInvalidTask = errors.New("invalid task")

	// ErrEmptyTopic indicates the task topic is missing.
	ErrEmptyTopic = errors.New("topic is required")

	// ErrInvalidContentType indicates an unknown content type value.
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrNoSources indicates the task has no sources.
	ErrNoSources = errors.New("at least one source is required")

	// ErrInvalidSource indicates a Source failed validation.
	ErrInvalidSource = errors.New("invalid source")

	// ErrInvalidSourceKind indicates an unknown source kind value.
	ErrInvalidSourceKind = errors.New("invalid source kind")

	// ErrEmptyLocator indicates the source locator is missing.
	ErrEmptyLocator = errors.New("source locator cannot be empty")

	// ErrInvalidDocument indicates a SourceDocument failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyContent indicates the document content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyTitle indicates the document title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")
)
