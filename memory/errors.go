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


package memory

import "errors"

var (
	// ErrDocumentRepositoryRequired indicates a nil document repository.
	ErrDocumentRepositoryRequired = errors.New("document repository is required")

	// ErrConceptRepositoryRequired indicates a nil concept repository.
	ErrConceptRepositoryRequired = errors.New("concept repository is required")

	// ErrEmbedderRequired indicates a nil embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidChunking indicates a chunk overlap >= chunk size.
	ErrInvalidChunking = errors.New("chunk overlap must be smaller than chunk size")

	// ErrEmptyQuery indicates a search with an empty query.
	ErrEmptyQuery = errors.New("query cannot be empty")
)
