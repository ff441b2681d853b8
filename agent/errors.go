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

import "errors"

var (
	// ErrContentTooShort indicates a fetched source was below the minimum
	// usable length for its kind.
	ErrContentTooShort = errors.New("source content too short")

	// ErrNoGeneratedText indicates the generator returned an empty result.
	ErrNoGeneratedText = errors.New("generator returned no text")

	// ErrFetcherRequired indicates an ingestion agent was built without a fetcher.
	ErrFetcherRequired = errors.New("fetcher is required")

	// ErrStoreRequired indicates an agent was built without a memory store.
	ErrStoreRequired = errors.New("memory store is required")

	// ErrGeneratorRequired indicates an agent was built without a generator.
	ErrGeneratorRequired = errors.New("generator is required")
)
