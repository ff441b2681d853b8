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


package orchestrator

import "errors"

var (
	// ErrNoContentIngested indicates every source of a task failed to ingest.
	ErrNoContentIngested = errors.New("no content ingested from any source")

	// ErrShuttingDown indicates a submission arrived after shutdown began.
	ErrShuttingDown = errors.New("orchestrator is shutting down")

	// ErrTaskNotFound indicates a status query for an unknown task ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAgentsRequired indicates the orchestrator was built without its agents.
	ErrAgentsRequired = errors.New("all four agents are required")

	// ErrStoreRequired indicates the orchestrator was built without a memory store.
	ErrStoreRequired = errors.New("memory store is required")

	// ErrArtifactRepositoryRequired indicates a missing artifact repository.
	ErrArtifactRepositoryRequired = errors.New("artifact repository is required")
)
