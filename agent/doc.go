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


// Package agent implements the four pipeline processing units: ingestion,
// planning, generation, and quality assessment.
//
// Each agent is stateless between calls apart from an atomically updated
// Status, makes at most one generator or embedding capability call per
// Process, and returns a typed result or error, never a silent partial
// success. The orchestrator owns sequencing and retry policy; agents own
// their phase's work and local fallbacks.
package agent
