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


// Package memory implements the semantic memory store for didact.
//
// The Store is the sole writer of the semantic index. It owns four
// responsibilities:
//
//   - Chunking: splitting ingested documents into fixed, overlapping
//     windows and embedding each chunk.
//   - Duplicate detection: skipping documents whose full-text embedding
//     is near-identical to already-stored chunk content.
//   - Concept graph: storing extracted concept terms and the labeled
//     relationships between them.
//   - Relevance search: query expansion, vector scoring, and a
//     relationship-derived score bonus.
//
// # Usage
//
//	store, err := memory.NewStore(docRepo, conceptRepo,
//	    provider.Embedder(), provider.QueryExpander(),
//	    memory.WithChunking(1000, 200),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := store.StoreDocument(ctx, doc)
//	hits, err := store.SearchRelevantContent(ctx, "goroutines", 5, 0.3)
package memory
