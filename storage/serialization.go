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


package storage

import (
	"github.com/poiesic/didact/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalDocument serializes a SourceDocument to bytes.
func MarshalDocument(doc *core.SourceDocument) []byte {
	buf := make([]byte, core.SourceDocumentMUS.Size(*doc))
	core.SourceDocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a SourceDocument from bytes.
func UnmarshalDocument(data []byte) (*core.SourceDocument, error) {
	doc, _, err := core.SourceDocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalChunk serializes a ContentChunk to bytes.
func MarshalChunk(chunk *core.ContentChunk) []byte {
	buf := make([]byte, core.ContentChunkMUS.Size(*chunk))
	core.ContentChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a ContentChunk from bytes.
func UnmarshalChunk(data []byte) (*core.ContentChunk, error) {
	chunk, _, err := core.ContentChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalConcept serializes a Concept to bytes.
func MarshalConcept(concept *core.Concept) []byte {
	buf := make([]byte, core.ConceptMUS.Size(*concept))
	core.ConceptMUS.Marshal(*concept, buf)
	return buf
}

// UnmarshalConcept deserializes a Concept from bytes.
func UnmarshalConcept(data []byte) (*core.Concept, error) {
	concept, _, err := core.ConceptMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &concept, nil
}

// MarshalRelationship serializes a Relationship to bytes.
func MarshalRelationship(rel *core.Relationship) []byte {
	buf := make([]byte, core.RelationshipMUS.Size(*rel))
	core.RelationshipMUS.Marshal(*rel, buf)
	return buf
}

// UnmarshalRelationship deserializes a Relationship from bytes.
func UnmarshalRelationship(data []byte) (*core.Relationship, error) {
	rel, _, err := core.RelationshipMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// MarshalArtifact serializes an Artifact to bytes.
func MarshalArtifact(artifact *core.Artifact) []byte {
	buf := make([]byte, core.ArtifactMUS.Size(*artifact))
	core.ArtifactMUS.Marshal(*artifact, buf)
	return buf
}

// UnmarshalArtifact deserializes an Artifact from bytes.
func UnmarshalArtifact(data []byte) (*core.Artifact, error) {
	artifact, _, err := core.ArtifactMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}
