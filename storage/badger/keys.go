package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/didact/core"
)

// Key prefixes for different data types
const (
	documentPrefix     = "srcdoc"
	chunkPrefix        = "chunk"
	conceptPrefix      = "conrec"
	conceptNamePrefix  = "conname"
	relationshipPrefix = "reldoc"
	artifactPrefix     = "artrec"
	artifactTaskPrefix = "arttask"
)

// makeDocumentKey generates a key for a source document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeChunkKey generates a composite key for a chunk.
// Format: prefix:documentID:index, both encoded BigEndian so a prefix
// scan over one document yields chunks in index order.
func makeChunkKey(documentID core.ID, index int) []byte {
	prefix := chunkPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(index))
	return buf
}

// makePartialChunkKey generates a partial key for scanning one document's chunks.
func makePartialChunkKey(documentID core.ID) []byte {
	prefix := chunkPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}

// makeConceptKey generates a key for a concept by ID.
func makeConceptKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", conceptPrefix, id))
}

// makeConceptNameKey generates a key for concept lookup by term.
func makeConceptNameKey(name string) []byte {
	return []byte(conceptNamePrefix + ":" + name)
}

// makeRelationshipKey generates a composite key for a relationship edge.
// Format: prefix:documentID:relationshipID, both BigEndian so a prefix
// scan yields one document's edges.
func makeRelationshipKey(documentID, relID core.ID) []byte {
	prefix := relationshipPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(relID))
	return buf
}

// makePartialRelationshipKey generates a partial key for scanning one
// document's relationship edges.
func makePartialRelationshipKey(documentID core.ID) []byte {
	prefix := relationshipPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}

// makeArtifactKey generates a key for an artifact by ID.
func makeArtifactKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", artifactPrefix, id))
}

// makeArtifactTaskKey generates a composite key for the task index.
// Format: prefix:taskID:artifactID.
func makeArtifactTaskKey(taskID string, artifactID core.ID) []byte {
	prefix := artifactTaskPrefix + ":" + taskID + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(artifactID))
	return buf
}

// makePartialArtifactTaskKey generates a partial key for scanning one
// task's artifacts.
func makePartialArtifactTaskKey(taskID string) []byte {
	return []byte(artifactTaskPrefix + ":" + taskID + ":")
}
