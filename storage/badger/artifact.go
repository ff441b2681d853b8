package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/didact/core"
	"github.com/poiesic/didact/storage"
)

// ArtifactRepository implements storage.ArtifactRepository for BadgerDB.
type ArtifactRepository struct {
	backend *Backend
}

var _ storage.ArtifactRepository = (*ArtifactRepository)(nil)

// NewArtifactRepository creates a new ArtifactRepository.
func NewArtifactRepository(backend *Backend) (*ArtifactRepository, error) {
	return &ArtifactRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ArtifactRepository has no resources to release.
func (r *ArtifactRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ArtifactRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddArtifact stores the final artifact of a completed task.
func (r *ArtifactRepository) AddArtifact(ctx context.Context, artifact *core.Artifact) (*core.Artifact, error) {
	if artifact.CreatedAt.IsZero() {
		artifact.CreatedAt = time.Now().UTC()
	}
	if artifact.Id == 0 {
		artifact.Id = core.IDFromContent(artifact.TaskID + artifact.Content.Content)
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeArtifactKey(artifact.Id)
		if err := tx.Set(key, storage.MarshalArtifact(artifact)); err != nil {
			return err
		}

		// Task index
		taskKey := makeArtifactTaskKey(artifact.TaskID, artifact.Id)
		if err := tx.Set(taskKey, storage.MarshalID(artifact.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return artifact, nil
}

// GetArtifact retrieves a single artifact by ID.
func (r *ArtifactRepository) GetArtifact(ctx context.Context, id core.ID) (*core.Artifact, error) {
	var result *core.Artifact
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readArtifact(tx, makeArtifactKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetArtifactsByTask retrieves the artifacts produced for a task.
func (r *ArtifactRepository) GetArtifactsByTask(ctx context.Context, taskID string) ([]*core.Artifact, error) {
	var results []*core.Artifact
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var ids []core.ID
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialArtifactTaskKey(taskID)
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				iter.Close()
				return err
			}
			ids = append(ids, id)
		}
		iter.Close()

		for _, id := range ids {
			artifact, err := readArtifact(tx, makeArtifactKey(id))
			if err != nil {
				return err
			}
			if artifact != nil {
				results = append(results, artifact)
			}
		}
		return nil
	}, false)
	return results, err
}

// readArtifact reads an artifact from the transaction.
func readArtifact(tx *badger.Txn, key []byte) (*core.Artifact, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var artifact *core.Artifact
	err = item.Value(func(val []byte) error {
		var err error
		artifact, err = storage.UnmarshalArtifact(val)
		return err
	})
	return artifact, err
}
