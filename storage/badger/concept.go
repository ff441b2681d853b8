package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/didact/core"
	"github.com/poiesic/didact/storage"
)

// ConceptRepository implements storage.ConceptRepository for BadgerDB.
type ConceptRepository struct {
	backend *Backend
}

var _ storage.ConceptRepository = (*ConceptRepository)(nil)

// NewConceptRepository creates a new ConceptRepository.
func NewConceptRepository(backend *Backend) (*ConceptRepository, error) {
	return &ConceptRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ConceptRepository has no resources to release.
func (r *ConceptRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ConceptRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddConcepts adds one or more concepts to storage. A term that already
// exists keeps its stored concept; the stored version is returned.
func (r *ConceptRepository) AddConcepts(ctx context.Context, concepts ...*core.Concept) ([]*core.Concept, error) {
	result := make([]*core.Concept, 0, len(concepts))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, concept := range concepts {
			if concept.Id == 0 {
				concept.Id = core.ConceptID(concept.Name)
			}

			key := makeConceptKey(concept.Id)
			existing, err := readConcept(tx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				result = append(result, existing)
				continue
			}

			if concept.CreatedAt.IsZero() {
				concept.CreatedAt = time.Now().UTC()
			}

			if err := tx.Set(key, storage.MarshalConcept(concept)); err != nil {
				return err
			}

			// Name index
			nameKey := makeConceptNameKey(concept.Name)
			if err := tx.Set(nameKey, storage.MarshalID(concept.Id)); err != nil {
				return err
			}

			result = append(result, concept)
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetConcept retrieves a single concept by ID.
func (r *ConceptRepository) GetConcept(ctx context.Context, id core.ID) (*core.Concept, error) {
	var result *core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readConcept(tx, makeConceptKey(id))
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

// GetConcepts retrieves multiple concepts by their IDs.
func (r *ConceptRepository) GetConcepts(ctx context.Context, ids ...core.ID) ([]*core.Concept, error) {
	var result []*core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			concept, err := readConcept(tx, makeConceptKey(id))
			if err != nil {
				return err
			}
			if concept != nil {
				result = append(result, concept)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindConceptByName finds a concept by its term.
func (r *ConceptRepository) FindConceptByName(ctx context.Context, name string) (*core.Concept, error) {
	var result *core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeConceptNameKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var conceptID core.ID
		err = item.Value(func(val []byte) error {
			conceptID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readConcept(tx, makeConceptKey(conceptID))
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

// AddRelationships stores relationship edges attributed to a document.
// Edges whose endpoint concepts don't exist are skipped.
func (r *ConceptRepository) AddRelationships(ctx context.Context, documentID core.ID, rels ...*core.Relationship) ([]*core.Relationship, error) {
	var stored []*core.Relationship

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, rel := range rels {
			if rel.Id == 0 {
				rel.Id = core.RelationshipID(rel.Concept1ID, rel.Concept2ID, rel.RelType)
			}

			c1, err := readConcept(tx, makeConceptKey(rel.Concept1ID))
			if err != nil {
				return err
			}
			c2, err := readConcept(tx, makeConceptKey(rel.Concept2ID))
			if err != nil {
				return err
			}
			if c1 == nil || c2 == nil {
				continue
			}

			if rel.CreatedAt.IsZero() {
				rel.CreatedAt = time.Now().UTC()
			}

			key := makeRelationshipKey(documentID, rel.Id)
			if err := tx.Set(key, storage.MarshalRelationship(rel)); err != nil {
				return err
			}
			stored = append(stored, rel)
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GetRelationshipsByDocument retrieves the relationship edges attributed
// to a document.
func (r *ConceptRepository) GetRelationshipsByDocument(ctx context.Context, documentID core.ID) ([]*core.Relationship, error) {
	var results []*core.Relationship
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialRelationshipKey(documentID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var rel *core.Relationship
			err := iter.Item().Value(func(val []byte) error {
				var err error
				rel, err = storage.UnmarshalRelationship(val)
				return err
			})
			if err != nil {
				return err
			}
			if rel != nil {
				results = append(results, rel)
			}
		}
		return nil
	}, false)
	return results, err
}

// CountConcepts returns the number of stored concepts.
func (r *ConceptRepository) CountConcepts(ctx context.Context) (int, error) {
	return r.backend.countKeys([]byte(conceptPrefix + ":"))
}

// CountRelationships returns the number of stored relationship edges.
func (r *ConceptRepository) CountRelationships(ctx context.Context) (int, error) {
	return r.backend.countKeys([]byte(relationshipPrefix + ":"))
}

// readConcept reads a concept from the transaction.
func readConcept(tx *badger.Txn, key []byte) (*core.Concept, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var concept *core.Concept
	err = item.Value(func(val []byte) error {
		var err error
		concept, err = storage.UnmarshalConcept(val)
		return err
	})
	return concept, err
}
