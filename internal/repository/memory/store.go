// Package memory provides an in-process repository.DocumentStore used as a
// test double for the MongoDB store. Documents are kept BSON-encoded so
// callers see the same types the driver would hand back.
package memory

import (
	"alcyxob/fitness-notes/internal/repository"
	"context"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store implements repository.DocumentStore in memory.
type Store struct {
	mu          sync.Mutex
	name        string
	collections map[string]*collection
	err         error
	writes      int
}

type collection struct {
	order []primitive.ObjectID
	docs  map[primitive.ObjectID]bson.Raw
}

var _ repository.DocumentStore = (*Store)(nil)

// NewStore returns an empty store reporting name as its database name.
func NewStore(name string) *Store {
	return &Store{name: name, collections: map[string]*collection{}}
}

// FailWith makes every later operation return err. A nil err clears it.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// WriteCount is the number of successful inserts, updates and deletes.
func (s *Store) WriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Store) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: map[primitive.ObjectID]bson.Raw{}}
		s.collections[name] = c
	}
	return c
}

func (s *Store) CreateDocument(_ context.Context, name string, document any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}

	raw, err := bson.Marshal(document)
	if err != nil {
		return "", err
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return "", err
	}

	id := primitive.NewObjectID()
	withID := bson.D{{Key: "_id", Value: id}}
	for _, e := range doc {
		if e.Key == "_id" {
			continue
		}
		withID = append(withID, e)
	}
	if raw, err = bson.Marshal(withID); err != nil {
		return "", err
	}

	c := s.coll(name)
	c.order = append(c.order, id)
	c.docs[id] = raw
	s.writes++
	return repository.FormatID(id), nil
}

// GetDocuments supports equality filters on top-level fields only.
func (s *Store) GetDocuments(_ context.Context, name string, filter repository.Document, limit int64) ([]repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	out := []repository.Document{}
	c, ok := s.collections[name]
	if !ok {
		return out, nil
	}
	for _, id := range c.order {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		doc, err := decode(c.docs[id])
		if err != nil {
			return nil, err
		}
		if matches(doc, filter) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *Store) FindDocument(_ context.Context, name string, id primitive.ObjectID) (repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	c, ok := s.collections[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	raw, ok := c.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return decode(raw)
}

func (s *Store) ReplaceFields(_ context.Context, name string, id primitive.ObjectID, set repository.Document, unset []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	c, ok := s.collections[name]
	if !ok {
		return repository.ErrNotFound
	}
	raw, ok := c.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}

	removed := map[string]bool{}
	for _, key := range unset {
		removed[key] = true
	}
	updated := bson.D{}
	seen := map[string]bool{}
	for _, e := range doc {
		if removed[e.Key] {
			continue
		}
		if v, ok := set[e.Key]; ok {
			e.Value = v
		}
		seen[e.Key] = true
		updated = append(updated, e)
	}
	// New keys are appended in a stable order.
	keys := make([]string, 0, len(set))
	for k := range set {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		updated = append(updated, bson.E{Key: k, Value: set[k]})
	}

	encoded, err := bson.Marshal(updated)
	if err != nil {
		return err
	}
	c.docs[id] = encoded
	s.writes++
	return nil
}

func (s *Store) DeleteDocument(_ context.Context, name string, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	c, ok := s.collections[name]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok := c.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	s.writes++
	return nil
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) ListCollectionNames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func decode(raw bson.Raw) (repository.Document, error) {
	var doc repository.Document
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func matches(doc, filter repository.Document) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(doc[k], want) {
			return false
		}
	}
	return true
}
