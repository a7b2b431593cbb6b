// Package memory is a map-backed document store. It backs tests and the
// no-database development mode; semantics mirror the postgres store.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/record"
)

type Store struct {
	mu   sync.Mutex
	docs map[string][]record.Document // keyed by collection

	// Fault injection for tests; a non-nil error fails the operation.
	ListErr   error
	AppendErr error
	UpdateErr error
}

func New() *Store {
	return &Store{docs: make(map[string][]record.Document)}
}

func (s *Store) List(_ context.Context, collection, ownerID string) ([]record.Document, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []record.Document

	for _, doc := range s.docs[collection] {
		if doc.OwnerID == ownerID {
			doc.Body = slices.Clone(doc.Body)
			out = append(out, doc)
		}
	}

	return out, nil
}

func (s *Store) Append(_ context.Context, collection string, doc record.Document) (string, error) {
	if s.AppendErr != nil {
		return "", s.AppendErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc.ID = uuid.NewString()
	doc.Body = slices.Clone(doc.Body)
	s.docs[collection] = append(s.docs[collection], doc)

	return doc.ID, nil
}

func (s *Store) Update(_ context.Context, collection, id string, doc record.Document) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.docs[collection] {
		if existing.ID == id {
			doc.ID = id
			doc.Body = slices.Clone(doc.Body)
			s.docs[collection][i] = doc

			return nil
		}
	}

	return ledger.ErrNotFound
}
