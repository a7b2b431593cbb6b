package ledger

import (
	"context"
	"sync"
)

// Registry hands out one Ledger per owner. Ledgers are created and loaded on
// first acquire and disposed on release; there is no ambient singleton, the
// registry is passed explicitly to whatever needs it.
type Registry struct {
	store Store

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	once   sync.Once
	ledger *Ledger
}

func NewRegistry(store Store) *Registry {
	return &Registry{
		store:   store,
		entries: make(map[string]*registryEntry),
	}
}

// Acquire returns the owner's ledger, creating and loading it on first
// touch. Concurrent first acquires for the same owner share a single load;
// later callers block until it has settled.
func (r *Registry) Acquire(ctx context.Context, ownerID string) *Ledger {
	r.mu.Lock()

	e, ok := r.entries[ownerID]
	if !ok {
		e = &registryEntry{ledger: New(r.store, ownerID)}
		r.entries[ownerID] = e
	}
	r.mu.Unlock()

	e.once.Do(func() {
		e.ledger.Load(ctx)
	})

	return e.ledger
}

// Release drops the owner's ledger; the next acquire starts a fresh load.
func (r *Registry) Release(ownerID string) {
	r.mu.Lock()
	delete(r.entries, ownerID)
	r.mu.Unlock()
}
