package forest

import (
	"context"
	"sync"
)

/*
Store is an interface to manage a store where named forests can be
saved, retrieved and deleted.

All its methods take a context that may allow cancelling the operation
(thus forcing the return of an error) if the implementation allows it.
*/
type Store interface {
	// Get takes a name and returns the forest stored under it
	// (or nil if it cannot be found) or an error if the store
	// cannot be queried.
	Get(ctx context.Context, name string) (*Forest, error)
	// Put takes a name and a forest and stores the forest
	// under that name, replacing any forest previously stored
	// with it. It returns an error if the forest cannot be stored.
	Put(ctx context.Context, name string, f *Forest) error
	// Delete takes a name and deletes the forest stored under
	// it. It returns an error if the forest exists but the
	// deletion cannot be performed.
	Delete(ctx context.Context, name string) error
	// Close closes the store, implementations should free
	// any resources in use before returning (unless the context
	// expires). It returns an error if the Close cannot be
	// completed.
	Close(ctx context.Context) error
}

type memoryStore struct {
	mu      sync.RWMutex
	forests map[string]*Forest
}

/*
NewMemoryStore returns a Store keeping forests in the process memory.
Stored forests are shared, not copied, and are lost when the process
ends. Closing it keeps its forests.
*/
func NewMemoryStore() Store {
	return &memoryStore{forests: make(map[string]*Forest)}
}

func (ms *memoryStore) Get(ctx context.Context, name string) (*Forest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.forests[name], nil
}

func (ms *memoryStore) Put(ctx context.Context, name string, f *Forest) error {
	return ms.update(ctx, func() {
		ms.forests[name] = f
	})
}

func (ms *memoryStore) Delete(ctx context.Context, name string) error {
	return ms.update(ctx, func() {
		delete(ms.forests, name)
	})
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryStore) update(ctx context.Context, f func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	f()
	return nil
}
