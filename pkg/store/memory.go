package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the snapshot in process memory, for tests and for
// running the gateway without durability.
type MemoryStore struct {
	mu   sync.Mutex
	snap Snapshot
	set  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return Snapshot{}, false, nil
	}
	return m.snap, true, nil
}

func (m *MemoryStore) Save(ctx context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	m.set = true
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = Snapshot{}
	m.set = false
	return nil
}
