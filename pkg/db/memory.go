package db

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps table configs for the life of the process
type MemoryStore struct {
	lock    sync.RWMutex
	configs map[string]TableConfig
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		configs: make(map[string]TableConfig),
	}
}

// SaveTableConfig inserts or replaces the config
func (m *MemoryStore) SaveTableConfig(_ context.Context, cfg *TableConfig) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if cfg.Created.IsZero() {
		cfg.Created = time.Now().UTC()
	}

	m.configs[cfg.TableID] = *cfg
	return nil
}

// LoadTableConfig returns the config or ErrNotFound
func (m *MemoryStore) LoadTableConfig(_ context.Context, tableID string) (*TableConfig, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	cfg, ok := m.configs[tableID]
	if !ok {
		return nil, ErrNotFound
	}

	return &cfg, nil
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}
