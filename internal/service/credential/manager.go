package credential

import (
	"context"

	credrepo "github.com/ytscout/ytscout/internal/repository/credential"
)

// Manager couples the in-memory pool with its persistent store: the pool is
// seeded from the store once, and every mutation rewrites the stored list.
type Manager struct {
	pool *Pool
	repo credrepo.Repository
}

// NewManager creates a manager around an empty pool
func NewManager(repo credrepo.Repository) *Manager {
	return &Manager{
		pool: NewPool(nil),
		repo: repo,
	}
}

// Pool returns the managed pool
func (m *Manager) Pool() *Pool {
	return m.pool
}

// Load seeds the pool from the store, replacing its current contents
func (m *Manager) Load(ctx context.Context) error {
	keys, err := m.repo.Load(ctx)
	if err != nil {
		return err
	}
	m.pool = NewPool(keys)
	return nil
}

// Add parses raw key text into the pool and persists the new list
func (m *Manager) Add(ctx context.Context, raw string) (int, error) {
	added := m.pool.Add(raw)
	if added == 0 {
		return 0, nil
	}
	if err := m.repo.Replace(ctx, m.pool.Keys()); err != nil {
		return added, err
	}
	return added, nil
}

// Remove deletes the key at index and persists the new list
func (m *Manager) Remove(ctx context.Context, index int) error {
	if err := m.pool.Remove(index); err != nil {
		return err
	}
	return m.repo.Replace(ctx, m.pool.Keys())
}

// Clear empties the pool and the store
func (m *Manager) Clear(ctx context.Context) error {
	m.pool.Clear()
	return m.repo.Replace(ctx, nil)
}
