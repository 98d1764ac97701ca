package cart

import (
	"context"
	"sync"
)

// Store keeps carts keyed by session id.
type Store interface {
	// Get returns the session's cart, or an empty one.
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is a process-local Store for single-instance deployments.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string]Cart{}}
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.carts[sessionID]
	out := Cart{RestaurantID: c.RestaurantID, Lines: append([]Line(nil), c.Lines...)}
	return &out, nil
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, c *Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.Empty() {
		delete(m.carts, sessionID)
		return nil
	}
	m.carts[sessionID] = Cart{RestaurantID: c.RestaurantID, Lines: append([]Line(nil), c.Lines...)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}
