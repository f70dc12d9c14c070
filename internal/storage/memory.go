package storage

import (
	"context"
	"sync"

	"github.com/ytkg/orders/internal/domain"
)

// MemoryVisitorStore is an in-memory VisitorStore used when no Redis is
// configured and as a fake in tests. Attributes are accepted and ignored.
type MemoryVisitorStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryVisitorStore() *MemoryVisitorStore {
	return &MemoryVisitorStore{values: make(map[string]string)}
}

func (s *MemoryVisitorStore) Read(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *MemoryVisitorStore) Write(ctx context.Context, key, value string, attrs Attributes) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

var _ VisitorStore = (*MemoryVisitorStore)(nil)

// MemoryMenuRepository serves a static menu catalog.
type MemoryMenuRepository struct {
	items []domain.MenuItem
}

// NewMemoryMenuRepository copies the given catalog; a nil catalog falls
// back to the built-in drink menu.
func NewMemoryMenuRepository(items []domain.MenuItem) *MemoryMenuRepository {
	if items == nil {
		items = domain.DefaultMenuItems()
	}
	copied := make([]domain.MenuItem, len(items))
	copy(copied, items)
	return &MemoryMenuRepository{items: copied}
}

func (r *MemoryMenuRepository) ListMenuItems() ([]domain.MenuItem, error) {
	out := make([]domain.MenuItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

// GetMenuItem returns (nil, nil) when the id is unknown.
func (r *MemoryMenuRepository) GetMenuItem(menuID int) (*domain.MenuItem, error) {
	for _, item := range r.items {
		if item.ID == menuID {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}
