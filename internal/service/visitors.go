package service

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/ytkg/orders/internal/domain"
	"github.com/ytkg/orders/internal/storage"
)

// OrderCustomerClearer is the one engine operation visitor removal
// cascades into.
type OrderCustomerClearer interface {
	ClearOrdersByCustomer(customer string)
}

// VisitorService keeps the visitor registry in memory and writes it
// through the storage port on every mutation. Names are unique after
// trimming; removal clears the customer field on matching draft orders
// instead of deleting them.
type VisitorService struct {
	store storage.VisitorStore
	ids   IDGenerator
	memo  OrderCustomerClearer

	mu       sync.Mutex
	visitors []domain.Visitor
}

// NewVisitorService hydrates the registry from the store once. A store
// that cannot be read yields an empty registry.
func NewVisitorService(ctx context.Context, store storage.VisitorStore, ids IDGenerator, memo OrderCustomerClearer) *VisitorService {
	return &VisitorService{
		store:    store,
		ids:      ids,
		memo:     memo,
		visitors: storage.ReadVisitors(ctx, store),
	}
}

func (s *VisitorService) Visitors() []domain.Visitor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Visitor, len(s.visitors))
	copy(out, s.visitors)
	return out
}

// AddVisitor trims the name and appends a new visitor. Whitespace-only
// names fail with ErrEmptyVisitorName; an exact match against an existing
// name fails with ErrDuplicateVisitorName and leaves the registry
// unchanged.
func (s *VisitorService) AddVisitor(ctx context.Context, rawName string) (domain.Visitor, error) {
	normalized := strings.TrimSpace(rawName)
	if normalized == "" {
		return domain.Visitor{}, ErrEmptyVisitorName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, visitor := range s.visitors {
		if visitor.Name == normalized {
			return domain.Visitor{}, ErrDuplicateVisitorName
		}
	}

	added := domain.Visitor{
		ID:   s.ids.Generate("visitor"),
		Name: normalized,
	}
	s.visitors = append(s.visitors, added)
	s.persist(ctx)
	return added, nil
}

// RemoveVisitor drops the visitor and clears the customer field on every
// draft order attributed to it. Unknown ids are a no-op.
func (s *VisitorService) RemoveVisitor(ctx context.Context, visitorID string) {
	s.mu.Lock()

	removedName := ""
	found := false
	kept := s.visitors[:0]
	for _, visitor := range s.visitors {
		if visitor.ID == visitorID {
			removedName = visitor.Name
			found = true
			continue
		}
		kept = append(kept, visitor)
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.visitors = kept
	s.persist(ctx)
	s.mu.Unlock()

	if s.memo != nil {
		s.memo.ClearOrdersByCustomer(removedName)
	}
}

// EncodedVisitors returns the current registry as the codec's stored
// representation, for mirroring into an HTTP cookie.
func (s *VisitorService) EncodedVisitors() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.EncodeVisitors(s.visitors)
}

// persist flushes the registry; failures are logged and absorbed, the
// in-memory state wins. Callers must hold s.mu.
func (s *VisitorService) persist(ctx context.Context) {
	if err := storage.WriteVisitors(ctx, s.store, s.visitors); err != nil {
		log.Printf("Warning: failed to persist visitors: %v", err)
	}
}

var _ VisitorServiceInterface = (*VisitorService)(nil)
