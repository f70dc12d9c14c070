package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ytkg/orders/internal/domain"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// MemoService owns the draft order collection and its confirmed
// snapshot. Drafts are freely editable; a confirmed snapshot is a
// point-in-time copy that later draft edits never touch.
type MemoService struct {
	menu      MenuRepository
	ids       IDGenerator
	publisher ConfirmationPublisher
	qr        QRGenerator
	now       func() time.Time

	mu              sync.Mutex
	orders          []domain.Order
	confirmedOrders []domain.ConfirmedOrder
	addedNotice     *domain.AddedNotice
	confirmedQR     []byte
}

// NewMemoService wires the engine. publisher and qr may be nil; both are
// side effects of confirmation, not part of the memo state.
func NewMemoService(menu MenuRepository, ids IDGenerator, publisher ConfirmationPublisher, qr QRGenerator) *MemoService {
	return &MemoService{
		menu:      menu,
		ids:       ids,
		publisher: publisher,
		qr:        qr,
		now:       time.Now,
	}
}

func (s *MemoService) MenuItems() ([]domain.MenuItem, error) {
	return s.menu.ListMenuItems()
}

func (s *MemoService) GroupedMenu() ([]domain.MenuCategory, error) {
	items, err := s.menu.ListMenuItems()
	if err != nil {
		return nil, err
	}
	return domain.GroupMenuItemsByCategory(items), nil
}

// AddOrderFromMenu prepends a fresh draft order for the selected menu
// item and raises an added notice carrying the item's display name.
func (s *MemoService) AddOrderFromMenu(ctx context.Context, menuID int) (domain.Order, error) {
	selected, err := s.menu.GetMenuItem(menuID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("look up menu item %d: %w", menuID, err)
	}
	if selected == nil {
		return domain.Order{}, ErrUnknownMenuItem
	}

	next := domain.Order{
		ID:        s.ids.Generate("order"),
		Drink:     selected.Name,
		Price:     selected.Price,
		Quantity:  1,
		Customer:  "",
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]domain.Order{next}, s.orders...)
	s.addedNotice = &domain.AddedNotice{
		ID:   s.ids.Generate("notice"),
		Name: selected.Name,
	}
	return next, nil
}

func (s *MemoService) RemoveOrder(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.orders[:0]
	for _, order := range s.orders {
		if order.ID != orderID {
			kept = append(kept, order)
		}
	}
	s.orders = kept
}

// IncrementOrderQuantity clamps the result to [MinQuantity, MaxQuantity]
// and reports whether the upper bound was hit, so a caller-side repeat
// mechanism can stop itself. Unknown ids are a no-op.
func (s *MemoService) IncrementOrderQuantity(orderID string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	reachedMax := false
	for i := range s.orders {
		if s.orders[i].ID != orderID {
			continue
		}

		next := s.orders[i].Quantity + delta
		if next < MinQuantity {
			next = MinQuantity
		}
		if next > MaxQuantity {
			next = MaxQuantity
		}
		if next == MaxQuantity {
			reachedMax = true
		}
		s.orders[i].Quantity = next
	}
	return reachedMax
}

// UpdateOrderCustomer sets the customer unconditionally; "" means
// unassigned. The name is not checked against the visitor registry.
func (s *MemoService) UpdateOrderCustomer(orderID, customer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Customer = customer
		}
	}
}

// ClearOrdersByCustomer dissociates every draft order of the given
// customer. Orders themselves are never deleted here.
func (s *MemoService) ClearOrdersByCustomer(customer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].Customer == customer {
			s.orders[i].Customer = ""
		}
	}
}

// ResetDraftOrders empties the draft collection. Asking the user first is
// the caller's job.
func (s *MemoService) ResetDraftOrders() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = nil
}

// ConfirmAllOrders snapshots the whole draft collection with one shared
// confirmation time, replacing any earlier snapshot. An empty draft
// collection fails with ErrNoDraftOrders and changes nothing.
func (s *MemoService) ConfirmAllOrders(ctx context.Context) error {
	s.mu.Lock()
	if len(s.orders) == 0 {
		s.mu.Unlock()
		return ErrNoDraftOrders
	}

	confirmedAt := s.now()
	confirmed := make([]domain.ConfirmedOrder, 0, len(s.orders))
	for _, order := range s.orders {
		confirmed = append(confirmed, domain.ConfirmedOrder{Order: order, ConfirmedAt: confirmedAt})
	}
	s.confirmedOrders = confirmed

	event := domain.ConfirmationEvent{
		Type:        "orders_confirmed",
		Orders:      confirmed,
		TotalDrinks: sumQuantities(confirmed),
		TotalAmount: sumAmounts(confirmed),
		ConfirmedAt: confirmedAt,
	}

	if s.qr != nil {
		if png, err := s.qr.Generate(confirmedAt); err == nil {
			s.confirmedQR = png
		} else {
			log.Printf("Warning: failed to generate confirmation QR code: %v", err)
		}
	}
	s.mu.Unlock()

	if s.publisher != nil {
		if err := s.publisher.PublishConfirmation(ctx, event); err != nil {
			log.Printf("Warning: failed to publish confirmation event: %v", err)
		}
	}
	return nil
}

func (s *MemoService) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *MemoService) ConfirmedOrders() []domain.ConfirmedOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ConfirmedOrder, len(s.confirmedOrders))
	copy(out, s.confirmedOrders)
	return out
}

// GroupedConfirmedOrders aggregates confirmed quantities per exact
// (drink, customer) pair, groups in first-seen order.
func (s *MemoService) GroupedConfirmedOrders() []domain.GroupedOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int)
	grouped := make([]domain.GroupedOrder, 0)
	for _, order := range s.confirmedOrders {
		key := order.Drink + "__" + order.Customer
		if i, ok := index[key]; ok {
			grouped[i].Quantity += order.Quantity
			continue
		}
		index[key] = len(grouped)
		grouped = append(grouped, domain.GroupedOrder{
			Drink:    order.Drink,
			Customer: order.Customer,
			Quantity: order.Quantity,
		})
	}
	return grouped
}

func (s *MemoService) TotalDrinks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, order := range s.orders {
		total += order.Quantity
	}
	return total
}

func (s *MemoService) TotalAmount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, order := range s.orders {
		total += order.Quantity * order.Price
	}
	return total
}

func (s *MemoService) ConfirmedTotalDrinks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sumQuantities(s.confirmedOrders)
}

func (s *MemoService) ConfirmedTotalAmount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sumAmounts(s.confirmedOrders)
}

func (s *MemoService) AddedNotice() *domain.AddedNotice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addedNotice == nil {
		return nil
	}
	notice := *s.addedNotice
	return &notice
}

func (s *MemoService) ClearAddedNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addedNotice = nil
}

// ConfirmedQRCode returns the PNG for the latest confirmed snapshot, or
// nil when nothing was confirmed yet.
func (s *MemoService) ConfirmedQRCode() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmedQR
}

func sumQuantities(orders []domain.ConfirmedOrder) int {
	total := 0
	for _, order := range orders {
		total += order.Quantity
	}
	return total
}

func sumAmounts(orders []domain.ConfirmedOrder) int {
	total := 0
	for _, order := range orders {
		total += order.Quantity * order.Price
	}
	return total
}

var _ MemoServiceInterface = (*MemoService)(nil)
