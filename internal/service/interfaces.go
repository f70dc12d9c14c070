package service

import (
	"context"
	"errors"
	"time"

	"github.com/ytkg/orders/internal/domain"
)

var (
	ErrEmptyVisitorName     = errors.New("visitor name must not be empty")
	ErrDuplicateVisitorName = errors.New("visitor name already registered")
	ErrUnknownMenuItem      = errors.New("menu item not found")
	ErrNoDraftOrders        = errors.New("no draft orders to confirm")
)

type MenuRepository interface {
	ListMenuItems() ([]domain.MenuItem, error)
	GetMenuItem(menuID int) (*domain.MenuItem, error)
}

type ConfirmationPublisher interface {
	PublishConfirmation(ctx context.Context, event domain.ConfirmationEvent) error
}

type IDGenerator interface {
	Generate(prefix string) string
}

type QRGenerator interface {
	Generate(confirmedAt time.Time) ([]byte, error)
}

type MemoServiceInterface interface {
	MenuItems() ([]domain.MenuItem, error)
	GroupedMenu() ([]domain.MenuCategory, error)

	AddOrderFromMenu(ctx context.Context, menuID int) (domain.Order, error)
	RemoveOrder(orderID string)
	IncrementOrderQuantity(orderID string, delta int) bool
	UpdateOrderCustomer(orderID, customer string)
	ClearOrdersByCustomer(customer string)
	ResetDraftOrders()
	ConfirmAllOrders(ctx context.Context) error

	Orders() []domain.Order
	ConfirmedOrders() []domain.ConfirmedOrder
	GroupedConfirmedOrders() []domain.GroupedOrder
	TotalDrinks() int
	TotalAmount() int
	ConfirmedTotalDrinks() int
	ConfirmedTotalAmount() int

	AddedNotice() *domain.AddedNotice
	ClearAddedNotice()
	ConfirmedQRCode() []byte
}

type VisitorServiceInterface interface {
	Visitors() []domain.Visitor
	AddVisitor(ctx context.Context, rawName string) (domain.Visitor, error)
	RemoveVisitor(ctx context.Context, visitorID string)
	EncodedVisitors() string
}
