package domain

import "time"

type MenuItem struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
}

type Order struct {
	ID        string    `json:"id"`
	Drink     string    `json:"drink"`
	Price     int       `json:"price"`
	Quantity  int       `json:"quantity"`
	Customer  string    `json:"customer"`
	CreatedAt time.Time `json:"created_at"`
}

type ConfirmedOrder struct {
	Order
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// GroupedOrder is the per-(drink, customer) aggregation of confirmed
// orders. It is derived on read and never stored.
type GroupedOrder struct {
	Drink    string `json:"drink"`
	Customer string `json:"customer"`
	Quantity int    `json:"quantity"`
}

type Visitor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AddedNotice is raised when an order is added from the menu. The engine
// keeps the latest notice until the caller dismisses it; timing it out is
// the presentation layer's job.
type AddedNotice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ConfirmationEvent is emitted to Kafka when a draft memo is confirmed.
type ConfirmationEvent struct {
	Type        string           `json:"type"`
	Orders      []ConfirmedOrder `json:"orders"`
	TotalDrinks int              `json:"total_drinks"`
	TotalAmount int              `json:"total_amount"`
	ConfirmedAt time.Time        `json:"confirmed_at"`
}
