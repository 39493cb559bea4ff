package model

import "time"

// OrderStatus tracks a ticket purchase.
type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
)

// Order snapshots the price of a plan at checkout time.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	PlanID     string      `json:"plan_id"`
	CenterID   string      `json:"center_id"`
	PriceCents int         `json:"price_cents"`
	Currency   string      `json:"currency"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Payment records a provider confirmation for an order.
type Payment struct {
	ID                string    `json:"id"`
	OrderID           string    `json:"order_id"`
	Provider          string    `json:"provider"`
	ProviderReference string    `json:"provider_reference"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateOrderRequest starts a purchase of a plan for a center.
type CreateOrderRequest struct {
	PlanID   string `json:"plan_id" validate:"required,uuid"`
	CenterID string `json:"center_id" validate:"required,uuid"`
}

// PaymentConfirmation is what the payment webhook hands to the core.
type PaymentConfirmation struct {
	OrderID           string `json:"order_id" validate:"required,uuid"`
	Provider          string `json:"provider" validate:"required,max=50"`
	ProviderReference string `json:"provider_reference" validate:"required,max=255"`
}

// Grant is the outcome of crediting a confirmed payment.
type Grant struct {
	Order       Order  `json:"order"`
	Ticket      Ticket `json:"ticket"`
	Accumulated bool   `json:"accumulated"`
}
