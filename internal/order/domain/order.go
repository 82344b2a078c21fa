// Package domain holds the order record and the order-lifecycle state
// machine shared by the workflow service and the view layer.
package domain

import "time"

// Status is an order's position in the delivery lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether the status is one of the enumerated lifecycle
// statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Item is one ordered line item.
type Item struct {
	Name            string  `json:"name"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`
	DiscountedPrice float64 `json:"discountedPrice,omitempty"`
}

// LineTotal returns the item's contribution to the order total, honoring the
// discounted price when a discount applies.
func (i Item) LineTotal() float64 {
	price := i.UnitPrice
	if i.DiscountPercent > 0 {
		price = i.DiscountedPrice
	}
	return price * float64(i.Quantity)
}

// Order is one customer order as known to the panel. Orders are fetched
// read-only from the order service; the panel mutates only Status, and only
// after the service acknowledges a transition.
type Order struct {
	ID            string    `json:"id"`
	Items         []Item    `json:"items"`
	TotalAmount   float64   `json:"totalAmount"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	PaymentMethod string    `json:"paymentMethod"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	Instructions  string    `json:"instructions,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	Status        Status    `json:"status"`
}
