package domain

import (
	"fmt"
	"time"
)

// LineItem is one (itemId, quantity) pair within an order.
type LineItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Order is created once by the order recorder and never updated.
type Order struct {
	ID        string
	Items     []LineItem
	CreatedAt time.Time
}

// Validate checks the per-item contract shared by the stock checker and the
// stock updater: a non-empty item id and a positive quantity.
func (li LineItem) Validate() error {
	if li.ItemID == "" {
		return fmt.Errorf("%w: itemId is required", ErrValidation)
	}
	if li.Quantity <= 0 {
		return fmt.Errorf("%w: quantity for item %s must be positive", ErrValidation, li.ItemID)
	}
	return nil
}

// ValidateLineItems validates every line item of an order. An empty order is valid.
func ValidateLineItems(items []LineItem) error {
	for i, li := range items {
		if err := li.Validate(); err != nil {
			return fmt.Errorf("line item %d: %w", i, err)
		}
	}
	return nil
}
