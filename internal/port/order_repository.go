package port

import (
	"context"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

type OrderRepository interface {
	// CreateOrder persists a new order together with its line items
	CreateOrder(ctx context.Context, order domain.Order) error

	// GetOrder retrieves an order by ID, returns domain.ErrNotFound if absent
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}
