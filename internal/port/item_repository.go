package port

import (
	"context"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

type ItemRepository interface {
	// PutItem writes the full item record, replacing any existing one
	PutItem(ctx context.Context, item domain.Item) error

	// GetItem retrieves an item by ID, returns domain.ErrNotFound if absent
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)

	// DecrementStock lowers stock by quantity without any floor check
	DecrementStock(ctx context.Context, itemID string, quantity int) error
}
