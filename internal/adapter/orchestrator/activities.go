package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/temporal"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/port"
)

// Activities hosts the stock checker, stock updater and order recorder.
type Activities struct {
	Items  port.ItemRepository
	Orders port.OrderRepository
	Logger *slog.Logger

	NewOrderID func() (string, error)
	Now        func() time.Time
}

func NewActivities(items port.ItemRepository, orders port.OrderRepository, logger *slog.Logger) *Activities {
	return &Activities{
		Items:      items,
		Orders:     orders,
		Logger:     logger,
		NewOrderID: domain.NewOrderID,
		Now:        time.Now,
	}
}

// CheckStock is read-only and advisory: nothing holds the stock it saw
// between this check and the later decrement.
func (a *Activities) CheckStock(ctx context.Context, item domain.LineItem) error {
	if err := item.Validate(); err != nil {
		return toApplicationError(err)
	}

	stored, err := a.Items.GetItem(ctx, item.ItemID)
	if errors.Is(err, domain.ErrNotFound) {
		return toApplicationError(fmt.Errorf("%w: item %s not found", domain.ErrNotFoundOrInsufficientStock, item.ItemID))
	}
	if err != nil {
		return toApplicationError(err)
	}

	if stored.Stock < item.Quantity {
		return toApplicationError(fmt.Errorf("%w: item %s has %d, requested %d",
			domain.ErrNotFoundOrInsufficientStock, item.ItemID, stored.Stock, item.Quantity))
	}

	a.Logger.Debug("stock available", "item_id", item.ItemID, "stock", stored.Stock, "requested", item.Quantity)
	return nil
}

// UpdateStock decrements unconditionally.
func (a *Activities) UpdateStock(ctx context.Context, item domain.LineItem) error {
	if err := item.Validate(); err != nil {
		return toApplicationError(err)
	}

	if err := a.Items.DecrementStock(ctx, item.ItemID, item.Quantity); err != nil {
		return toApplicationError(err)
	}

	a.Logger.Info("stock decremented", "item_id", item.ItemID, "quantity", item.Quantity)
	return nil
}

// RecordOrder persists the order under a fresh id. It is not idempotent: a
// retried attempt writes a second order with another id.
func (a *Activities) RecordOrder(ctx context.Context, in RecordOrderInput) (string, error) {
	id, err := a.NewOrderID()
	if err != nil {
		return "", err
	}

	items := in.Order
	if items == nil {
		items = []domain.LineItem{}
	}

	order := domain.Order{
		ID:        id,
		Items:     items,
		CreatedAt: a.Now().UTC(),
	}
	if err := a.Orders.CreateOrder(ctx, order); err != nil {
		return "", toApplicationError(err)
	}

	a.Logger.Info("order recorded", "order_id", id, "items", len(items))
	return id, nil
}

// toApplicationError tags an error with its taxonomy name so the run's
// failure can be classified. Stock and validation failures never retry.
func toApplicationError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFoundOrInsufficientStock):
		return temporal.NewNonRetryableApplicationError(err.Error(), domain.ErrorTypeNotFoundOrInsufficientStock, err)
	case errors.Is(err, domain.ErrValidation):
		return temporal.NewNonRetryableApplicationError(err.Error(), domain.ErrorTypeValidation, err)
	case errors.Is(err, domain.ErrStoreUnavailable):
		return temporal.NewApplicationErrorWithCause(err.Error(), domain.ErrorTypeStoreUnavailable, err)
	default:
		return err
	}
}
