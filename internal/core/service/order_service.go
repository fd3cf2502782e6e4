package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/port"
)

// OrderIntake accepts orders and starts one fulfillment run per order. It
// reports only whether the run started, never how it ended.
type OrderIntake struct {
	starter      port.WorkflowStarter
	bodyEncoding string
	logger       *slog.Logger
}

func NewOrderIntake(starter port.WorkflowStarter, bodyEncoding string, logger *slog.Logger) *OrderIntake {
	return &OrderIntake{
		starter:      starter,
		bodyEncoding: bodyEncoding,
		logger:       logger,
	}
}

// Submit decodes a raw request body and starts a run for it. A body that
// does not decode starts nothing.
func (s *OrderIntake) Submit(ctx context.Context, body []byte) (port.Execution, error) {
	items, err := decodeOrder(body, s.bodyEncoding)
	if err != nil {
		s.logger.Warn("rejected order body", "error", err)
		return port.Execution{}, err
	}
	return s.SubmitOrder(ctx, items)
}

func (s *OrderIntake) SubmitOrder(ctx context.Context, items []domain.LineItem) (port.Execution, error) {
	if err := domain.ValidateLineItems(items); err != nil {
		s.logger.Warn("rejected order", "error", err)
		return port.Execution{}, err
	}

	exec, err := s.starter.StartFulfillment(ctx, items)
	if err != nil {
		s.logger.Error("failed to start fulfillment", "error", err)
		if !errors.Is(err, domain.ErrStartFailure) {
			err = errors.Join(domain.ErrStartFailure, err)
		}
		return port.Execution{}, err
	}

	s.logger.Info("fulfillment started", "workflow_id", exec.WorkflowID, "run_id", exec.RunID, "items", len(items))
	return exec, nil
}
