package port

import (
	"context"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

// Execution identifies a started fulfillment run.
type Execution struct {
	WorkflowID string
	RunID      string
}

type WorkflowStarter interface {
	// StartFulfillment starts one orchestration run and returns without waiting for its outcome
	StartFulfillment(ctx context.Context, order []domain.LineItem) (Execution, error)
}
