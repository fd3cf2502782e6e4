package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/port"
)

// TemporalStarter launches fulfillment runs. It only reports whether the run
// started; the run's outcome is never awaited.
type TemporalStarter struct {
	client    client.Client
	taskQueue string
}

func NewTemporalStarter(c client.Client, taskQueue string) *TemporalStarter {
	return &TemporalStarter{client: c, taskQueue: taskQueue}
}

func (s *TemporalStarter) StartFulfillment(ctx context.Context, order []domain.LineItem) (port.Execution, error) {
	if order == nil {
		order = []domain.LineItem{}
	}

	options := client.StartWorkflowOptions{
		ID:        "fulfillment-" + uuid.NewString(),
		TaskQueue: s.taskQueue,
	}

	run, err := s.client.ExecuteWorkflow(ctx, options, WorkflowName, FulfillmentInput{Order: order})
	if err != nil {
		return port.Execution{}, fmt.Errorf("%w: %v", domain.ErrStartFailure, err)
	}

	return port.Execution{
		WorkflowID: run.GetID(),
		RunID:      run.GetRunID(),
	}, nil
}
