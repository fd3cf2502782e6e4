package orchestrator

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

// WorkflowName is the registered name starters use to launch a run.
const WorkflowName = "OrderFulfillmentWorkflow"

// QueryState answers with the run's current State.
const QueryState = "state"

type State string

const (
	StateValidateStock State = "ValidateStock"
	StateFulfill       State = "Fulfill"
	StateDone          State = "Done"
	StateFailed        State = "Failed"
)

type FulfillmentInput struct {
	Order []domain.LineItem `json:"order"`
}

type FulfillmentResult struct {
	State   State  `json:"state"`
	OrderID string `json:"orderId"`
}

type RecordOrderInput struct {
	Order []domain.LineItem `json:"order"`
}

// ActivityConfig controls how every activity of a run is scheduled.
// MaxAttempts of 1 disables retries.
type ActivityConfig struct {
	StartToCloseTimeout time.Duration
	MaxAttempts         int32
}

type Orchestrator struct {
	activity ActivityConfig
}

func NewOrchestrator(cfg ActivityConfig) *Orchestrator {
	return &Orchestrator{activity: cfg}
}

// Run is the fulfillment state machine:
//
//	ValidateStock --all checks ok--> Fulfill --both branches ok--> Done
//	      |                             |
//	      +-------any failure-----------+--> Failed
//
// Nothing is compensated on failure. Stock decrements and the order record
// already written stay in place.
func (o *Orchestrator) Run(ctx workflow.Context, in FulfillmentInput) (FulfillmentResult, error) {
	logger := workflow.GetLogger(ctx)

	state := StateValidateStock
	err := workflow.SetQueryHandler(ctx, QueryState, func() (State, error) {
		return state, nil
	})
	if err != nil {
		return FulfillmentResult{State: StateFailed}, err
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: o.activity.StartToCloseTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: o.activity.MaxAttempts,
		},
	})

	var a *Activities

	// ValidateStock: every check is scheduled before any is awaited.
	logger.Info("Validating stock", "Items", len(in.Order))
	checks := make([]workflow.Future, 0, len(in.Order))
	for _, item := range in.Order {
		checks = append(checks, workflow.ExecuteActivity(ctx, a.CheckStock, item))
	}
	if err := awaitAll(ctx, checks); err != nil {
		state = StateFailed
		logger.Error("Stock validation failed", "Error", err)
		return FulfillmentResult{State: state}, err
	}

	// Fulfill: branch A decrements each item, branch B records the order.
	state = StateFulfill
	logger.Info("Fulfilling order", "Items", len(in.Order))
	updates := make([]workflow.Future, 0, len(in.Order))
	for _, item := range in.Order {
		updates = append(updates, workflow.ExecuteActivity(ctx, a.UpdateStock, item))
	}
	record := workflow.ExecuteActivity(ctx, a.RecordOrder, RecordOrderInput{Order: in.Order})

	updateErr := awaitAll(ctx, updates)

	var orderID string
	recordErr := record.Get(ctx, &orderID)

	if updateErr != nil || recordErr != nil {
		state = StateFailed
		if updateErr != nil {
			logger.Error("Stock update failed", "Error", updateErr)
			return FulfillmentResult{State: state, OrderID: orderID}, updateErr
		}
		logger.Error("Order recording failed", "Error", recordErr)
		return FulfillmentResult{State: state}, recordErr
	}

	state = StateDone
	logger.Info("Order fulfilled", "OrderID", orderID)
	return FulfillmentResult{State: state, OrderID: orderID}, nil
}

// awaitAll waits for every future, so no activity is left running unobserved,
// and returns the first error in scheduling order.
func awaitAll(ctx workflow.Context, futures []workflow.Future) error {
	var first error
	for _, f := range futures {
		if err := f.Get(ctx, nil); err != nil && first == nil {
			first = err
		}
	}
	return first
}
