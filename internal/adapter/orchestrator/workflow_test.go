package orchestrator

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

var testActivityConfig = ActivityConfig{StartToCloseTimeout: time.Minute, MaxAttempts: 1}

func newTestEnv(items *fakeItemStore, orders *fakeOrderStore) *testsuite.TestWorkflowEnvironment {
	var s testsuite.WorkflowTestSuite
	env := s.NewTestWorkflowEnvironment()

	acts := NewActivities(items, orders, slog.New(slog.NewTextHandler(io.Discard, nil)))
	Register(env, NewOrchestrator(testActivityConfig), acts)
	return env
}

func queryState(t *testing.T, env *testsuite.TestWorkflowEnvironment) State {
	t.Helper()
	val, err := env.QueryWorkflow(QueryState)
	require.NoError(t, err)
	var state State
	require.NoError(t, val.Get(&state))
	return state
}

func applicationErrorType(t *testing.T, err error) string {
	t.Helper()
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr), "expected application error, got %v", err)
	return appErr.Type()
}

func TestWorkflow_HappyPath(t *testing.T) {
	items := newFakeItemStore(
		domain.Item{ID: "A", Name: "Lamp", Stock: 5},
		domain.Item{ID: "B", Name: "Desk", Stock: 2},
	)
	orders := &fakeOrderStore{}
	env := newTestEnv(items, orders)

	order := []domain.LineItem{{ItemID: "A", Quantity: 2}, {ItemID: "B", Quantity: 1}}
	env.ExecuteWorkflow(WorkflowName, FulfillmentInput{Order: order})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result FulfillmentResult
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.Equal(t, StateDone, result.State)
	assert.NotEmpty(t, result.OrderID)
	assert.Equal(t, StateDone, queryState(t, env))

	assert.Equal(t, 3, items.stock("A"))
	assert.Equal(t, 1, items.stock("B"))

	recorded := orders.all()
	require.Len(t, recorded, 1)
	assert.Equal(t, result.OrderID, recorded[0].ID)
	assert.Equal(t, order, recorded[0].Items)
}

func TestWorkflow_InsufficientStockFailsWithoutSideEffects(t *testing.T) {
	items := newFakeItemStore(
		domain.Item{ID: "A", Stock: 5},
		domain.Item{ID: "B", Stock: 0},
	)
	orders := &fakeOrderStore{}
	env := newTestEnv(items, orders)

	env.ExecuteWorkflow(WorkflowName, FulfillmentInput{Order: []domain.LineItem{
		{ItemID: "A", Quantity: 1},
		{ItemID: "B", Quantity: 1},
	}})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFoundOrInsufficientStock, applicationErrorType(t, err))
	assert.Equal(t, StateFailed, queryState(t, env))

	assert.Zero(t, items.decrementCount())
	assert.Equal(t, 5, items.stock("A"))
	assert.Empty(t, orders.all())
}

func TestWorkflow_MissingItemFails(t *testing.T) {
	items := newFakeItemStore()
	orders := &fakeOrderStore{}
	env := newTestEnv(items, orders)

	env.ExecuteWorkflow(WorkflowName, FulfillmentInput{Order: []domain.LineItem{{ItemID: "Z", Quantity: 1}}})

	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFoundOrInsufficientStock, applicationErrorType(t, err))
	assert.Zero(t, items.decrementCount())
	assert.Empty(t, orders.all())
}

func TestWorkflow_InvalidLineItemFails(t *testing.T) {
	items := newFakeItemStore(domain.Item{ID: "A", Stock: 5})
	orders := &fakeOrderStore{}
	env := newTestEnv(items, orders)

	env.ExecuteWorkflow(WorkflowName, FulfillmentInput{Order: []domain.LineItem{{ItemID: "A", Quantity: 0}}})

	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, applicationErrorType(t, err))
	assert.Empty(t, orders.all())
}

func TestWorkflow_EmptyOrderIsRecorded(t *testing.T) {
	items := newFakeItemStore()
	orders := &fakeOrderStore{}
	env := newTestEnv(items, orders)

	env.ExecuteWorkflow(WorkflowName, FulfillmentInput{Order: []domain.LineItem{}})

	require.NoError(t, env.GetWorkflowError())
	var result FulfillmentResult
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.Equal(t, StateDone, result.State)

	recorded := orders.all()
	require.Len(t, recorded, 1)
	assert.Empty(t, recorded[0].Items)
	assert.Zero(t, items.decrementCount())
}

func TestWorkflow_UpdateFailureKeepsRecordedOrder(t *testing.T) {
	items := newFakeItemStore(domain.Item{ID: "A", Stock: 5})
	items.decrementErr = fmt.Errorf("%w: connection reset", domain.ErrStoreUnavailable)
	orders := &fakeOrderStore{}
	env := newTestEnv(items, orders)

	env.ExecuteWorkflow(WorkflowName, FulfillmentInput{Order: []domain.LineItem{{ItemID: "A", Quantity: 1}}})

	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeStoreUnavailable, applicationErrorType(t, err))
	assert.Equal(t, StateFailed, queryState(t, env))

	// No compensation: the order written by the other branch stays.
	assert.Len(t, orders.all(), 1)
}

func TestWorkflow_RecordFailureKeepsDecrements(t *testing.T) {
	items := newFakeItemStore(domain.Item{ID: "A", Stock: 5})
	orders := &fakeOrderStore{err: fmt.Errorf("%w: deadlock", domain.ErrStoreUnavailable)}
	env := newTestEnv(items, orders)

	env.ExecuteWorkflow(WorkflowName, FulfillmentInput{Order: []domain.LineItem{{ItemID: "A", Quantity: 2}}})

	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeStoreUnavailable, applicationErrorType(t, err))
	assert.Equal(t, 3, items.stock("A"))
}

func TestWorkflow_StoreUnavailableDuringCheck(t *testing.T) {
	items := newFakeItemStore(domain.Item{ID: "A", Stock: 5})
	items.getErr = fmt.Errorf("%w: timeout", domain.ErrStoreUnavailable)
	orders := &fakeOrderStore{}
	env := newTestEnv(items, orders)

	env.ExecuteWorkflow(WorkflowName, FulfillmentInput{Order: []domain.LineItem{{ItemID: "A", Quantity: 1}}})

	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeStoreUnavailable, applicationErrorType(t, err))
	assert.Zero(t, items.decrementCount())
	assert.Empty(t, orders.all())
}

// Two runs that both read stock before either decrements both pass
// validation and drive the stock negative.
func TestWorkflow_ConcurrentRunsOversell(t *testing.T) {
	items := newFakeItemStore(domain.Item{ID: "A", Stock: 5})
	orders := &fakeOrderStore{}

	var barrier sync.WaitGroup
	barrier.Add(2)
	items.afterGet = func() {
		barrier.Done()
		barrier.Wait()
	}

	type outcome struct {
		result FulfillmentResult
		err    error
	}
	outcomes := make([]outcome, 2)

	var wg sync.WaitGroup
	for i := range outcomes {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			env := newTestEnv(items, orders)
			env.ExecuteWorkflow(WorkflowName, FulfillmentInput{Order: []domain.LineItem{{ItemID: "A", Quantity: 3}}})
			outcomes[i].err = env.GetWorkflowError()
			if outcomes[i].err == nil {
				outcomes[i].err = env.GetWorkflowResult(&outcomes[i].result)
			}
		}()
	}
	wg.Wait()

	for _, o := range outcomes {
		require.NoError(t, o.err)
		assert.Equal(t, StateDone, o.result.State)
	}
	assert.Equal(t, -1, items.stock("A"))
	assert.Len(t, orders.all(), 2)
}
