package orchestrator

import (
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

// registry is the part of worker.Worker (and of the test environments) used
// to register the fulfillment workflow and its activities.
type registry interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivity(a interface{})
}

// Register binds the state machine under WorkflowName and every Activities
// method under its method name.
func Register(r registry, o *Orchestrator, activities *Activities) {
	r.RegisterWorkflowWithOptions(o.Run, workflow.RegisterOptions{Name: WorkflowName})
	r.RegisterActivity(activities)
}

func NewWorker(c client.Client, taskQueue string, o *Orchestrator, activities *Activities) worker.Worker {
	w := worker.New(c, taskQueue, worker.Options{})
	Register(w, o, activities)
	return w
}
