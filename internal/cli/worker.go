package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/rl1809/order-fulfillment/internal/adapter/orchestrator"
	"github.com/rl1809/order-fulfillment/internal/adapter/storage"
	"github.com/rl1809/order-fulfillment/internal/config"
	"github.com/rl1809/order-fulfillment/internal/port"
)

func NewWorkerCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the fulfillment workflow worker",
		Long: `Run the Temporal worker hosting the fulfillment workflow and its
stock checker, stock updater and order recorder activities.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(cmd.Context(), rootOpts)
		},
	}
}

func runWorker(ctx context.Context, opts *RootOptions) error {
	cfg, logger, err := opts.setup()
	if err != nil {
		return err
	}
	ctx = contextOrBackground(ctx)

	rdb, err := openRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	db, err := openMySQL(ctx, cfg.MySQL)
	if err != nil {
		return err
	}
	defer db.Close()

	tc, err := dialTemporal(cfg.Temporal, logger)
	if err != nil {
		return err
	}
	defer tc.Close()

	w := newFulfillmentWorker(tc, cfg, storage.NewRedisAdapter(rdb), storage.NewMySQLAdapter(db), logger)
	logger.Info("fulfillment worker running", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		return fmt.Errorf("run worker: %w", err)
	}
	return nil
}

func newFulfillmentWorker(tc client.Client, cfg *config.Config, items port.ItemRepository, orders port.OrderRepository, logger *slog.Logger) worker.Worker {
	activities := orchestrator.NewActivities(items, orders, logger.With("component", "activities"))
	return orchestrator.NewWorker(tc, cfg.Temporal.TaskQueue, orchestrator.NewOrchestrator(activityConfig(cfg.Temporal)), activities)
}
