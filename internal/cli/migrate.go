package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rl1809/order-fulfillment/internal/adapter/storage"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the order tables and user indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), rootOpts)
		},
	}
}

func runMigrate(ctx context.Context, opts *RootOptions) error {
	cfg, logger, err := opts.setup()
	if err != nil {
		return err
	}
	ctx = contextOrBackground(ctx)

	db, err := openMySQL(ctx, cfg.MySQL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewMySQLAdapter(db).Migrate(ctx); err != nil {
		return fmt.Errorf("migrate mysql: %w", err)
	}
	logger.Info("mysql schema applied")

	mc, err := openMongo(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer mc.Disconnect(context.Background())

	if err := storage.NewMongoAdapter(mc.Database(cfg.Mongo.Database)).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("migrate mongo: %w", err)
	}
	logger.Info("mongo indexes ensured", "database", cfg.Mongo.Database)
	return nil
}
