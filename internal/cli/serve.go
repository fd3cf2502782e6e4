package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/rl1809/order-fulfillment/internal/adapter/handler"
	"github.com/rl1809/order-fulfillment/internal/adapter/handler/pb"
	"github.com/rl1809/order-fulfillment/internal/adapter/objectstore"
	"github.com/rl1809/order-fulfillment/internal/adapter/orchestrator"
	"github.com/rl1809/order-fulfillment/internal/adapter/storage"
	"github.com/rl1809/order-fulfillment/internal/config"
	"github.com/rl1809/order-fulfillment/internal/core/service"
)

const shutdownTimeout = 5 * time.Second

type ServeOptions struct {
	*RootOptions
	WithWorker bool
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and gRPC intake servers",
		Long: `Run the HTTP and gRPC intake servers.

Orders are handed to Temporal and acknowledged as soon as the run starts.
With --worker the fulfillment worker runs in the same process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.WithWorker, "worker", true, "also run the fulfillment worker")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg, logger, err := opts.setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(ctx), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := openRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()
	logger.Info("connected to redis", "addr", cfg.Redis.Addr)

	mc, err := openMongo(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer mc.Disconnect(context.Background())
	logger.Info("connected to mongo", "database", cfg.Mongo.Database)

	s3Client, err := objectstore.NewS3Client(ctx, cfg.S3)
	if err != nil {
		return err
	}

	tc, err := dialTemporal(cfg.Temporal, logger)
	if err != nil {
		return err
	}
	defer tc.Close()
	logger.Info("connected to temporal", "host", cfg.Temporal.HostPort, "task_queue", cfg.Temporal.TaskQueue)

	items := storage.NewRedisAdapter(rdb)
	users := storage.NewMongoAdapter(mc.Database(cfg.Mongo.Database))
	signer := objectstore.NewS3Presigner(s3Client, cfg.S3.Bucket, cfg.S3.UploadURLTTL)
	starter := orchestrator.NewTemporalStarter(tc, cfg.Temporal.TaskQueue)

	if opts.WithWorker {
		db, err := openMySQL(ctx, cfg.MySQL)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("connected to mysql")

		w := newFulfillmentWorker(tc, cfg, items, storage.NewMySQLAdapter(db), logger)
		if err := w.Start(); err != nil {
			return fmt.Errorf("start worker: %w", err)
		}
		defer w.Stop()
		logger.Info("fulfillment worker started")
	}

	orders := service.NewOrderIntake(starter, cfg.Intake.BodyEncoding, logger)
	uploads := service.NewUploadService(items, signer, cfg.Intake.BodyEncoding, logger)
	confirmations := service.NewUserService(users, logger)

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(handler.UnaryLogger(logger)))
	pb.RegisterOrderIntakeServer(grpcServer, handler.NewGRPCHandler(orders))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}

	go func() {
		logger.Info("gRPC server listening", "addr", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", "error", err)
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	httpHandler := handler.NewHTTPHandler(orders, uploads, confirmations, logger)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.NewRouter(httpHandler),
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown", "error", err)
	}
	logger.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")

	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func activityConfig(cfg config.TemporalConfig) orchestrator.ActivityConfig {
	return orchestrator.ActivityConfig{
		StartToCloseTimeout: cfg.ActivityTimeout,
		MaxAttempts:         cfg.ActivityMaxAttempts,
	}
}
