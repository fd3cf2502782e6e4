package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/order-fulfillment/internal/adapter/handler/pb"
	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/core/service"
)

type GRPCHandler struct {
	pb.UnimplementedOrderIntakeServer
	orders *service.OrderIntake
}

func NewGRPCHandler(orders *service.OrderIntake) *GRPCHandler {
	return &GRPCHandler{orders: orders}
}

func (h *GRPCHandler) SubmitOrder(ctx context.Context, req *pb.SubmitOrderRequest) (*pb.SubmitOrderResponse, error) {
	items := make([]domain.LineItem, 0, len(req.GetOrder()))
	for _, li := range req.GetOrder() {
		items = append(items, domain.LineItem{
			ItemID:   li.GetItemId(),
			Quantity: int(li.GetQuantity()),
		})
	}

	exec, err := h.orders.SubmitOrder(ctx, items)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Unavailable, msgExecutionFailed)
	}

	return &pb.SubmitOrderResponse{
		Message:     msgExecutionStarted,
		ExecutionId: exec.WorkflowID,
		RunId:       exec.RunID,
	}, nil
}

// UnaryLogger logs every unary call with its status code.
func UnaryLogger(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Info("grpc request",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"latency", time.Since(start),
		)
		return resp, err
	}
}
