package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	OrderIntakeServiceName                 = "shop.v1.OrderIntake"
	OrderIntake_SubmitOrder_FullMethodName = "/shop.v1.OrderIntake/SubmitOrder"
)

type LineItem struct {
	ItemId   string `json:"itemId"`
	Quantity int32  `json:"quantity"`
}

func (x *LineItem) GetItemId() string {
	if x != nil {
		return x.ItemId
	}
	return ""
}

func (x *LineItem) GetQuantity() int32 {
	if x != nil {
		return x.Quantity
	}
	return 0
}

type SubmitOrderRequest struct {
	Order []*LineItem `json:"order"`
}

func (x *SubmitOrderRequest) GetOrder() []*LineItem {
	if x != nil {
		return x.Order
	}
	return nil
}

type SubmitOrderResponse struct {
	Message     string `json:"message"`
	ExecutionId string `json:"executionId,omitempty"`
	RunId       string `json:"runId,omitempty"`
}

func (x *SubmitOrderResponse) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

func (x *SubmitOrderResponse) GetExecutionId() string {
	if x != nil {
		return x.ExecutionId
	}
	return ""
}

func (x *SubmitOrderResponse) GetRunId() string {
	if x != nil {
		return x.RunId
	}
	return ""
}

type OrderIntakeClient interface {
	SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*SubmitOrderResponse, error)
}

type orderIntakeClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderIntakeClient(cc grpc.ClientConnInterface) OrderIntakeClient {
	return &orderIntakeClient{cc}
}

func (c *orderIntakeClient) SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*SubmitOrderResponse, error) {
	out := new(SubmitOrderResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, OrderIntake_SubmitOrder_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type OrderIntakeServer interface {
	SubmitOrder(context.Context, *SubmitOrderRequest) (*SubmitOrderResponse, error)
	mustEmbedUnimplementedOrderIntakeServer()
}

// UnimplementedOrderIntakeServer must be embedded by every implementation.
type UnimplementedOrderIntakeServer struct{}

func (UnimplementedOrderIntakeServer) SubmitOrder(context.Context, *SubmitOrderRequest) (*SubmitOrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitOrder not implemented")
}

func (UnimplementedOrderIntakeServer) mustEmbedUnimplementedOrderIntakeServer() {}

func RegisterOrderIntakeServer(s grpc.ServiceRegistrar, srv OrderIntakeServer) {
	s.RegisterService(&OrderIntake_ServiceDesc, srv)
}

func _OrderIntake_SubmitOrder_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderIntakeServer).SubmitOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: OrderIntake_SubmitOrder_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderIntakeServer).SubmitOrder(ctx, req.(*SubmitOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var OrderIntake_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderIntakeServiceName,
	HandlerType: (*OrderIntakeServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitOrder",
			Handler:    _OrderIntake_SubmitOrder_Handler,
		},
	},
	Streams: []grpc.StreamDesc{},
}
