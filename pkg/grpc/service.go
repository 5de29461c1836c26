package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The trigger service carries google.protobuf.Struct messages both ways, so
// it needs no generated message types. The descriptor and client below follow
// the shape protoc-gen-go-grpc emits.

const TriggerServiceName = "nestmonitor.TriggerService"

const (
	TriggerService_DeviceUpdated_FullMethodName = "/nestmonitor.TriggerService/DeviceUpdated"
	TriggerService_GetAlerts_FullMethodName     = "/nestmonitor.TriggerService/GetAlerts"
	TriggerService_PostLimiter_FullMethodName   = "/nestmonitor.TriggerService/PostLimiter"
)

type TriggerServiceServer interface {
	DeviceUpdated(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAlerts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PostLimiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterTriggerServiceServer(s grpc.ServiceRegistrar, srv TriggerServiceServer) {
	s.RegisterService(&TriggerService_ServiceDesc, srv)
}

func unaryHandler(
	fullMethod string,
	call func(TriggerServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TriggerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TriggerServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var TriggerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: TriggerServiceName,
	HandlerType: (*TriggerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "DeviceUpdated",
			Handler:    unaryHandler(TriggerService_DeviceUpdated_FullMethodName, TriggerServiceServer.DeviceUpdated),
		},
		{
			MethodName: "GetAlerts",
			Handler:    unaryHandler(TriggerService_GetAlerts_FullMethodName, TriggerServiceServer.GetAlerts),
		},
		{
			MethodName: "PostLimiter",
			Handler:    unaryHandler(TriggerService_PostLimiter_FullMethodName, TriggerServiceServer.PostLimiter),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "nestmonitor/trigger.proto",
}

type TriggerServiceClient interface {
	DeviceUpdated(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetAlerts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	PostLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type triggerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTriggerServiceClient(cc grpc.ClientConnInterface) TriggerServiceClient {
	return &triggerServiceClient{cc}
}

func (c *triggerServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *triggerServiceClient) DeviceUpdated(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, TriggerService_DeviceUpdated_FullMethodName, in, opts...)
}

func (c *triggerServiceClient) GetAlerts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, TriggerService_GetAlerts_FullMethodName, in, opts...)
}

func (c *triggerServiceClient) PostLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, TriggerService_PostLimiter_FullMethodName, in, opts...)
}
