package arbiter

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully-qualified gRPC service name of the dispatcher.
const ServiceName = "signalyard.arbiter.v1.Dispatch"

// DispatchServer is the server API of the dispatch service. There is no
// generated stub: both methods carry raw command wire bytes, so the service
// descriptor is written by hand against the raw codec.
type DispatchServer interface {
	// Submit runs the full test/execute protocol for one frame and returns
	// the encoded result.
	Submit(ctx context.Context, in *RawMessage) (*RawMessage, error)
	// Estimate runs the dry-run phase only.
	Estimate(ctx context.Context, in *RawMessage) (*RawMessage, error)
}

// DispatchServiceDesc is the hand-written service descriptor.
var DispatchServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DispatchServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Submit", Handler: submitHandler},
		{MethodName: "Estimate", Handler: estimateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "signalyard/arbiter/v1/dispatch",
}

func submitHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RawMessage)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DispatchServer).Submit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/Submit",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DispatchServer).Submit(ctx, req.(*RawMessage))
	}
	return interceptor(ctx, in, info, handler)
}

func estimateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RawMessage)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DispatchServer).Estimate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/Estimate",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DispatchServer).Estimate(ctx, req.(*RawMessage))
	}
	return interceptor(ctx, in, info, handler)
}
