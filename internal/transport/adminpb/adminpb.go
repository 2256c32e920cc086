// Package adminpb is a small administrative/introspection gRPC surface
// for the address-space traversal server: liveness, per-session
// continuation-point counts, and forced session teardown. It is
// hand-wired against google.golang.org/grpc + the protobuf well-known
// types (no custom .proto / generated code), the same shape
// protoc-gen-go-grpc emits for a service with three unary methods.
package adminpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// AdminServer is the interface an implementation of the admin service
// must satisfy; mirrors what protoc-gen-go-grpc would generate for:
//
//	service Admin {
//	  rpc Ping(google.protobuf.Empty) returns (google.protobuf.Empty);
//	  rpc ContinuationPointCount(google.protobuf.StringValue) returns (google.protobuf.Int32Value);
//	  rpc ReleaseSession(google.protobuf.StringValue) returns (google.protobuf.Empty);
//	}
type AdminServer interface {
	Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	ContinuationPointCount(context.Context, *wrapperspb.StringValue) (*wrapperspb.Int32Value, error)
	ReleaseSession(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// UnimplementedAdminServer embeds into a concrete implementation to
// satisfy AdminServer for methods it doesn't override, matching the
// forward-compatibility convention generated servers use.
type UnimplementedAdminServer struct{}

func (UnimplementedAdminServer) Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, grpcUnimplemented("Ping")
}
func (UnimplementedAdminServer) ContinuationPointCount(context.Context, *wrapperspb.StringValue) (*wrapperspb.Int32Value, error) {
	return nil, grpcUnimplemented("ContinuationPointCount")
}
func (UnimplementedAdminServer) ReleaseSession(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, grpcUnimplemented("ReleaseSession")
}

func RegisterAdminServer(s grpc.ServiceRegistrar, srv AdminServer) {
	s.RegisterService(&_Admin_serviceDesc, srv)
}

func _Admin_Ping_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdminServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/addrspace.admin.v1.Admin/Ping"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AdminServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Admin_ContinuationPointCount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdminServer).ContinuationPointCount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/addrspace.admin.v1.Admin/ContinuationPointCount"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AdminServer).ContinuationPointCount(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Admin_ReleaseSession_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdminServer).ReleaseSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/addrspace.admin.v1.Admin/ReleaseSession"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AdminServer).ReleaseSession(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

var _Admin_serviceDesc = grpc.ServiceDesc{
	ServiceName: "addrspace.admin.v1.Admin",
	HandlerType: (*AdminServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: _Admin_Ping_Handler},
		{MethodName: "ContinuationPointCount", Handler: _Admin_ContinuationPointCount_Handler},
		{MethodName: "ReleaseSession", Handler: _Admin_ReleaseSession_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "addrspace/admin/v1/admin.proto",
}

// AdminClient is the client-side counterpart of AdminServer.
// cmd/browsecli does not use it: it drives an in-process
// addrspace.Service instead.
type AdminClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ContinuationPointCount(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int32Value, error)
	ReleaseSession(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type adminClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminClient(cc grpc.ClientConnInterface) AdminClient {
	return &adminClient{cc: cc}
}

func (c *adminClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, "/addrspace.admin.v1.Admin/Ping", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminClient) ContinuationPointCount(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int32Value, error) {
	out := new(wrapperspb.Int32Value)
	if err := c.cc.Invoke(ctx, "/addrspace.admin.v1.Admin/ContinuationPointCount", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminClient) ReleaseSession(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, "/addrspace.admin.v1.Admin/ReleaseSession", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func grpcUnimplemented(method string) error {
	return status.Error(codes.Unimplemented, "method "+method+" not implemented")
}
