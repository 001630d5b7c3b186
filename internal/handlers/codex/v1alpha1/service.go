package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Full method names of the codex service
const (
	CodexService_PrepareHeroProfile_FullMethodName = "/codex.v1alpha1.CodexService/PrepareHeroProfile"
	CodexService_UpdateInventory_FullMethodName    = "/codex.v1alpha1.CodexService/UpdateInventory"
	CodexService_RefreshFromRemote_FullMethodName  = "/codex.v1alpha1.CodexService/RefreshFromRemote"
	CodexService_WatchProfile_FullMethodName       = "/codex.v1alpha1.CodexService/WatchProfile"
)

// CodexServiceServer is the server API for the codex service. Messages are
// profile documents carried as google.protobuf.Struct.
type CodexServiceServer interface {
	PrepareHeroProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateInventory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshFromRemote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WatchProfile(*structpb.Struct, CodexService_WatchProfileServer) error
}

// CodexService_WatchProfileServer is the server side of a WatchProfile stream
type CodexService_WatchProfileServer interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

type codexServiceWatchProfileServer struct {
	grpc.ServerStream
}

func (x *codexServiceWatchProfileServer) Send(m *structpb.Struct) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterCodexServiceServer registers srv on s
func RegisterCodexServiceServer(s grpc.ServiceRegistrar, srv CodexServiceServer) {
	s.RegisterService(&CodexService_ServiceDesc, srv)
}

func unaryHandler(
	fullMethod string,
	call func(CodexServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CodexServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CodexServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchProfileHandler(srv interface{}, stream grpc.ServerStream) error {
	m := new(structpb.Struct)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(CodexServiceServer).WatchProfile(m, &codexServiceWatchProfileServer{stream})
}

// CodexService_ServiceDesc is the grpc.ServiceDesc for the codex service
var CodexService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "codex.v1alpha1.CodexService",
	HandlerType: (*CodexServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PrepareHeroProfile",
			Handler:    unaryHandler(CodexService_PrepareHeroProfile_FullMethodName, CodexServiceServer.PrepareHeroProfile),
		},
		{
			MethodName: "UpdateInventory",
			Handler:    unaryHandler(CodexService_UpdateInventory_FullMethodName, CodexServiceServer.UpdateInventory),
		},
		{
			MethodName: "RefreshFromRemote",
			Handler:    unaryHandler(CodexService_RefreshFromRemote_FullMethodName, CodexServiceServer.RefreshFromRemote),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchProfile",
			Handler:       watchProfileHandler,
			ServerStreams: true,
		},
	},
	Metadata: "codex/v1alpha1/codex.proto",
}

// CodexServiceClient is the client API for the codex service
type CodexServiceClient interface {
	PrepareHeroProfile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateInventory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RefreshFromRemote(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	WatchProfile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (CodexService_WatchProfileClient, error)
}

// CodexService_WatchProfileClient is the client side of a WatchProfile stream
type CodexService_WatchProfileClient interface {
	Recv() (*structpb.Struct, error)
	grpc.ClientStream
}

type codexServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCodexServiceClient creates a client on cc
func NewCodexServiceClient(cc grpc.ClientConnInterface) CodexServiceClient {
	return &codexServiceClient{cc}
}

func (c *codexServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *codexServiceClient) PrepareHeroProfile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CodexService_PrepareHeroProfile_FullMethodName, in, opts...)
}

func (c *codexServiceClient) UpdateInventory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CodexService_UpdateInventory_FullMethodName, in, opts...)
}

func (c *codexServiceClient) RefreshFromRemote(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CodexService_RefreshFromRemote_FullMethodName, in, opts...)
}

func (c *codexServiceClient) WatchProfile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (CodexService_WatchProfileClient, error) {
	stream, err := c.cc.NewStream(ctx, &CodexService_ServiceDesc.Streams[0], CodexService_WatchProfile_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &codexServiceWatchProfileClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type codexServiceWatchProfileClient struct {
	grpc.ClientStream
}

func (x *codexServiceWatchProfileClient) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
