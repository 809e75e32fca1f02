// Package proto describes the gophauth.v1.AuthService gRPC service.
//
// Messages are google.protobuf.Struct values, so the service is declared by
// hand instead of through protoc output. Field names are listed below.
//
//	GetUser      {}                         -> {user}
//	RegisterUser {email, password, name}    -> {user, token}
//	LoginUser    {email, password}          -> {user, token}
//	Ping         {}                         -> {status}
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "gophauth.v1.AuthService"

const (
	GetUserFullMethodName      = "/" + ServiceName + "/GetUser"
	RegisterUserFullMethodName = "/" + ServiceName + "/RegisterUser"
	LoginUserFullMethodName    = "/" + ServiceName + "/LoginUser"
	PingFullMethodName         = "/" + ServiceName + "/Ping"
)

// AuthServiceServer is the server API for AuthService.
type AuthServiceServer interface {
	GetUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RegisterUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LoginUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}

type method func(AuthServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call method) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetUser", Handler: unaryHandler(GetUserFullMethodName, AuthServiceServer.GetUser)},
		{MethodName: "RegisterUser", Handler: unaryHandler(RegisterUserFullMethodName, AuthServiceServer.RegisterUser)},
		{MethodName: "LoginUser", Handler: unaryHandler(LoginUserFullMethodName, AuthServiceServer.LoginUser)},
		{MethodName: "Ping", Handler: unaryHandler(PingFullMethodName, AuthServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophauth/v1/auth.proto",
}

// AuthServiceClient is the client API for AuthService.
type AuthServiceClient interface {
	GetUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RegisterUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	LoginUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc}
}

func (c *authServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) GetUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetUserFullMethodName, in, opts)
}

func (c *authServiceClient) RegisterUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RegisterUserFullMethodName, in, opts)
}

func (c *authServiceClient) LoginUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LoginUserFullMethodName, in, opts)
}

func (c *authServiceClient) Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PingFullMethodName, in, opts)
}
