package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.AuthServiceClient

	mu    sync.RWMutex
	token string
}

func withAuthorization(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) authorizationInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.currentToken(); token != "" {
		ctx = withAuthorization(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGophAuthClient dials endpointURL lazily. A positive timeout bounds every call.
func NewGophAuthClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.authorizationInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewAuthServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) currentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *GRPCClient) setToken(t string) {
	s.mu.Lock()
	s.token = t
	s.mu.Unlock()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

// authenticate runs Register or Login and keeps the returned token.
func (s *GRPCClient) authenticate(ctx context.Context, call func(context.Context) (*structpb.Struct, error)) (*User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := call(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}

	token := pb.String(resp, pb.FieldToken)
	if token == "" {
		return nil, fmt.Errorf("rpc error: response has no token")
	}
	u, err := userFrom(resp)
	if err != nil {
		return nil, err
	}

	s.setToken(token)
	return u, nil
}

func (s *GRPCClient) Register(ctx context.Context, email, password, name string) (*User, error) {
	req, err := pb.NewRegisterRequest(email, password, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return s.authenticate(ctx, func(ctx context.Context) (*structpb.Struct, error) {
		return s.client.RegisterUser(ctx, req)
	})
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*User, error) {
	req, err := pb.NewLoginRequest(email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return s.authenticate(ctx, func(ctx context.Context) (*structpb.Struct, error) {
		return s.client.LoginUser(ctx, req)
	})
}

// WhoAmI asks the server which user the held token belongs to.
func (s *GRPCClient) WhoAmI(ctx context.Context) (*User, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetUser(ctx, pb.NewEmpty())
	if err != nil {
		return nil, s.mapError(err)
	}
	return userFrom(resp)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, pb.NewEmpty())
	if err != nil {
		return s.mapError(err)
	}

	if pb.String(resp, pb.FieldStatus) != "OK" {
		return ErrUnavailable
	}

	return nil
}

// Logout forgets the held token. Tokens are stateless, so nothing is sent
// to the server.
func (s *GRPCClient) Logout() { s.setToken("") }

func (s *GRPCClient) LoggedIn() bool { return s.currentToken() != "" }

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func userFrom(resp *structpb.Struct) (*User, error) {
	u, err := pb.UserFrom(resp)
	if err != nil {
		return nil, fmt.Errorf("rpc error: %w", err)
	}
	return &User{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.AlreadyExists:
		return ErrEmailTaken
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
