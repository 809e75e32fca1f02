package grpc

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeAuth struct {
	resolveUser *models.User
	resolveErr  error
	gotHeader   string

	result  *models.AuthResult
	err     error
	gotArgs []string
}

func (f *fakeAuth) ResolveIdentity(_ context.Context, header string) (*models.User, error) {
	f.gotHeader = header
	return f.resolveUser, f.resolveErr
}

func (f *fakeAuth) Register(_ context.Context, email, password, name string) (*models.AuthResult, error) {
	f.gotArgs = []string{email, password, name}
	return f.result, f.err
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.AuthResult, error) {
	f.gotArgs = []string{email, password}
	return f.result, f.err
}

func newTestServer(a Authenticator) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", nopLogger{}, a)
}

func registerReq(t *testing.T, email, password, name string) *structpb.Struct {
	t.Helper()
	req, err := pb.NewRegisterRequest(email, password, name)
	require.NoError(t, err)
	return req
}

func loginReq(t *testing.T, email, password string) *structpb.Struct {
	t.Helper()
	req, err := pb.NewLoginRequest(email, password)
	require.NoError(t, err)
	return req
}
