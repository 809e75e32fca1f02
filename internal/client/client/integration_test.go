package client

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
	"github.com/dmitrijs2005/gophauth/internal/server/password"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

func newBufconnClient(t *testing.T) *GRPCClient {
	t.Helper()

	svc := services.NewAuthService(users.NewMemoryRepository(), password.Argon2id{}, []byte("k"), time.Hour, nopLogger{})
	srv := gs.NewGRPCServer("bufnet", nopLogger{}, svc)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(ctx, lis)
	}()

	c, err := NewGophAuthClient("passthrough:///bufnet", 5*time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		cancel()
		<-done
	})
	return c
}

func TestClientAgainstServer(t *testing.T) {
	c := newBufconnClient(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	reg, err := c.Register(ctx, "a@x.io", "pw1", "Ann")
	require.NoError(t, err)

	me, err := c.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, me.ID)

	c.Logout()
	_, err = c.WhoAmI(ctx)
	require.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = c.Register(ctx, "a@x.io", "pw2", "Bob")
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = c.Login(ctx, "a@x.io", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	in, err := c.Login(ctx, "a@x.io", "pw1")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, in.ID)

	me, err = c.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", me.Name)
}
