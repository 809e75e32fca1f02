package cli

import (
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
)

type fakeClient struct {
	loggedIn bool

	gotEmail, gotPassword, gotName string

	user    *client.User
	err     error
	pingErr error
	closed  bool
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) Register(_ context.Context, email, password, name string) (*client.User, error) {
	f.gotEmail, f.gotPassword, f.gotName = email, password, name
	if f.err != nil {
		return nil, f.err
	}
	f.loggedIn = true
	return f.user, nil
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*client.User, error) {
	f.gotEmail, f.gotPassword = email, password
	if f.err != nil {
		return nil, f.err
	}
	f.loggedIn = true
	return f.user, nil
}

func (f *fakeClient) WhoAmI(context.Context) (*client.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }
func (f *fakeClient) Logout()                    { f.loggedIn = false }
func (f *fakeClient) LoggedIn() bool             { return f.loggedIn }

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				lines = append(lines, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// scriptedInput answers Line prompts from lines in order and every Secret
// prompt with secret.
type scriptedInput struct {
	lines  []string
	secret string
	asked  []string
}

func (s *scriptedInput) Line(label string) (string, error) {
	s.asked = append(s.asked, label)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	v := s.lines[0]
	s.lines = s.lines[1:]
	return v, nil
}

func (s *scriptedInput) Secret(label string) (string, error) {
	s.asked = append(s.asked, label)
	return s.secret, nil
}

func newTestApp(f *fakeClient, lines ...string) *App {
	return &App{client: f, in: &scriptedInput{lines: lines, secret: "secret"}}
}
