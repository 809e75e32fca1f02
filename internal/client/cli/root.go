package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if a.user != nil {
		s = a.user.Email + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, probes the server and blocks in the REPL until exit.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to gophauth CLI (type 'help' for commands)")

	_ = a.Ping(ctx)

	runREPL(ctx, a, a.getStatus, a.stdin)
}
