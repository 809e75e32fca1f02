package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	client client.Client
	user   *client.User
	Mode   Mode
	in     input
	stdin  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGophAuthClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	stdin := bufio.NewReader(os.Stdin)

	return &App{config: c, client: apiClient, in: newTerminalInput(stdin, os.Stdout), stdin: stdin}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.client.Close(); err != nil {
			log.Printf("close error: %v", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil && a.client.LoggedIn()
}
