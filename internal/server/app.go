// Package server wires the gophauth server: it picks the user directory
// backend, builds the authentication service and runs the gRPC endpoint
// until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/password"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophauth/internal/server/services"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *services.AuthService
}

// openPostgres is a seam for tests.
var openPostgres = repomanager.OpenPostgres

// NewApp validates c and builds every dependency. With the postgres backend
// it connects and applies migrations before returning.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout, repomanager.NewPostgresRepositoryManager())
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer, rm repomanager.RepositoryManager) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.NewJSONLogger(logOut, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	hasher, err := password.New(c.PasswordAlgorithm)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger}

	var repo users.Repository
	switch c.DirectoryBackend {
	case config.BackendMemory:
		logger.Warn(ctx, "using in-memory user directory, data is lost on restart")
		repo = users.NewMemoryRepository()
	default:
		db, err := openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.db = db
		repo = rm.Users(db)
	}

	app.authService = services.NewAuthService(repo, hasher, []byte(c.SecretKey), c.TokenValidityDuration, logger)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the database handle.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"backend", app.config.DirectoryBackend,
		"password_algorithm", app.config.PasswordAlgorithm,
		"token_validity", app.config.TokenValidityDuration.String())

	app.initSignalHandler(cancelFunc)

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.authService)

	err := s.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
	}

	if app.db != nil {
		if cerr := app.db.Close(); cerr != nil {
			app.logger.Error(ctx, "db close failed", "error", cerr)
		}
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
