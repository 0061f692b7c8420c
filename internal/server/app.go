// Package server wires the account service together: it opens the database,
// applies migrations, builds the services and runs the HTTP and gRPC servers
// until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/patientauth/internal/logging"
	"github.com/dmitrijs2005/patientauth/internal/server/auth"
	"github.com/dmitrijs2005/patientauth/internal/server/config"
	"github.com/dmitrijs2005/patientauth/internal/server/health"
	"github.com/dmitrijs2005/patientauth/internal/server/httpserver"
	"github.com/dmitrijs2005/patientauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/patientauth/internal/server/services"
	"github.com/dmitrijs2005/patientauth/internal/server/tracing"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/patientauth/internal/server/grpc"
)

// Version is reported in traces. Overridden at build time with -ldflags.
var Version = "dev"

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	tracing tracing.ShutdownFunc
	watcher *health.Watcher
	http    *httpserver.Server
	grpc    *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{Endpoint: c.OTLPEndpoint, Insecure: true, Version: Version})
	if err != nil {
		return nil, fmt.Errorf("tracing init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	tokens, err := auth.NewTokenService(c.SecretKey, c.AccessTokenValidityDuration)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	svc := services.NewAuthService(db, rm, tokens, auth.NewBcryptHasher(c.BcryptCost), c.RequestTimeout, logger)

	watcher := health.NewWatcher(db, c.HealthCheckInterval, logger)
	grpcSrv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger)
	watcher.OnChange(grpcSrv.SetServing)

	gin.SetMode(gin.ReleaseMode)
	httpSrv := httpserver.NewServer(httpserver.Options{
		Address:            c.EndpointAddrHTTP,
		CORSAllowedOrigins: c.CORSAllowedOrigins,
	}, svc, tokens, watcher, logger)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		tracing: shutdownTracing,
		watcher: watcher,
		http:    httpSrv,
		grpc:    grpcSrv,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runServer runs fn and cancels the whole app when it fails.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		app.logger.Error(ctx, "server stopped", "server", name, "error", err.Error())
		cancelFunc()
	}
}

// Run blocks until a shutdown signal arrives or one of the servers fails,
// then releases the database and flushes traces.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.watcher.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "grpc", app.grpc.Run)
	}()
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http", app.http.Run)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err.Error())
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.tracing(flushCtx); err != nil {
		app.logger.Error(ctx, "flushing traces", "error", err.Error())
	}

	app.logger.Info(ctx, "App stopped")
}
