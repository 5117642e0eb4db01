// Package server initializes and runs the choki API server.
// It opens the database, applies schema migrations, wires services and
// serves the REST API until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yeojiphap/choki/internal/logging"
	"github.com/yeojiphap/choki/internal/server/config"
	"github.com/yeojiphap/choki/internal/server/httpapi"
	"github.com/yeojiphap/choki/internal/server/invitecode"
	"github.com/yeojiphap/choki/internal/server/repositories/repomanager"
	"github.com/yeojiphap/choki/internal/server/services"
	"github.com/yeojiphap/choki/internal/telemetry"
)

const serviceName = "choki"

type App struct {
	config            *config.Config
	logger            logging.Logger
	db                *sql.DB
	server            *httpapi.HTTPServer
	shutdownTelemetry func(context.Context) error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	shutdownTelemetry, err := telemetry.Setup(ctx, serviceName, c.OTelEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		_ = shutdownTelemetry(ctx)
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		_ = shutdownTelemetry(ctx)
		return nil, fmt.Errorf("migration error: %w", err)
	}

	svc := httpapi.Services{
		Families: services.NewFamilyService(db, rm, invitecode.NewGenerator(c.InviteCodeLength)),
		Missions: services.NewMissionService(db, rm),
		Routes:   services.NewRouteService(db, rm),
		Users:    services.NewUserService(db, rm),
	}

	srv := httpapi.NewHTTPServer(c.EndpointAddrHTTP, logger, svc, c.SecretKey, c.ReadHeaderTimeout, c.ShutdownTimeout)

	return &App{config: c, logger: logger, db: db, server: srv, shutdownTelemetry: shutdownTelemetry}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the API until ctx is cancelled or a termination signal
// arrives, then closes the database and flushes pending spans.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close error", "error", cerr)
	}

	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.ShutdownTimeout)
	defer cancel()
	if terr := app.shutdownTelemetry(flushCtx); terr != nil {
		app.logger.Error(ctx, "telemetry shutdown error", "error", terr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
