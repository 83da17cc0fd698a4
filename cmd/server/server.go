package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"mert-chat/internal/config"
	"mert-chat/internal/infrastructure/crontab"
	"mert-chat/internal/infrastructure/logger"
	"mert-chat/internal/infrastructure/observability"
	"mert-chat/internal/interfaces/httpserver"
)

// @title Mert Chat API
// @version 1.0
// @description Persona chat backend: authenticated users talk to the Mert persona.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	crontab    *crontab.Crontab
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, crontab *crontab.Crontab, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		crontab:    crontab,
		log:        log,
	}
}

// Start runs the HTTP server and the maintenance jobs until ctx ends or one of them fails.
func (a *Application) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.httpServer.Run(ctx)
	})
	g.Go(func() error {
		return a.crontab.Run(ctx)
	})
	return g.Wait()
}

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	app, cleanup, err := BuildApplication(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("build application")
		return
	}
	defer cleanup()

	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return
	}

	log.Info().Msg("application exited cleanly")
}
