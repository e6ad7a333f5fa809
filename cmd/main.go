package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/angeloszaimis/go-dispatch/config"
	"github.com/angeloszaimis/go-dispatch/internal/dispatch"
	"github.com/angeloszaimis/go-dispatch/internal/httpmsg"
	"github.com/angeloszaimis/go-dispatch/internal/httpserver"
	"github.com/angeloszaimis/go-dispatch/internal/metrics"
	"github.com/angeloszaimis/go-dispatch/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metricsCollector := metrics.NewCollector(cfg.Metrics.BufferSize, log)
	metricsCollector.Start(ctx)

	table, err := setupRoutes(metricsCollector)
	if err != nil {
		log.Error("Failed to register routes", slog.Any("err", err))
		os.Exit(1)
	}

	dispatcher := dispatch.NewDispatcher(log, table, httpmsg.ParseLimits{
		MaxHeaderBytes: cfg.Limits.MaxHeaderBytes,
		MaxBodyBytes:   cfg.Limits.MaxBodyBytes,
	}, metricsCollector)

	srv, err := httpserver.New(cfg.Server.Address, dispatcher, log)
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	log.Info("Dispatch server starting", slog.String("address", cfg.Server.Address))

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}
