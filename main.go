package main

import (
	"block-notes/config"
	"block-notes/config/setup"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run app: %v", err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	db, err := setup.InitDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer setup.Shutdown(db, logger)

	application := setup.InitApp(cfg, db, logger)

	fiberApp := setup.NewFiberApp(cfg, logger)
	setup.ApplyMiddleware(fiberApp, cfg, logger)
	setup.RegisterRoutes(fiberApp, application)

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return fiberApp.Listen(":" + cfg.Port)
	})

	eg.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("server stopped")
	return nil
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	level := getLogLevel(cfg.LogLevel)

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})
	}

	return slog.New(handler)
}

func getLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
