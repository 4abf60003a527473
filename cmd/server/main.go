package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medimart/medimart/internal/auth"
	"github.com/medimart/medimart/internal/auth/token"
	"github.com/medimart/medimart/internal/config"
	"github.com/medimart/medimart/internal/server"
	"github.com/medimart/medimart/internal/server/handlers"
	"github.com/medimart/medimart/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	tokens := token.NewService(
		token.Config{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTExpiresIn},
		token.Config{Secret: []byte(cfg.RefreshSecret), TTL: cfg.RefreshExpiresIn},
	)

	authService := auth.NewService(logger, store, tokens)

	authHandler := handlers.NewAuthHandler(logger, authService, cfg.IsProduction())
	userHandler := handlers.NewUserHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, Version, store.DB())

	router := server.NewRouter(logger, tokens, authHandler, userHandler, healthHandler)
	srv := server.New(cfg.Address, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func printVersion() {
	fmt.Printf("MediMart Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
