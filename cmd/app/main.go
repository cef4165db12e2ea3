package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dsolodov/foodwheel/internal/bootstrap"
	"github.com/dsolodov/foodwheel/internal/config"
	"github.com/dsolodov/foodwheel/internal/event"
	"github.com/dsolodov/foodwheel/internal/handler"
	"github.com/dsolodov/foodwheel/internal/logger"
	"github.com/dsolodov/foodwheel/internal/payment"
	"github.com/dsolodov/foodwheel/internal/server"
	"github.com/dsolodov/foodwheel/internal/spin"
	"github.com/dsolodov/foodwheel/internal/userstate"
	"github.com/dsolodov/foodwheel/internal/wheel"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg.LogLevel, os.Stdout)
	slog.Info("Starting foodwheel",
		"port", cfg.Port,
		"spin_price", cfg.SpinPrice,
		"free_play", cfg.FreePlay())

	ctx := context.Background()

	store, closeStore, err := bootstrap.InitializeStorage(cfg)
	if err != nil {
		slog.Error("Storage initialization failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// A stored override beats the environment for game parameters.
	config.ApplyOverride(ctx, cfg, store)

	table, err := wheel.NewTable(cfg.Sectors)
	if err != nil {
		slog.Error("Invalid sector table", "error", err)
		os.Exit(1)
	}

	eventBus := event.NewMemoryBus()
	bootstrap.RegisterEventHandlers(eventBus)

	repo := userstate.NewRepository(store)

	spinService, err := spin.NewService(spin.Config{
		Table:         table,
		SpinPrice:     cfg.SpinPrice,
		FreeSpinGrant: cfg.FreeSpinGrant,
		SpinDuration:  cfg.SpinDuration,
	}, repo, spin.AlwaysReady(), eventBus)
	if err != nil {
		slog.Error("Failed to create spin service", "error", err)
		os.Exit(1)
	}

	paymentService := payment.NewService(payment.NewRepository(store), spinService, eventBus)

	handler.InitValidator()
	srv := server.NewServer(cfg, store, spinService, paymentService)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:      srv,
		SpinService: spinService,
	})
}
