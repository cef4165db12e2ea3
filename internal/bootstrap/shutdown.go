package bootstrap

import (
	"context"
	"log/slog"

	"github.com/dsolodov/foodwheel/internal/server"
	"github.com/dsolodov/foodwheel/internal/spin"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server      *server.Server
	SpinService spin.Service
}

// GracefulShutdown stops accepting requests first, then waits for in-flight
// spins to settle so no debited spin is left without a history record.
// Errors during shutdown are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	shutdownService(ctx, ServiceNameSpin, components.SpinService)

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if service == nil {
		return
	}
	if err := service.Shutdown(ctx); err != nil {
		slog.Error("Service shutdown failed", "service", name, "error", err)
	}
}
