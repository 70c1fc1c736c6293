package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/NotionPet_Go/internal/scheduler"
	"github.com/osse101/NotionPet_Go/internal/server"
	"github.com/osse101/NotionPet_Go/internal/sse"
	"github.com/osse101/NotionPet_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server        *server.Server
	Hub           *sse.Hub
	Scheduler     *scheduler.Scheduler
	Pool          *worker.Pool
	RefreshWorker *worker.RefreshWorker
}

// GracefulShutdown stops components in dependency order:
//  1. SSE hub, closing open streams so the server can drain
//  2. HTTP server (stop accepting new requests)
//  3. Scheduler, then the worker pool (finish the running sweep)
//  4. Refresh worker (cancel pending refreshes, wait for running ones)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Pool != nil {
		c.Pool.Stop()
	}

	if c.RefreshWorker != nil {
		if err := c.RefreshWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgWorkerShutdownFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
