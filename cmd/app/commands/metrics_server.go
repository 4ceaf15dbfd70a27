package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/fieldcrypt/internal/app"
	"github.com/allisson/fieldcrypt/internal/config"
)

// RunMetricsServer starts the standalone Prometheus metrics server with
// graceful shutdown support. Blocks until SIGINT/SIGTERM or a fatal error.
func RunMetricsServer(ctx context.Context, version string) error {
	cfg := config.Load()

	gin.SetMode(gin.ReleaseMode)

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting metrics server", slog.String("version", version))

	defer closeContainer(container, logger)

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer == nil {
		return fmt.Errorf("metrics are disabled (METRICS_ENABLED=false)")
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		if err := metricsServer.Start(ctx); err != nil {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		return metricsServer.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
