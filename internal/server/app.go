package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philly/folio/internal/platform/eventbus"
	"github.com/philly/folio/internal/platform/logger"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests
const shutdownTimeout = 10 * time.Second

type App struct {
	server *http.Server
	config Config
	bus    *eventbus.Bus
	logger logger.Logger
}

func NewApp(server *http.Server, config Config, bus *eventbus.Bus, logger logger.Logger) *App {
	return &App{
		server: server,
		config: config,
		bus:    bus,
		logger: logger,
	}
}

// Run starts the application and handles graceful shutdown
func (a *App) Run() error {
	ctx := context.Background()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "starting server",
			"address", a.server.Addr,
			"environment", a.config.Environment,
			"storage_driver", a.config.StorageDriver,
		)
		serverErrors <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		a.logger.Info(ctx, "shutting down server", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to gracefully shutdown server: %w", err)
		}
	}

	// Let event handlers started by the last requests finish
	a.bus.Wait()

	a.logger.Info(ctx, "server stopped")
	return nil
}
