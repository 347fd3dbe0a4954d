// Package server wires the credential gate, presign issuer, and HTTP API
// together, and owns process lifecycle: signal handling and graceful
// shutdown.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pixeldrop/pixeldrop/internal/logging"
	"github.com/pixeldrop/pixeldrop/internal/server/auth"
	"github.com/pixeldrop/pixeldrop/internal/server/config"
	"github.com/pixeldrop/pixeldrop/internal/server/httpapi"
	"github.com/pixeldrop/pixeldrop/internal/server/presign"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
}

func NewApp(cfg *config.Config) *App {
	logger := logging.NewJSONLogger(os.Stdout)

	gate := auth.NewService(cfg)
	issuer := presign.NewService(cfg)

	srv := &http.Server{
		Addr:         cfg.EndpointAddr,
		Handler:      httpapi.NewRouter(gate, issuer, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{config: cfg, logger: logger, server: srv}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the HTTP server and blocks until the context is cancelled or
// an OS signal arrives, then shuts down gracefully.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	app.logger.Info(ctx, "starting server",
		"addr", app.config.EndpointAddr,
		"key_policy", app.config.KeyPolicy,
		"session_tokens", app.config.SessionTokenRequired,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		app.logger.Error(ctx, "server error", "err", err.Error())
		return
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "forced shutdown", "err", err.Error())
		return
	}

	app.logger.Info(shutdownCtx, "server stopped")
}
