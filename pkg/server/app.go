package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"MarketLens/internal/usecase"
	pkgcache "MarketLens/pkg/cache"
	"MarketLens/pkg/config"
	xhttp "MarketLens/pkg/http"
	applogger "MarketLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handlers   []xhttp.Handler
	refresher  *usecase.Refresher
	store      pkgcache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	refresher *usecase.Refresher,
	store pkgcache.Service,
	handlers ...xhttp.Handler,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		handlers:  handlers,
		refresher: refresher,
		store:     store,
	}
}

// multiHandler registers every handler onto the same Echo instance.
type multiHandler []xhttp.Handler

func (m multiHandler) RegisterRoutes(e *echo.Echo) {
	for _, h := range m {
		h.RegisterRoutes(e)
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(multiHandler(a.handlers),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.refresher != nil {
		if err := a.refresher.Start(); err != nil {
			a.logger.Error("refresher start error", applogger.Error(err))
			return err
		}
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if a.refresher != nil {
		a.refresher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
