package server

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PredictPulse/internal/handler/ws"
	"PredictPulse/internal/usecase"
	"PredictPulse/pkg/config"
	xhttp "PredictPulse/pkg/http"
	applogger "PredictPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// App encapsulates the entire application lifecycle: catalog refresh
// loop, HTTP server, websocket hub and graceful shutdown.
type App struct {
	cfg     *config.Config
	logger  *applogger.Logger
	catalog *usecase.CatalogHolder
	hub     *ws.Hub
	handler xhttp.Handler

	httpServer *xhttp.Server
	closers    []io.Closer
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	catalog *usecase.CatalogHolder,
	hub *ws.Hub,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:     cfg,
		logger:  l,
		catalog: catalog,
		hub:     hub,
		handler: handler,
	}
}

// AddCloser registers a resource to close on shutdown.
func (a *App) AddCloser(c io.Closer) {
	a.closers = append(a.closers, c)
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog reloads fan out to websocket clients.
	a.catalog.OnReload(func(snap *usecase.Snapshot) {
		notice, err := json.Marshal(ws.RefreshNotice{
			Type:        "catalog_refresh",
			Events:      len(snap.Events),
			RefreshedAt: snap.RefreshedAt,
		})
		if err != nil {
			return
		}
		a.hub.Broadcast(notice)
	})

	// Initial load. A failure is not fatal; the refresh loop keeps
	// retrying and the server answers from an empty snapshot until the
	// feed comes back.
	loadCtx, loadCancel := context.WithTimeout(ctx, 2*time.Minute)
	if err := a.catalog.Reload(loadCtx); err != nil {
		a.logger.Warn("initial catalog load failed", applogger.Error(err))
	}
	loadCancel()

	go a.refreshLoop(ctx)

	a.httpServer = xhttp.NewServer(multiHandler{a.handler, a.hub},
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithRequestMetrics(a.logger, time.Second),
	)
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
	cancel()
	return a.shutdown()
}

func (a *App) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.Catalog.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reloadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			if err := a.catalog.Reload(reloadCtx); err != nil {
				a.logger.Error("catalog refresh failed", applogger.Error(err))
			}
			cancel()
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}

// multiHandler registers routes from several handlers on one Echo.
type multiHandler []xhttp.Handler

func (m multiHandler) RegisterRoutes(e *echo.Echo) {
	for _, h := range m {
		if h != nil {
			h.RegisterRoutes(e)
		}
	}
}
