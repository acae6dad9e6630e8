// Package server owns the listen/serve lifecycle: boot config, connect the
// stores, serve the handler and drain connections on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/queue"
)

const shutdownTimeout = 10 * time.Second

// Start boots the dependencies, builds the handler and serves it until the
// process is signalled. The handler is built through a callback so route
// registration sees a connected database. Redis is optional: without it the
// cache no-ops, the checkout lock falls back to in-process and the queue
// stays on the memory driver.
func Start(build func() http.Handler) error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	if uri := config.Get("MONGO_URI", ""); uri != "" {
		if h, err := logger.NewMongoHandler(uri, config.Get("MONGO_LOG_DB", "storefront"), "logs"); err != nil {
			logger.Warn("mongo audit log unavailable", "error", err)
		} else {
			logger.L = slog.New(logger.NewMultiHandler(logger.L.Handler(), h))
			slog.SetDefault(logger.L)
		}
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, continuing without it", "error", err)
	}
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	if database.DB != nil {
		queue.UseDB(database.DB)
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           build(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	logger.Info("storefront listening", "addr", srv.Addr, "env", config.AppEnv())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
