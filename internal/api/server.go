// Package api serves the BoardStore over a JSON REST interface.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/zulandar/workboard/internal/config"
	"github.com/zulandar/workboard/internal/store"
)

// Opts holds what the API server needs.
type Opts struct {
	Store   *store.BoardStore
	HTTP    config.HTTPConfig
	Logger  *logrus.Logger
	Version string
}

// NewRouter builds the gin engine with middleware and every route
// registered.
func NewRouter(opts Opts) (*gin.Engine, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("api: store is required")
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	m := newMetrics()
	router.Use(gin.Recovery(), requestLogger(opts.Logger), m.middleware())
	router.Use(cors.New(corsConfig(opts.HTTP.CORSOrigins)))

	router.GET("/metrics", gin.WrapH(m.handler()))
	registerRoutes(router, &handlers{store: opts.Store, version: opts.Version})
	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "Origin"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        300 * time.Second,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Start launches the API server. It blocks until ctx is cancelled, then
// shuts down gracefully within the configured shutdown timeout.
func Start(ctx context.Context, opts Opts) error {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	router, err := NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         opts.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  opts.HTTP.ReadTimeout,
		WriteTimeout: opts.HTTP.WriteTimeout,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		timeout := opts.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		sctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(sctx)
	}()

	opts.Logger.WithField("addr", srv.Addr).Info("api: listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api: %w", err)
	}
	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("api: shutdown: %w", err)
	}
	opts.Logger.Info("api: stopped")
	return nil
}
