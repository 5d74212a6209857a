package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/okian/hiredw/internal/adapters/http/api"
	"github.com/okian/hiredw/internal/adapters/http/swagger"
	"github.com/okian/hiredw/internal/adapters/repository"
	"github.com/okian/hiredw/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func (c *cli) newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only KPI API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Addr = addr
			}
			return c.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	w, err := repository.OpenExisting(ctx, c.cfg.DBPath)
	if err != nil {
		return err
	}
	defer w.Close()

	srv := newHTTPServer(ctx, c.cfg.Addr, w, c.cfg.WatchCountries, c.log.Named("http"))

	errCh := make(chan error, 1)
	go func() {
		c.log.Info(ctx, "starting HTTP server", logger.String("addr", c.cfg.Addr), logger.String("db", c.cfg.DBPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	c.log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	c.log.Info(ctx, "server stopped")
	return nil
}

// newHTTPServer wires the KPI API and its documentation on one router.
func newHTTPServer(ctx context.Context, addr string, w *repository.Warehouse, watch []string, log logger.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	agg := repository.NewAggregator(w,
		repository.WithWatchCountries(watch...),
		repository.WithAggregatorLogger(log.Named("aggregator")),
	)
	router := api.NewServer(agg, w, api.WithLogger(log)).NewRouter(ctx)
	swagger.Register(ctx, router)

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
