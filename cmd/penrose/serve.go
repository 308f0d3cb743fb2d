package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/penrose/internal/cli"
	httpAdapter "github.com/aretw0/penrose/pkg/adapters/http"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Serves generations as a JSON API over HTTP. Requests are validated against the
embedded OpenAPI document (GET /openapi.yaml) and Prometheus metrics are exposed
on GET /metrics. Set redis.addr to share the result cache between replicas.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			metrics := httpAdapter.NewMetrics()
			gen, err := cli.NewGenerator(ctx, a.cfg, a.logger, metrics.Hooks())
			if err != nil {
				return err
			}
			cache, locker, closeCache, err := cli.NewCache(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer closeCache()

			handler, err := httpAdapter.NewHandler(gen,
				httpAdapter.WithCache(cache),
				httpAdapter.WithLocker(locker),
				httpAdapter.WithMetrics(metrics),
				httpAdapter.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", a.cfg.HTTP.Port),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Starting Penrose Server on %s (tiling %s)\n", srv.Addr, gen.Tiling().Name)
			if err := serve(ctx, srv); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Penrose Server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	return cmd
}

// serve runs srv until ctx is cancelled, then drains outstanding requests.
func serve(ctx context.Context, srv *http.Server) error {
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			closeErr := srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, errors.Join(err, closeErr))
		}
		return nil
	}
}
