package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/treeoracle"
	"github.com/aretw0/treeoracle/internal/cli"
	httpAdapter "github.com/aretw0/treeoracle/pkg/adapters/http"
	"github.com/aretw0/treeoracle/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Serves sample generation and stored samples as a JSON API, with Prometheus metrics on /metrics.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("addr") {
				cfg.HTTP.Addr, _ = cmd.Flags().GetString("addr")
			}
			if cmd.Flags().Changed("store") {
				cfg.Store.Kind, _ = cmd.Flags().GetString("store")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			store, closeStore, err := cli.NewStore(ctx, cfg.Store, a.logger)
			if err != nil {
				return err
			}
			defer closeStore()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics := observability.NewMetrics(reg)

			oracle := cli.NewOracle(cfg, store, a.logger, metrics.Hooks())
			handler := httpAdapter.NewHandler(oracle, store,
				httpAdapter.WithLogger(a.logger),
				httpAdapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
				httpAdapter.WithVersion(treeoracle.Version),
			)

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runServer(ctx, a, srv)
		},
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")
	cmd.Flags().String("store", "memory", "Sample store: memory, file, badger, redis")
	return cmd
}

// runServer blocks until srv fails or ctx is cancelled, then shuts down gracefully.
func runServer(ctx *cli.SignalContext, a *app, srv *http.Server) error {
	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("starting treeoracle server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		a.logger.Info("start shutdown", "signal", ctx.Signal())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		a.logger.Info("treeoracle server stopped gracefully")
		return nil
	}
}
