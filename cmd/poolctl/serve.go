package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/achen-dev/gopool/metrics"
	"github.com/achen-dev/gopool/pool"
	"github.com/achen-dev/gopool/poollog"
	"github.com/achen-dev/gopool/sessionpool"
)

func newServeCmd() *cobra.Command {
	var configPath string
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a pool and expose its metrics over HTTP until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := poollog.Default()

			fc, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			factory, err := sessionpool.NewSQLiteFactory(fc.DSN)
			if err != nil {
				return err
			}
			defer factory.Close()

			p := pool.NewPool(factory, fc.toPoolConfig(logger))
			defer p.Close()

			registry := prometheus.NewRegistry()
			registry.MustRegister(metrics.NewCollector(p, "poolctl"))

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
			srv := &http.Server{Addr: metricsAddr, Handler: mux}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			logger.Infof("poolctl: serving metrics on %s/metrics", metricsAddr)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return err
				}
			case <-sigCh:
				logger.Infof("poolctl: shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a pool YAML config file (required)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "address to serve /metrics on")
	cmd.MarkFlagRequired("config")
	return cmd
}
