package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <concepts|instances>",
		Short: "Merge every pending snapshot of a source",
		Long: `Process drains the pending snapshots of one source. Each snapshot is
merged into its canonical record and then written to the processed or the
failed ledger. A failing snapshot never stops the run.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"concepts", "instances"},
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd)
			if err != nil {
				return err
			}

			metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
			if metricsAddr == "" {
				metricsAddr = application.config.Metrics.Addr
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			processor, err := application.processor(args[0], registry)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				server := &http.Server{
					Addr:              metricsAddr,
					Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						application.logger.Error("metrics server stopped", "addr", metricsAddr, "error", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = server.Shutdown(shutdownCtx)
				}()
				application.logger.Info("serving metrics", "addr", metricsAddr)
			}

			report, err := processor.Process(ctx)
			if report != nil {
				fmt.Fprint(cmd.OutOrStdout(), report.String())
			}
			if err != nil {
				return fmt.Errorf("processing %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while processing")

	return cmd
}
