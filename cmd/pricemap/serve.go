package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpadapter "github.com/anantsinghal-found/natgas-pricevis/internal/adapter/http"
	"github.com/anantsinghal-found/natgas-pricevis/internal/observability"
	"github.com/anantsinghal-found/natgas-pricevis/internal/pipeline"
)

func newServeCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders over HTTP with per-request thresholds",
		Long: `Load the price tables once and serve /api/render, /api/report,
/map.png and /map.svg. Query parameters gas_threshold, elec_threshold and
mode override the defaults set by flags and environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, cfg)
			if err != nil {
				return err
			}

			metrics := observability.NewMetrics()
			sources, err := buildSources(cfg, metrics)
			if err != nil {
				return err
			}

			opts := pipelineOptions(cfg)
			if req.Mode != "" {
				opts.Mode = req.Mode
			}
			p := pipeline.New(sources, nil, opts, logger, metrics)
			srv := httpadapter.NewServer(cfg.HTTPAddr, p, req.Thresholds, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Start HTTP server. /readyz reports 503 until the load below finishes.
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server error", "error", err)
					stop()
				}
			}()

			_, loadErr := p.Load(ctx)
			if loadErr != nil {
				stop()
			}

			<-ctx.Done()
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
			logger.Info("shutdown complete")
			return loadErr
		},
	}

	flags.register(cmd)
	return cmd
}
