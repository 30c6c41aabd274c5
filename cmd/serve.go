package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/sbt-cli/internal/api"
	"github.com/sells-group/sbt-cli/internal/chart"
	"github.com/sells-group/sbt-cli/internal/config"
	"github.com/sells-group/sbt-cli/internal/metrics"
	"github.com/sells-group/sbt-cli/internal/sbt"
)

var servePort int

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the classification HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		srv, err := buildServer(cfg)
		if err != nil {
			return err
		}

		httpSrv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		return runHTTP(ctx, httpSrv)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildServer wires the API from configuration.
func buildServer(c *config.Config) (*api.Server, error) {
	mode, err := chart.ParseMode(c.Chart.Mode)
	if err != nil {
		return nil, err
	}
	format, err := chart.ParseFormat(c.Chart.Format)
	if err != nil {
		return nil, err
	}

	collector, err := metrics.NewCollector(nil)
	if err != nil {
		return nil, eris.Wrap(err, "serve: metrics")
	}

	var cache *chart.Cache
	if c.Chart.CacheEntries > 0 {
		cache = chart.NewCache(c.Chart.CacheEntries, c.Chart.CacheTTL)
	}

	return api.NewServer(api.Options{
		Classifier:        sbt.NewClassifier(zap.L()),
		Renderer:          chart.NewRenderer(c.Chart.WidthCM, c.Chart.HeightCM, zap.L()),
		Cache:             cache,
		Metrics:           collector,
		RateLimit:         c.Server.RateLimit,
		RateBurst:         c.Server.RateBurst,
		CORSOrigins:       c.Server.CORSOrigins,
		MaxPoints:         c.Server.MaxPoints,
		Workers:           c.Classify.Workers,
		ParallelThreshold: c.Classify.ParallelThreshold,
		DefaultMode:       mode,
		DefaultFormat:     format,
	}), nil
}

// runHTTP serves until ctx is cancelled, then shuts down gracefully.
func runHTTP(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zap.L().Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server shutdown")
		}
		return nil
	})

	return g.Wait()
}
