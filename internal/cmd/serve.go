package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storcli-exporter/internal/collector"
	"storcli-exporter/internal/config"
	"storcli-exporter/internal/health"
	"storcli-exporter/internal/logging"
	"storcli-exporter/internal/metrics"
	"storcli-exporter/pkg/storcli"
	"storcli-exporter/pkg/types"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(v *viper.Viper, build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Prometheus exporter",
		Long: `Run the Prometheus exporter.

Controllers are polled every collect interval; metrics are served on the
metrics path and a JSON health report on /health/json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, build)
		},
	}
}

// exporter bundles the wired components behind the HTTP routes.
type exporter struct {
	cfg       *config.Config
	build     BuildInfo
	logger    *log.Logger
	registry  *prometheus.Registry
	collector *collector.Collector
	health    *health.Service
}

func newExporter(cfg *config.Config, build BuildInfo, logger *log.Logger) (*exporter, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	cli, err := openStorCLI(cfg, metrics.InstrumentRunner(newRunner(), m), logger)
	if err != nil {
		return nil, err
	}

	info := types.StorCLIInfo{
		Binary:       cli.Binary(),
		CacheEnabled: cli.CacheEnabled(),
		Singleton:    cfg.Singleton,
	}
	if ver, err := cli.Version(storcli.WithTimeout(cfg.CommandTimeout)); err != nil {
		logger.Warn("reading storcli version", "err", err)
	} else {
		info.Version = ver
	}
	logger.Info("using storcli", "binary", info.Binary, "version", info.Version)

	source := collector.WithTimeout(cli, cfg.CommandTimeout)
	c := collector.New(source, m, cfg.CollectInterval, logging.Component(logger, "collector"))

	return &exporter{
		cfg:       cfg,
		build:     build,
		logger:    logger,
		registry:  reg,
		collector: c,
		health:    health.New(c, info, build.Version),
	}, nil
}

func serve(ctx context.Context, cfg *config.Config, build BuildInfo) error {
	logger := logging.New(cfg.LogLevel, os.Stderr)
	logger.Info("starting storcli exporter", "version", build.Version, "commit", build.Commit)

	e, err := newExporter(cfg, build, logger)
	if err != nil {
		return err
	}

	// Start metrics collection in background
	go e.collector.Start(ctx)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr, "metrics_path", cfg.MetricsPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// routes configures HTTP routes
func (e *exporter) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Metrics endpoint
	mux.Handle(e.cfg.MetricsPath, promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))
	ver := fmt.Sprintf("v%s (%s)", e.build.Version, e.build.Commit)

	// Root endpoint with basic info
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		h := e.health.GetHealthData()
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `
		<html>
		<head><title>StorCLI Exporter</title></head>
		<body>
		<h1>StorCLI Prometheus Exporter</h1>
		<p><a href="%s">Metrics</a></p>
		<p><a href="/health">Health Check</a></p>
		<p><a href="/health/json">Health JSON</a></p>
		<p>Version: %s</p>
		<p>Collect Interval: %s</p>
		<h3>StorCLI</h3>
		<p>Binary: %s</p>
		<p>Version: %s</p>
		<p>Response Cache: %v</p>
		</body>
		</html>
		`, html.EscapeString(e.cfg.MetricsPath), html.EscapeString(ver), e.cfg.CollectInterval,
			html.EscapeString(h.StorCLI.Binary), html.EscapeString(h.StorCLI.Version), h.StorCLI.CacheEnabled)
	})

	// Basic health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"storcli-exporter"}`)
	})

	// Detailed JSON health endpoint
	mux.HandleFunc("/health/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		jsonData, err := json.MarshalIndent(e.health.GetHealthData(), "", "  ")
		if err != nil {
			http.Error(w, "Failed to generate JSON", http.StatusInternalServerError)
			return
		}

		w.Write(jsonData)
	})

	return mux
}
