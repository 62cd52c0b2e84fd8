package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"domaincheck/internal/check"
	checkhandler "domaincheck/internal/check/handler"
	checkmetrics "domaincheck/internal/check/metrics"
	"domaincheck/internal/platform/config"
	"domaincheck/internal/platform/httpserver"
	"domaincheck/internal/platform/logger"
	"domaincheck/internal/platform/metrics"
	"domaincheck/internal/tokengate"
	tokenhandler "domaincheck/internal/tokengate/handler"
	httptransport "domaincheck/internal/transport/http"
	"domaincheck/internal/whois"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	os.Exit(realMain())
}

func realMain() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config.LoadEnv(ctx, logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")))

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	platformMetrics := metrics.New(reg)

	service := check.New(whois.New(cfg.Whois), check.WithMetrics(checkmetrics.New(reg)))

	deps := httptransport.Deps{
		Logger:             log,
		Metrics:            platformMetrics,
		Gatherer:           reg,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}
	if cfg.Auth.Enabled {
		gate := tokengate.New(cfg.Auth, tokengate.WithMetrics(platformMetrics))
		deps.TokenHandler = tokenhandler.New(gate, log)
		deps.CheckHandler = checkhandler.New(service, gate, cfg.Server.IncludeWhoisData, log)
	} else {
		log.Warn("authentication disabled, /api/check is public")
		deps.CheckHandler = checkhandler.New(service, nil, cfg.Server.IncludeWhoisData, log)
	}

	srv := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(deps))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting domain availability API",
			"addr", cfg.Server.Addr,
			"auth_enabled", cfg.Auth.Enabled,
			"whois_timeout", cfg.Whois.Timeout.String(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
