package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vino121095/valenmart-storefront/internal/config"
	"github.com/vino121095/valenmart-storefront/internal/pkg/cache"
	"github.com/vino121095/valenmart-storefront/internal/pkg/telemetry"
	"github.com/vino121095/valenmart-storefront/internal/statuslog"
	"github.com/vino121095/valenmart-storefront/internal/statuslog/sqlite"
	"github.com/vino121095/valenmart-storefront/internal/storefront/app"
	"github.com/vino121095/valenmart-storefront/internal/storefront/infra/adapters/cached"
	"github.com/vino121095/valenmart-storefront/internal/storefront/infra/adapters/restapi"
	"github.com/vino121095/valenmart-storefront/internal/storefront/infra/httpx"
	"github.com/vino121095/valenmart-storefront/internal/storefront/infra/invoicepdf"
)

func main() {
	cfg := config.MustLoad(os.Getenv("CONFIG_PATH"))
	telemetry.InitLogger(cfg.App.LogLevel, cfg.App.Name)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer := telemetry.ShutdownFunc(telemetry.NoopShutdown)
	if cfg.Telemetry.Enabled {
		var err error
		shutdownTracer, err = telemetry.SetupTracer(ctx, cfg.App.Name, cfg.Telemetry.OTELEndpoint)
		if err != nil {
			slog.Error("failed to initialise tracer", "error", err)
			os.Exit(1)
		}
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewMetrics(reg, "gateway")

	var catalogCache cache.Cache
	if cfg.Cache.RedisAddr != "" {
		catalogCache = cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.App.Name)
		slog.Info("catalog cache: redis", "addr", cfg.Cache.RedisAddr)
	} else {
		catalogCache = cache.NewMemory(cfg.App.Name)
		slog.Info("catalog cache: in-process")
	}

	// The status log is optional: without it delivery attempts are not recorded.
	var history statuslog.Repository
	if cfg.StatusLog.Path != "" {
		repo, err := sqlite.Open(cfg.StatusLog.Path)
		if err != nil {
			slog.Error("failed to open status log", "path", cfg.StatusLog.Path, "error", err)
			os.Exit(1)
		}
		defer repo.Close()
		history = repo
	}

	backend := restapi.New(cfg.Backend.BaseURL,
		restapi.WithTimeout(cfg.Backend.Timeout),
		restapi.WithObserver(metrics),
	)

	svc := app.New(app.Deps{
		Orders:        backend,
		Catalog:       cached.NewCatalog(backend, catalogCache, cfg.Cache.CatalogTTL),
		Cart:          backend,
		Notifications: backend,
		Profiles:      backend,
		Accounts:      backend,
		History:       history,
	}, app.Options{
		TopProducts:  cfg.Dashboard.TopProducts,
		RecentOrders: cfg.Dashboard.RecentOrders,
	})

	handler := httpx.NewHandler(svc, invoicepdf.NewRenderer("Valenmart"), cfg.Notifications.PollInterval)
	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.HTTP.Port),
		Handler:      httpx.NewRouter(handler, metrics),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("storefront gateway running", "addr", srv.Addr, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
