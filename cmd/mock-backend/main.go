package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/vino121095/valenmart-storefront/internal/mockbackend"
	"github.com/vino121095/valenmart-storefront/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger(getEnv("APP_LOG_LEVEL", "debug"), "mock-backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	requireAuth, _ := strconv.ParseBool(getEnv("MOCK_REQUIRE_AUTH", "false"))

	store := mockbackend.NewStore()
	mockbackend.Seed(store)

	srv := &http.Server{
		Addr:              ":" + getEnv("MOCK_BACKEND_PORT", "9000"),
		Handler:           mockbackend.NewRouter(store, mockbackend.Options{RequireAuth: requireAuth}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("mock backend running", "addr", srv.Addr, "require_auth", requireAuth)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
