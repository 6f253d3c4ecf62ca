package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"contas/internal/config"
	apphttp "contas/internal/http"
	"contas/internal/ledger"
	applog "contas/internal/log"
	"contas/internal/storage"
)

func main() {
	// .env is optional, for local development.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger := applog.New(applog.DefaultConfig())
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := applog.New(applog.Config{Level: level, Component: applog.ComponentApp})
	applog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store ledger.Store
	switch cfg.DataBackend {
	case "sqlite":
		st, err := storage.Open(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open storage",
				applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer st.Close()
		store = st
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
	default:
		store = ledger.NewMemStore()
		logger.Warn("Initialized memory backend, data will not survive restarts")
	}

	led := ledger.New(store)
	if err := led.Initialize(ctx); err != nil {
		logger.Error("Failed to initialize ledger",
			applog.FieldError, err, applog.FieldOperation, applog.OpStartup)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, led)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server",
			"port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
