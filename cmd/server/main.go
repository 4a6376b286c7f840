// Package main - Entry point for the award-sync API server
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpadapter "award-sync/adapters/http"
	"award-sync/adapters/upstream"
	"award-sync/core/endpoint"
	"award-sync/internal/config"
	"award-sync/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "award-sync server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "award-sync.hcl", "Config file (.hcl or .json)")
	addr := flag.String("addr", "", "Server address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	client := upstream.NewClient(&upstream.Config{
		Timeout:      cfg.Upstream.Timeout(),
		UserAgent:    cfg.Upstream.UserAgent,
		MaxBodyBytes: upstream.DefaultConfig().MaxBodyBytes,
	}, logging.Logger)
	metrics := upstream.NewMetricsFetcher(client)

	eps, err := endpoint.New(cfg.Upstream.BaseURL, metrics, logging.Logger)
	if err != nil {
		return err
	}

	adapter := httpadapter.New(eps, metrics, &httpadapter.Config{
		Address:        cfg.Server.Address,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		EnableCORS:     cfg.Server.EnableCORS,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Version:        config.Version,
	}, logging.Logger)

	logging.Info("starting award-sync server",
		zap.String("version", config.Version),
		zap.String("address", cfg.Server.Address),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := adapter.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logging.Error("server failed", zap.Error(err))
		}
		return err
	case sig := <-quit:
		logging.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := adapter.Shutdown(ctx); err != nil {
		logging.Warn("graceful shutdown incomplete", zap.Duration("timeout", shutdownTimeout), zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}
	logging.Info("server stopped")
	return nil
}
