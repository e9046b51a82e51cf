package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/uptask/uptask-backend/config"
	"github.com/uptask/uptask-backend/internal/bootstrap"
	"github.com/uptask/uptask-backend/internal/logging"
)

const serviceName = "uptask-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	stores, err := bootstrap.OpenStores(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}

	authn, err := bootstrap.NewAuth(ctx, cfg.Auth)
	if err != nil {
		logger.Fatal("failed to initialize auth", zap.String("provider", cfg.Auth.Provider), zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Logger:      logger,
		Stores:      stores,
		Verifier:    authn.Verifier,
		Tokens:      authn.Tokens,
		Hasher:      authn.Hasher,
		CORS:        cfg.CORS,
		RateLimit:   cfg.RateLimit,
		Registry:    registry,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("store", stores.Name),
			zap.String("auth", cfg.Auth.Provider),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.Server.ShutdownTimeout,
		bootstrap.ShutdownOperations(srv, stores, logger),
	)

	exitCode := <-wait
	logger.Info("server exited", zap.Int("code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}
