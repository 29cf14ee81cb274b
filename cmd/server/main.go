package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"shipment-route-service/internal/adapters/dragonfly"
	"shipment-route-service/internal/adapters/optimizer"
	"shipment-route-service/internal/adapters/surreal"
	"shipment-route-service/internal/adapters/xtdb"
	"shipment-route-service/internal/api"
	"shipment-route-service/internal/platform/config"
	"shipment-route-service/internal/platform/metrics"
	"shipment-route-service/internal/platform/obs"
	"shipment-route-service/internal/services"
)

const version = "0.1.0"

// main is the application composition root. It wires the four backend
// gateways behind ports, probes them once, and starts the HTTP server.
func main() {
	logger := obs.NewLogger()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "err", err)
		os.Exit(1)
	}

	store := surreal.NewClient(cfg.SurrealDBURL, cfg.SurrealDBUser, cfg.SurrealDBPass, logger)
	facts := xtdb.NewClient(cfg.XTDBURL, logger)
	cache := dragonfly.NewClient(cfg.DragonflyURL, cfg.DragonflyPass, logger)
	engine := optimizer.NewClient(cfg.OptimizerURL, logger)
	defer cache.Close()

	// One probe per backend; a failed probe is logged and the process
	// continues, since gateways stay usable and later calls surface
	// their own errors.
	probeCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := store.Connect(probeCtx); err != nil {
		logger.Warn("document store unavailable", "err", err)
	}
	if err := facts.Connect(probeCtx); err != nil {
		logger.Warn("fact store unavailable", "err", err)
	}
	if err := cache.Connect(probeCtx); err != nil {
		logger.Warn("cache unavailable", "err", err)
	}
	if err := engine.Connect(probeCtx); err != nil {
		logger.Warn("optimizer unavailable, will surface errors on requests", "err", err)
	}

	orch := services.NewOrchestrator(store, engine, cfg.SelectedShipmentStatus, logger)

	router := api.NewRouter(api.Deps{
		Store:        store,
		Facts:        facts,
		Cache:        cache,
		Optimizer:    engine,
		Orchestrator: orch,
		Logger:       logger,
		Metrics:      metrics.New(),
		Version:      version,
	})

	// Write timeout is sized for optimization runs, which wait on the
	// external engine.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server listening", "addr", cfg.Addr(), "version", version)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
