package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"gridsynth/internal/config"
	"gridsynth/internal/generate"
	"gridsynth/internal/logging"
	"gridsynth/internal/server"
	"gridsynth/internal/store"
	"gridsynth/internal/ws"
)

func main() {
	cfg := config.Load()

	dual, err := logging.New(cfg.Server.LogFilePath)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer dual.Close()
	logger := dual.Logger

	gen := generate.New(cfg.Server.Seed)
	hub := ws.NewHub()
	metrics := server.NewMetrics()
	api := server.NewAPI(gen, store.New(), hub, metrics, logger,
		cfg.Server.CacheHours, cfg.Server.CacheAnomalyProb)

	srv := server.NewServer(cfg.Server, api, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-stop:
		logger.Info("received signal", "signal", sig.String())
		if err := srv.Stop(); err != nil {
			log.Fatalf("Shutdown error: %v", err)
		}
	}
}
