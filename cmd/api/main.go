package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/safar/shopfront/internal/api"
	"github.com/safar/shopfront/internal/auth"
	"github.com/safar/shopfront/internal/config"
	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/logging"
	"github.com/safar/shopfront/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(config.LogConfig{}).Fatalf("Load config: %v", err)
	}
	log := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	log.Info("Connected to database successfully")

	tokens := auth.NewTokenManager(cfg.Auth)
	handler := api.NewHandler(api.Services{
		Cart:     service.NewCartService(db),
		Orders:   service.NewOrderService(db, cfg.Checkout, log),
		Profiles: service.NewProfileService(db),
		Catalog:  service.NewCatalogService(db),
		Auth:     service.NewAuthService(db, tokens),
		Tokens:   tokens,
		Health: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.NewRouter(handler, log, cfg.Log.Requests),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Server starting on port %s", cfg.Server.Port)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		log.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
