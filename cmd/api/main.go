package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mohi-devhub/genie/internal/config"
	"github.com/mohi-devhub/genie/internal/database"
	"github.com/mohi-devhub/genie/internal/logger"
	"github.com/mohi-devhub/genie/internal/ratelimit"
	"github.com/mohi-devhub/genie/internal/server"
)

func main() {
	cfg := config.New()

	logger.InitFromConfig(cfg)
	log := logger.L()

	db, err := database.New(cfg)
	if err != nil {
		log.Error("failed to init database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.SeedReferenceData(db.GetDB()); err != nil {
		log.Error("failed to seed reference data", "err", err)
		os.Exit(1)
	}
	if cfg.Env == "development" {
		if err := database.SeedDemoData(db.GetDB()); err != nil {
			log.Error("failed to seed demo data", "err", err)
		}
	}

	// Shared Redis limiter when configured, per-process fallback otherwise
	var limits *ratelimit.Set
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Error("failed to connect to redis", "err", err)
			os.Exit(1)
		}
		defer client.Close()
		limits = ratelimit.NewRedisSet(cfg, client)
		log.Info("rate limiting backed by redis", "addr", cfg.Redis.Addr)
	} else {
		limits = ratelimit.NewSet(cfg)
		defer limits.Stop()
	}

	srv := server.NewServer(cfg, db, limits)

	go func() {
		log.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "err", err)
	}
}
