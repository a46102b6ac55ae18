// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/cache"
	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/catalog"
	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/config"
	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/database"
	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/game"
	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/httpapi"
	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/ws"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	cat := catalog.Default()
	if err := cat.Validate(); err != nil {
		log.WithError(err).Fatal("content catalog failed integrity check")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store game.Store = database.Noop{}
	if cfg.DatabaseURL != "" {
		pg, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("connecting to database")
		}
		defer pg.Close()
		if err := pg.Init(ctx); err != nil {
			log.WithError(err).Fatal("initializing database schema")
		}
		store = pg
		log.Info("persistence enabled")
	} else {
		log.Warn("DATABASE_URL not set; sessions will not survive a restart")
	}

	var recorder game.Recorder
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("connecting to redis")
		}
		defer rdb.Close()
		recorder = cache.NewActionLog(rdb)
		log.Info("action log enabled")
	} else {
		log.Warn("REDIS_ADDR not set; action log disabled")
	}

	hub := ws.NewHub(log)
	manager := game.NewManager(cat, store, recorder, hub, log)
	api := httpapi.New(manager, hub, log)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.Routes(),
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
		os.Exit(1)
	}
}
