// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/oddball-games/oddball/internal/config"
	"github.com/oddball-games/oddball/internal/database"
	"github.com/oddball-games/oddball/internal/game"
	"github.com/oddball-games/oddball/internal/handlers"
	"github.com/oddball-games/oddball/internal/notify"
	"github.com/oddball-games/oddball/internal/store"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	cfg := config.Load()
	ctx := context.Background()

	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("database connect failed: %v", err)
		}
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			logger.Fatalf("schema bootstrap failed: %v", err)
		}
		st = pg
		logger.Info("using Postgres store")
	} else {
		st = store.NewMemory()
		logger.Warn("DATABASE_URL not set, using in-memory store")
	}

	if err := game.SeedPrompts(ctx, st); err != nil {
		logger.Warnf("prompt seeding failed: %v", err)
	}

	var notifier notify.Notifier
	if cfg.RedisAddr != "" {
		rn, err := notify.ConnectRedis(cfg.RedisAddr, cfg.RedisDB, logger)
		if err != nil {
			logger.Warnf("redis connect failed, falling back to store polling: %v", err)
			notifier = notify.NewPoller(st, cfg.PollInterval)
		} else {
			defer rn.Close()
			notifier = rn
			logger.Info("using Redis stage notifier")
		}
	} else {
		notifier = notify.NewPoller(st, cfg.PollInterval)
		logger.Info("using poll-based stage notifier")
	}

	svc := game.NewService(st, notifier, logger)
	srv := handlers.NewServer(svc, logger)

	server := &http.Server{
		Addr:        cfg.Addr,
		Handler:     srv.Routes(),
		ReadTimeout: 10 * time.Second,
		// no WriteTimeout: WS stage subscriptions are long-lived
	}

	errc := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.Addr)
		errc <- server.ListenAndServe()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		logger.Errorf("failed to serve: %v", err)
	case sig := <-sigs:
		logger.Infof("terminating: %v", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
}
