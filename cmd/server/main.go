package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Spok95/attendance-tracker/internal/config"
	"github.com/Spok95/attendance-tracker/internal/db"
	"github.com/Spok95/attendance-tracker/internal/jobs"
	"github.com/Spok95/attendance-tracker/internal/logging"
	"github.com/Spok95/attendance-tracker/internal/observability"
	"github.com/Spok95/attendance-tracker/internal/web"
)

const release = "attendance-tracker@dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		lg.Base.Warn("sentry init failed", zap.Error(err))
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Base.Fatal("db connect failed", zap.Error(err))
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		lg.Base.Fatal("migrations failed", zap.Error(err))
	}
	if err := db.SeedAdmin(ctx, database); err != nil {
		lg.Base.Fatal("admin seed failed", zap.Error(err))
	}

	runner := jobs.New(ctx)
	runner.Every(5*time.Minute, "shortage_scan", jobs.ShortageScan(database, lg.Base))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           web.NewServer(cfg, database, lg.Base).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Base.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Base.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Base.Info("shutting down")

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		lg.Base.Error("shutdown failed", zap.Error(err))
	}
}
