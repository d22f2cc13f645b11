package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"bookworm/internal/config"
	"bookworm/internal/http/handlers"
	applog "bookworm/internal/log"
	"bookworm/internal/metrics"
	"bookworm/internal/repos"
	"bookworm/internal/tracing"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[config] %v", err)
	}

	logger, err := applog.Init(cfg.LogFile)
	if err != nil {
		log.Fatalf("[log] %v", err)
	}
	defer func() { _ = logger.Sync() }()

	tp, err := tracing.Setup(context.Background(), "bookworm", cfg.TraceEndpoint)
	if err != nil {
		logger.Fatal("tracing.setup", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}()

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal("db.open", zap.Error(err))
	}
	defer db.Close()

	if cfg.SeedBooks {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := repos.SeedBooks(ctx, db)
		cancel()
		if err != nil {
			logger.Fatal("db.seed", zap.Error(err))
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	deps := handlers.NewDeps(db, cfg, m)
	app := handlers.NewApp(cfg, deps, reg)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Info("server.shutdown")
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	logger.Info("server.start", zap.String("port", cfg.Port), zap.String("driver", cfg.DBDriver))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server.listen", zap.Error(err))
	}
}
