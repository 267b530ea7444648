package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/ledger/sqlite"
	"fintrack/internal/notify"
	"fintrack/internal/services"
	"fintrack/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting notifier-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.NewStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize ledger store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	// Notification sink: AMQP when configured, log-only otherwise.
	var sink notify.Sink = notify.LogSink{}
	if cfg.AMQPURL != "" {
		amqpSink, err := notify.NewAMQPSink(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP sink, notifications go to the log only", "error", err)
		} else {
			defer amqpSink.Close()
			sink = amqpSink
			logger.Info("AMQP notification sink initialized",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - notifications go to the log only")
	}

	sweeper := services.NewSweeper(store, sink, services.DefaultSweepConfig())

	notifierCfg := worker.DefaultNotifierConfig()
	notifierCfg.Interval = cfg.SweepInterval

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := worker.NewNotifier(sweeper, notifierCfg)
	if err := notifier.Start(ctx); err != nil {
		logger.Error("Failed to start notifier", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := notifier.Stop(shutdownCtx); err != nil {
		logger.Warn("Notifier shutdown incomplete", "error", err)
	}
	logger.Info("Notifier-worker shutdown complete")
}
