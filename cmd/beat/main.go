package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"habitflow/internal/config"
	"habitflow/internal/repository"
	"habitflow/internal/scheduler"
	"habitflow/pkg/db"
	"habitflow/pkg/logger"
	"habitflow/pkg/mq"
)

const defaultBeatInterval = 30 * time.Second

func main() {
	// Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting beat scanner...")

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init RabbitMQ Publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	scheduleRepo := repository.NewScheduleRepository(dbConn, log)

	interval := defaultBeatInterval
	if cfg.Schedule.BeatIntervalSeconds > 0 {
		interval = time.Duration(cfg.Schedule.BeatIntervalSeconds) * time.Second
	}

	beat := scheduler.NewBeat(scheduleRepo, publisher, interval, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	beat.Run(ctx)
}
