package main

import (
	"time"

	"go.uber.org/zap"

	mqcontracts "habitflow/contracts/mq"
	"habitflow/internal/config"
	"habitflow/internal/mqhandler"
	"habitflow/internal/notifier"
	"habitflow/internal/repository"
	"habitflow/internal/util"
	"habitflow/pkg/db"
	"habitflow/pkg/logger"
	"habitflow/pkg/mq"
	redisclient "habitflow/pkg/redis"
)

func main() {
	// Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting reminder dispatch worker...")

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduper(rdb, time.Hour)

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	dispatchLogRepo := repository.NewDispatchLogRepository(dbConn, log)

	// Init Telegram notifier
	telegram := notifier.NewTelegram(cfg.Telegram, log)

	reminderHandler := mqhandler.NewReminderDueHandler(telegram, deduper, dispatchLogRepo, log)

	// Consumer for reminder dispatch
	log.Info("Initializing reminder consumer", zap.String("queue", "reminder.due.q"))
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "reminder.due.q", mqcontracts.RoutingKeyReminderDue, log)
	if err != nil {
		log.Fatal("failed to init reminder consumer", zap.Error(err))
	}
	consumer.SetHandler(reminderHandler.HandleReminderDue)
	defer consumer.Close()

	log.Info("Worker is ready to process messages")
	if err := consumer.StartConsuming(); err != nil {
		log.Fatal("reminder consumer failed", zap.Error(err))
	}
}
