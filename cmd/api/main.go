package main

import (
	"time"

	"go.uber.org/zap"

	"habitflow/internal/config"
	"habitflow/internal/handler"
	"habitflow/internal/httpserver"
	"habitflow/internal/repository"
	"habitflow/internal/scheduler"
	"habitflow/internal/service"
	"habitflow/pkg/db"
	"habitflow/pkg/logger"
)

func main() {
	// Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone", zap.String("timezone", cfg.Schedule.Timezone), zap.Error(err))
	}

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn, log)
	placeRepo := repository.NewPlaceRepository(dbConn, log)
	actionRepo := repository.NewActionRepository(dbConn, log)
	habitRepo := repository.NewHabitRepository(dbConn, log)
	scheduleRepo := repository.NewScheduleRepository(dbConn, log)

	// Init Services
	sync := scheduler.NewSynchronizer(scheduleRepo, loc, log)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, log)
	habitService := service.NewHabitService(habitRepo, placeRepo, actionRepo, userRepo, sync, log)

	// Init Handlers
	authHandler := handler.NewAuthHandler(authService, log)
	placeHandler := handler.NewPlaceHandler(placeRepo, log)
	actionHandler := handler.NewActionHandler(actionRepo, log)
	habitHandler := handler.NewHabitHandler(habitService, habitRepo, userRepo, log)

	// Router
	router := httpserver.NewRouter(authHandler, placeHandler, actionHandler, habitHandler, cfg.JWT.Secret)

	log.Info("Starting API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}
