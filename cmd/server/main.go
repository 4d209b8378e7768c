package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework
	"go.uber.org/zap"

	"github.com/iliyamo/stream-shift-scheduler/internal/config"   // Internal config loader
	"github.com/iliyamo/stream-shift-scheduler/internal/database" // MySQL pool
	"github.com/iliyamo/stream-shift-scheduler/internal/handler"
	"github.com/iliyamo/stream-shift-scheduler/internal/logging"
	"github.com/iliyamo/stream-shift-scheduler/internal/middleware"
	"github.com/iliyamo/stream-shift-scheduler/internal/queue"
	"github.com/iliyamo/stream-shift-scheduler/internal/repository"
	"github.com/iliyamo/stream-shift-scheduler/internal/router" // Internal router setup
	notify "github.com/iliyamo/stream-shift-scheduler/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use env vars

	cfg := config.Load() // Load environment config

	logger, err := logging.InitLogger(cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	shifts := repository.NewShiftRepo(db)
	avail := repository.NewAvailabilityRepo(db)
	schedule := repository.NewScheduleRepo(db)
	requests := repository.NewRequestRepo(db)

	notifyCfg := config.LoadNotifyConfig()
	publisher := notify.NewPublisher(notifyCfg, logger)

	// The consumer renders queued events into chat messages; it keeps its own
	// reconnect loop and never takes the server down with it.
	go func() {
		if err := queue.NewConsumer(notifyCfg, logger).Run(); err != nil {
			logger.Error("notify consumer stopped", zap.Error(err))
		}
	}()

	e := echo.New() // Create Echo instance
	e.Validator = handler.NewValidator()

	rdb := config.NewRedisClient()
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e) // health check
	router.RegisterAPI(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users, tokens),
		Directory:    handler.NewDirectoryHandler(users, shifts),
		Availability: handler.NewAvailabilityHandler(avail, users, publisher),
		Schedule:     handler.NewScheduleHandler(schedule, users, shifts, avail),
		Requests:     handler.NewRequestHandler(requests, schedule, users, publisher),
		Manager:      handler.NewManagerHandler(cfg, users, shifts),
	}, cfg.JWTSecret, rateLimit)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	if err := e.Start(addr); err != nil { // Start HTTP server
		logger.Fatal("server stopped", zap.Error(err))
	}
}
