// File: roombook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roombook/config"
	"roombook/cron"
	"roombook/database"
	bookingRepo "roombook/database/repository/booking"
	lockRepo "roombook/database/repository/lock"
	"roombook/handlers"
	"roombook/middleware"
	"roombook/routes"
	"roombook/services/booking"
	"roombook/services/catalog"
	"roombook/services/notification"
	"roombook/services/session"
	"roombook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	window, err := config.AppConfig.Window()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid operating window: %v", err)
	}
	roomCatalog, err := catalog.New(config.AppConfig.Buildings)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid room catalog: %v", err)
	}

	// repositories.
	var (
		repo        bookingRepo.BookingRepository
		mongoClient *mongo.Client
	)
	switch config.AppConfig.StoreDriver {
	case "memory":
		repo = bookingRepo.NewMemoryBookingRepo()
	default:
		database.InitDB()
		mongoClient = database.MongoClient
		repo = bookingRepo.NewMongoBookingRepo(database.Database(), config.AppConfig.StoreTimeout)
		if err := repo.EnsureIndexes(context.Background()); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
	}

	var locker lockRepo.RoomLocker = lockRepo.NewLocalLocker()
	if config.AppConfig.LockDriver == "redis" {
		locker = lockRepo.NewRedisLocker(utils.GetLockCacheClient(), config.AppConfig.LockTTL)
	}

	var sessions session.SessionStore = session.NewMemoryStore()
	if config.AppConfig.SessionDriver == "redis" {
		sessions = session.NewRedisStore(utils.GetSessionCacheClient())
	}

	var publisher notification.Publisher = notification.NopPublisher{}
	if config.AppConfig.AMQPURL != "" {
		amqpPub, err := notification.NewAMQPPublisher(config.AppConfig.AMQPURL, config.AppConfig.AMQPExchange)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		defer amqpPub.Close()
		publisher = amqpPub
	}

	audit, err := utils.NewAuditLogger(config.AppConfig.AuditLogPath)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	defer audit.Sync()

	// services.
	engine := booking.NewDefaultAvailabilityEngine(repo, roomCatalog, locker, publisher, window, logger.Named("engine"))
	flow := session.NewFlow(engine, roomCatalog, sessions, audit, logger.Named("session"))
	resetter := cron.NewResetter(engine, logger.Named("reset"))

	var scheduler cron.Scheduler
	switch config.AppConfig.ResetDriver {
	case "asynq":
		scheduler = cron.NewAsynqScheduler(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}, config.AppConfig.ResetSchedule, resetter, logger.Named("reset"))
	default:
		scheduler = cron.NewCronScheduler(resetter, config.AppConfig.ResetSchedule, logger.Named("reset"))
	}
	if err := scheduler.Start(); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, utils.RedisClients(), mongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &handlers.HandlerBundle{
		Booking: handlers.NewBookingHandler(engine, roomCatalog),
		Session: handlers.NewSessionHandler(flow),
		Admin:   handlers.NewAdminHandler(resetter),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("store", config.AppConfig.StoreDriver),
		zap.String("lock", config.AppConfig.LockDriver),
		zap.String("sessions", config.AppConfig.SessionDriver),
		zap.String("reset", config.AppConfig.ResetDriver),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	scheduler.Stop()
	if err := database.Close(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
