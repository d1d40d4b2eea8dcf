package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hugoldd/SemaineDeLindustrie/internal/config"
	"github.com/hugoldd/SemaineDeLindustrie/internal/infrastructure/emailjs"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/logger"
	"github.com/hugoldd/SemaineDeLindustrie/internal/repository/cache"
	"github.com/hugoldd/SemaineDeLindustrie/internal/repository/postgres"
	redisRepo "github.com/hugoldd/SemaineDeLindustrie/internal/repository/redis"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
	"github.com/hugoldd/SemaineDeLindustrie/internal/worker"
	"github.com/hugoldd/SemaineDeLindustrie/internal/worker/notification"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Booking Notification Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis streams
	streamsClient, err := cache.NewRedisStreams(&cfg.RedisStreams, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis streams", zap.Error(err))
	}
	defer func() {
		if err := streamsClient.Close(); err != nil {
			log.Error("Failed to close Redis streams connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	notificationRepo := postgres.NewNotificationRepository(db)
	userRepo := postgres.NewUserRepository(db)
	streamRepo := redisRepo.NewStreamRepository(streamsClient, log)
	mailRepo := emailjs.NewEmailJSClient(&cfg.Mail, log)

	// 6. Initialize use cases
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, userRepo, mailRepo, log)

	// 7. Initialize workers
	bookingWorker := notification.NewBookingNotificationWorker(
		streamRepo,
		notificationUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(bookingWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
