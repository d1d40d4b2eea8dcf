package main

// @title Semaine de l'Industrie API
// @version 1.0.0
// @description API de la plateforme Semaine de l'Industrie. Les entreprises publient des créneaux de visite de leurs sites, les visiteurs (élèves, classes) réservent des places.
// @description
// @description Fonctionnalités principales :
// @description - Annuaire public des entreprises approuvées, filtrable par thème, ville et disponibilité
// @description - Demandes d'accès entreprise et workflow d'approbation administrateur
// @description - Créneaux de visite avec capacité et validation manuelle optionnelle
// @description - Réservations individuelles et de groupe avec fenêtre d'annulation
// @description - Tableaux de bord entreprise et visiteur, statistiques plateforme
// @description - Export CSV au format DataGouv avec mapping configurable

// @contact.name API Support
// @contact.email support@semaine-industrie.example.org

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/hugoldd/SemaineDeLindustrie/docs/swagger"
	"github.com/hugoldd/SemaineDeLindustrie/internal/config"
	httpDelivery "github.com/hugoldd/SemaineDeLindustrie/internal/delivery/http"
	"github.com/hugoldd/SemaineDeLindustrie/internal/delivery/http/handler"
	"github.com/hugoldd/SemaineDeLindustrie/internal/infrastructure/emailjs"
	"github.com/hugoldd/SemaineDeLindustrie/internal/pkg/logger"
	"github.com/hugoldd/SemaineDeLindustrie/internal/repository/cache"
	"github.com/hugoldd/SemaineDeLindustrie/internal/repository/postgres"
	redisRepo "github.com/hugoldd/SemaineDeLindustrie/internal/repository/redis"
	"github.com/hugoldd/SemaineDeLindustrie/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Semaine de l'Industrie API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

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

	// 4. Connect to Redis (cache + event streams)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	streamsClient, err := cache.NewRedisStreams(&cfg.RedisStreams, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis streams", zap.Error(err))
	}
	defer func() {
		if err := streamsClient.Close(); err != nil {
			log.Error("Failed to close Redis streams connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	companyRepo := postgres.NewCompanyRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	userRepo := postgres.NewUserRepository(db)
	themeRepo := postgres.NewThemeRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)

	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(streamsClient, log)
	mailRepo := emailjs.NewEmailJSClient(&cfg.Mail, log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	themeUC := usecase.NewThemeUseCase(themeRepo, cacheRepo, cfg.Cache.ThemesCacheTTL, log)
	directoryUC := usecase.NewDirectoryUseCase(companyRepo, photoRepo, slotRepo, themeUC, log)
	companyUC := usecase.NewCompanyUseCase(
		companyRepo,
		photoRepo,
		slotRepo,
		bookingRepo,
		userRepo,
		mailRepo,
		cacheRepo,
		cfg.Mail.PublicSiteURL,
		log,
	)
	slotUC := usecase.NewSlotUseCase(slotRepo, companyRepo, log)
	bookingUC := usecase.NewBookingUseCase(bookingRepo, slotRepo, companyRepo, streamRepo, cacheRepo, log)
	userUC := usecase.NewUserUseCase(userRepo, mailRepo, cfg.Mail.PublicSiteURL, log)
	favoriteUC := usecase.NewFavoriteUseCase(favoriteRepo, companyRepo, log)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, userRepo, mailRepo, log)
	statsUC := usecase.NewStatsUseCase(
		companyRepo,
		slotRepo,
		bookingRepo,
		userRepo,
		cacheRepo,
		cfg.Cache.StatsCacheTTL,
		log,
	)
	exportUC := usecase.NewExportUseCase(settingsRepo, companyRepo, photoRepo, slotRepo, bookingRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	themeHandler := handler.NewThemeHandler(themeUC, log)
	directoryHandler := handler.NewDirectoryHandler(directoryUC, log)
	companyHandler := handler.NewCompanyHandler(companyUC, log)
	slotHandler := handler.NewSlotHandler(slotUC, companyUC, bookingUC, log)
	bookingHandler := handler.NewBookingHandler(bookingUC, slotUC, companyUC, log)
	userHandler := handler.NewUserHandler(userUC, bookingUC, favoriteUC, directoryUC, log)
	favoriteHandler := handler.NewFavoriteHandler(favoriteUC, log)
	notificationHandler := handler.NewNotificationHandler(notificationUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)
	exportHandler := handler.NewExportHandler(exportUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		themeHandler,
		directoryHandler,
		companyHandler,
		slotHandler,
		bookingHandler,
		userHandler,
		favoriteHandler,
		notificationHandler,
		statsHandler,
		exportHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
