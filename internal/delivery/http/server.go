package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/hugoldd/SemaineDeLindustrie/internal/config"
	"github.com/hugoldd/SemaineDeLindustrie/internal/delivery/http/handler"
	"github.com/hugoldd/SemaineDeLindustrie/internal/delivery/http/middleware"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain"
	apperrors "github.com/hugoldd/SemaineDeLindustrie/internal/pkg/errors"
)

// Server is the Fiber HTTP server for the platform API.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	themeHandler        *handler.ThemeHandler
	directoryHandler    *handler.DirectoryHandler
	companyHandler      *handler.CompanyHandler
	slotHandler         *handler.SlotHandler
	bookingHandler      *handler.BookingHandler
	userHandler         *handler.UserHandler
	favoriteHandler     *handler.FavoriteHandler
	notificationHandler *handler.NotificationHandler
	statsHandler        *handler.StatsHandler
	exportHandler       *handler.ExportHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	themeHandler *handler.ThemeHandler,
	directoryHandler *handler.DirectoryHandler,
	companyHandler *handler.CompanyHandler,
	slotHandler *handler.SlotHandler,
	bookingHandler *handler.BookingHandler,
	userHandler *handler.UserHandler,
	favoriteHandler *handler.FavoriteHandler,
	notificationHandler *handler.NotificationHandler,
	statsHandler *handler.StatsHandler,
	exportHandler *handler.ExportHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Semaine de l'Industrie API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                 app,
		config:              cfg,
		logger:              logger,
		themeHandler:        themeHandler,
		directoryHandler:    directoryHandler,
		companyHandler:      companyHandler,
		slotHandler:         slotHandler,
		bookingHandler:      bookingHandler,
		userHandler:         userHandler,
		favoriteHandler:     favoriteHandler,
		notificationHandler: notificationHandler,
		statsHandler:        statsHandler,
		exportHandler:       exportHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Public routes
	api.Get("/themes", s.themeHandler.GetThemes)
	api.Get("/companies", s.directoryHandler.Browse)
	api.Get("/companies/:id", s.directoryHandler.GetCompany)
	api.Post("/companies/request", s.companyHandler.RequestAccess)
	api.Post("/auth/password-reset", s.userHandler.RequestPasswordReset)

	auth := middleware.Auth(s.config.Auth.JWTSecret)

	// Visitor routes
	me := api.Group("/me", auth)
	me.Get("/", s.userHandler.GetProfile)
	me.Put("/", s.userHandler.UpdateProfile)
	me.Get("/dashboard", s.userHandler.GetDashboard)
	me.Get("/bookings", s.bookingHandler.ListOwn)
	me.Delete("/bookings/:id", s.bookingHandler.CancelOwn)
	me.Get("/favorites", s.favoriteHandler.List)
	me.Post("/favorites/:companyId", s.favoriteHandler.Add)
	me.Delete("/favorites/:companyId", s.favoriteHandler.Remove)
	me.Get("/notifications", s.notificationHandler.List)
	me.Put("/notifications/:id/read", s.notificationHandler.MarkRead)

	api.Post("/bookings", auth, s.bookingHandler.Create)

	// Company routes
	company := api.Group("/company", auth, middleware.RequireRole(domain.RoleCompany, domain.RoleAdmin))
	company.Get("/profile", s.companyHandler.GetOwn)
	company.Put("/profile", s.companyHandler.UpdateOwn)
	company.Get("/dashboard", s.companyHandler.GetDashboard)
	company.Post("/photos", s.companyHandler.AddPhoto)
	company.Delete("/photos/:id", s.companyHandler.DeletePhoto)
	company.Get("/slots", s.slotHandler.List)
	company.Post("/slots", s.slotHandler.Create)
	company.Put("/slots/:id", s.slotHandler.Update)
	company.Post("/slots/:id/cancel", s.slotHandler.Cancel)
	company.Delete("/slots/:id", s.slotHandler.Delete)
	company.Get("/slots/:id/bookings", s.slotHandler.ListBookings)
	company.Post("/bookings/:id/confirm", s.bookingHandler.Confirm)
	company.Post("/bookings/:id/reject", s.bookingHandler.Reject)
	company.Post("/bookings/:id/cancel", s.bookingHandler.Cancel)

	// Admin routes
	admin := api.Group("/admin", auth, middleware.RequireRole(domain.RoleAdmin))
	admin.Get("/companies", s.companyHandler.List)
	admin.Post("/companies", s.companyHandler.Create)
	admin.Put("/companies/:id", s.companyHandler.Update)
	admin.Delete("/companies/:id", s.companyHandler.Delete)
	admin.Post("/companies/:id/approve", s.companyHandler.Approve)
	admin.Post("/companies/:id/reject", s.companyHandler.Reject)
	admin.Get("/users", s.userHandler.ListUsers)
	admin.Get("/stats", s.statsHandler.GetPlatformStats)
	admin.Post("/stats/refresh", s.statsHandler.RefreshPlatformStats)
	admin.Get("/export/mapping", s.exportHandler.GetMapping)
	admin.Put("/export/mapping", s.exportHandler.SaveMapping)
	admin.Get("/export/csv", s.exportHandler.Download)

	// Server-to-server routes, protected by the shared API key. The approval
	// workflow is also callable from trusted backends without a user token.
	internal := api.Group("/internal", middleware.APIKey(s.config.Auth.APIKey))
	internal.Post("/companies/:id/approve", s.companyHandler.Approve)
	internal.Post("/auth/password-reset", s.userHandler.RequestPasswordReset)
}

// Start runs the server until Shutdown or a listener error.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    apperrors.ErrInternalServer.Code,
				"message": err.Error(),
			},
		})
	}
}
