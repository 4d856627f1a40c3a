// Package app assembles the storefront HTTP API.
package app

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the collaborators the API is built from.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Products []models.Product
	// UploadFS holds avatar uploads. Defaults to the OS filesystem.
	UploadFS afero.Fs
	// Publisher may be nil when no broker is configured.
	Publisher services.OrderEventPublisher
	Logger    *zap.Logger
	Metrics   *metrics.AppMetrics
	// AccessLog enables fiber's request logger.
	AccessLog bool
}

// Server is the assembled API with the services it exposes.
type Server struct {
	App    *fiber.App
	Auth   *services.AuthService
	Orders *services.OrderService
}

// New wires repositories, services and handlers into a fiber app.
func New(d Deps) (*Server, error) {
	if d.Config == nil || d.DB == nil {
		return nil, errors.New("app: config and database are required")
	}
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := d.Metrics
	if m == nil {
		m = metrics.NewNoop()
	}
	fs := d.UploadFS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	cfg := d.Config

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(d.DB)
	orderRepo := repositories.NewGORMOrderRepository(d.DB)
	productRepo := repositories.NewMemoryProductRepository(d.Products)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log.Named("auth"), m)
	userService := services.NewUserService(userRepo, log.Named("user"))
	uploadService, err := services.NewUploadService(fs, cfg.UploadDir, cfg.UploadMaxBytes, cfg.PublicBaseURL, log.Named("upload"), m)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	orderService := services.NewOrderService(orderRepo, d.Publisher, log.Named("orders"), m)
	productService := services.NewProductService(productRepo, m)

	// --- Handlers ---
	validate := validator.New()
	authHandler := handlers.NewAuthHandler(authService, validate, log.Named("http"))
	userHandler := handlers.NewUserHandler(userService, uploadService, validate, log.Named("http"))
	orderHandler := handlers.NewOrderHandler(orderService, validate, log.Named("http"))
	productHandler := handlers.NewProductHandler(productService, log.Named("http"))

	app := fiber.New(fiber.Config{
		AppName: cfg.OTELServiceName,
		// Multipart overhead on top of the largest accepted file.
		BodyLimit:    int(cfg.UploadMaxBytes) + 1<<20,
		ErrorHandler: errorHandler(log),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	if d.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(middleware.Metrics(m))

	app.Use(services.UploadsRoute, filesystem.New(filesystem.Config{
		Root:   afero.NewHttpFs(fs).Dir(cfg.UploadDir),
		MaxAge: int((24 * time.Hour).Seconds()),
	}))

	// --- API Routes ---
	api := app.Group("/api")

	// Public routes
	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)

	// Protected routes (require JWT authentication)
	protected := api.Group("", middleware.AuthRequired(authService, log.Named("auth")))
	userHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		db := "up"
		if sqlDB, err := d.DB.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			db = "down"
		}
		broker := "disabled"
		if d.Publisher != nil {
			broker = "connected"
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": db,
			"rabbitmq": broker,
		})
	})

	return &Server{
		App:    app,
		Auth:   authService,
		Orders: orderService,
	}, nil
}

// errorHandler renders errors that escape handlers as {"error": ...}.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		} else {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
}
