package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eFurnitureMarket/app/echo-server/router"
	"eFurnitureMarket/business/appointment"
	"eFurnitureMarket/business/category"
	"eFurnitureMarket/business/orders"
	"eFurnitureMarket/business/product"
	userService "eFurnitureMarket/business/user"
	"eFurnitureMarket/business/wallet"
	"eFurnitureMarket/internal/middleware"
	"eFurnitureMarket/internal/repository/notification"
	psqlRepo "eFurnitureMarket/internal/repository/postgres"
	redisRepo "eFurnitureMarket/internal/repository/redis"
	"eFurnitureMarket/internal/rest"
	"eFurnitureMarket/pkg/config"
	"eFurnitureMarket/pkg/database"
	redisDB "eFurnitureMarket/pkg/database/redis"
	"eFurnitureMarket/pkg/logger"
	"eFurnitureMarket/pkg/metrics"
	"eFurnitureMarket/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting eFurnitureMarket", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := database.SeedOrderStatuses(db); err != nil {
		logger.Fatal("Failed to seed order statuses", "error", err)
	}

	redisClient, err := redisDB.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer func() {
		if err := redisDB.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close redis client", err)
		}
	}()

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	transactionRepo := psqlRepo.NewTransactionRepository(db)
	appointmentRepo := psqlRepo.NewAppointmentRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	walletCache := redisRepo.NewCacheRepository(redisClient)

	// Init service
	userSvc := userService.NewUserService(userRepo, validate, mailjetEmail, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	walletService := wallet.NewWalletService(userRepo, transactionRepo, walletCache, validate)
	appointmentService := appointment.NewAppointmentService(appointmentRepo, mailjetEmail, validate)
	ordersService := orders.NewOrdersService(ordersRepo, productsRepo, walletService)
	categoryService := category.NewCategoryService(categoryRepo)
	productService := product.NewProductService(productsRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	walletHandler := rest.NewWalletHandler(walletService)
	appointmentHandler := rest.NewAppointmentHandler(appointmentService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupWalletRoutes(api, walletHandler, authRequired, adminOnly)
	router.SetupAppointmentRoutes(api, appointmentHandler, authRequired)
	router.SetOrdersRoutes(api, ordersHandler)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
