package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"surplussaver/internal/config"
	"surplussaver/internal/handlers"
	"surplussaver/internal/middleware"
	"surplussaver/internal/models"
	"surplussaver/internal/repositories"
	"surplussaver/internal/services"
	"surplussaver/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Initialize RabbitMQ Client ---
	// Notification delivery is best-effort, so a missing broker downgrades
	// to a warning instead of preventing startup.
	var notifier services.Notifier
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, notifications disabled: %v", err)
	} else {
		defer mqClient.Close() // Ensure the connection is closed on exit
		notifier = mqClient
	}

	// --- Initialize Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Bag{}, &models.Order{}, &models.Review{}); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	bagRepo := repositories.NewGORMBagRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	bagService := services.NewBagService(bagRepo, userRepo)
	orderService := services.NewOrderService(orderRepo, bagRepo, notifier)
	reviewService := services.NewReviewService(reviewRepo, userRepo)
	adminService := services.NewAdminService(userRepo, bagRepo, orderRepo, authService)

	seedAdmin(authService, userRepo)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	bagHandler := handlers.NewBagHandler(bagService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Public routes must come first: the auth middleware below matches the
	// whole /api/v1 prefix for everything registered after it.
	authHandler.RegisterRoutes(apiV1)
	bagHandler.RegisterPublicRoutes(apiV1)
	reviewHandler.RegisterPublicRoutes(apiV1)

	// Protected routes (require a bearer access token)
	protected := apiV1.Group("", middleware.AuthRequired(authService))

	userHandler.RegisterRoutes(protected)
	bagHandler.RegisterProtectedRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	reviewHandler.RegisterProtectedRoutes(protected)
	adminHandler.RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start Notification Consumer in a Goroutine ---
	// A real deployment would push these to a mobile/email gateway; for now
	// the consumer just logs what would have been delivered.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for notifications...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Delivering notification (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeNotifications(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// seedAdmin creates the initial admin account when no admin exists yet.
func seedAdmin(authService *services.AuthService, userRepo repositories.UserRepository) {
	count, err := userRepo.CountByRole(models.RoleAdmin)
	if err != nil || count > 0 {
		return
	}

	admin := &models.User{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "adminpass",
		Role:     models.RoleAdmin,
	}
	if err := authService.RegisterUser(admin); err != nil {
		log.Printf("Error seeding admin account: %v", err)
	} else {
		log.Printf("Seeded admin account: %s (ID: %s)", admin.Email, admin.ID)
	}
}
