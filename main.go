package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"

	"chirp/internal/handlers"
	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/repositories"
	"chirp/internal/services"
	"chirp/pkg/rabbitmq"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "chirp.db")
	viper.SetDefault("JWT_SECRET", "change_me_in_production")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_EMAIL", "admin@example.com")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")

	// --- Initialize Database (GORM) ---
	db, err := openDatabase(viper.GetString("DATABASE_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate models. The unique indexes on users and relationships are
	// created here; they are what enforces the uniqueness contracts.
	err = db.AutoMigrate(&models.User{}, &models.Post{}, &models.Relationship{})
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	// When no broker URL is configured the services run without a publisher.
	var mqClient *rabbitmq.Client
	var publisher rabbitmq.Publisher
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set; running without event publication.")
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	postRepo := repositories.NewGORMPostRepository(db)
	relRepo := repositories.NewGORMRelationshipRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(postRepo, userRepo, publisher)
	relService := services.NewRelationshipService(relRepo, userRepo, publisher)
	feedService := services.NewFeedService(postRepo, relRepo, userRepo)

	// Seed the admin account, if configured. Registration is the only path
	// that sets is_admin, and only this privileged one sets it to true.
	seedAdminUser(authService)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, relService)
	postHandler := handlers.NewPostHandler(postService)
	feedHandler := handlers.NewFeedHandler(feedService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	// Group routes under /api/v1
	apiV1 := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(apiV1)
	userHandler.RegisterPublicRoutes(apiV1)
	postHandler.RegisterPublicRoutes(apiV1)
	feedHandler.RegisterPublicRoutes(apiV1)

	// Viewer-scoped routes (require JWT authentication)
	protected := apiV1.Group("", middleware.AuthRequired(authService, userService))
	userHandler.RegisterProtectedRoutes(protected)
	postHandler.RegisterProtectedRoutes(protected)
	feedHandler.RegisterProtectedRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Listens for the domain events the services publish and logs them.
	// Downstream consumers (notifications, counters) would hook in here.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for social events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received social event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeSocialEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	// Shutdown Fiber app
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens the configured GORM dialect. TranslateError makes the
// drivers report unique-index violations as gorm.ErrDuplicatedKey, which the
// repositories map onto the domain's duplicate errors.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), cfg)
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), cfg)
	default:
		return nil, errors.New("unsupported DATABASE_DRIVER: " + driver)
	}
}

// seedAdminUser registers the configured admin account once. A duplicate
// means it already exists from an earlier start, which is fine.
func seedAdminUser(authService *services.AuthService) {
	password := viper.GetString("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set; skipping admin seed user.")
		return
	}

	username := viper.GetString("ADMIN_USERNAME")
	_, err := authService.RegisterUser(username, viper.GetString("ADMIN_EMAIL"), password, true)
	switch {
	case err == nil:
		log.Printf("Seeded admin user: %s", username)
	case errors.Is(err, models.ErrDuplicateIdentity):
		// Already seeded on a previous start.
	default:
		log.Printf("Error seeding admin user %s: %v", username, err)
	}
}
