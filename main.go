package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/pkg/rabbitmq"
)

// repoSet bundles the three stores a running instance needs; every driver
// fills all of them.
type repoSet struct {
	categories repositories.CategoryRepository
	products   repositories.ProductRepository
	users      repositories.UserRepository
}

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("STORE_DRIVER", "memory")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "katalog")
	viper.SetDefault("DATABASE_DSN", "katalog.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, eventing disabled: %v", err)
		} else {
			defer mqClient.Close()
		}
	}

	// --- Initialize Repositories ---
	repos, err := buildRepositories(viper.GetString("STORE_DRIVER"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(repos.users, jwtSecret, publisher(mqClient))
	categoryService := services.NewCategoryService(repos.categories)
	productService := services.NewProductService(repos.products, repos.categories, publisher(mqClient))

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	// --- API Routes ---
	api := app.Group("/api")

	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired()

	authHandler.RegisterRoutes(api)
	categoryHandler.RegisterRoutes(api, authRequired, adminRequired)
	productHandler.RegisterRoutes(api, authRequired, adminRequired)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for catalog events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received catalog event %s (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeCatalogEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
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

// publisher keeps a typed nil *rabbitmq.Client from sneaking into the
// EventPublisher interface as a non-nil value.
func publisher(c *rabbitmq.Client) services.EventPublisher {
	if c == nil {
		return nil
	}
	return c
}

// buildRepositories wires the configured store driver.
func buildRepositories(driver string) (*repoSet, error) {
	switch driver {
	case "memory":
		return &repoSet{
			categories: repositories.NewMockCategoryRepository(),
			products:   repositories.NewMockProductRepository(),
			users:      repositories.NewMockUserRepository(),
		}, nil

	case "mongo":
		client, err := repositories.ConnectMongo(viper.GetString("MONGO_URI"))
		if err != nil {
			return nil, err
		}
		db := client.Database(viper.GetString("MONGO_DATABASE"))
		userRepo, err := repositories.NewMongoUserRepository(db.Collection("users"))
		if err != nil {
			return nil, err
		}
		return &repoSet{
			categories: repositories.NewMongoCategoryRepository(db.Collection("categories")),
			products:   repositories.NewMongoProductRepository(db.Collection("products")),
			users:      userRepo,
		}, nil

	case "sqlite", "postgres":
		dsn := viper.GetString("DATABASE_DSN")
		var dialector gorm.Dialector
		if driver == "sqlite" {
			dialector = sqlite.Open(dsn)
		} else {
			dialector = postgres.Open(dsn)
		}
		db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.User{}); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return &repoSet{
			categories: repositories.NewGORMCategoryRepository(db),
			products:   repositories.NewGORMProductRepository(db),
			users:      repositories.NewGORMUserRepository(db),
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver: %s", driver)
}
