package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	_ "github.com/slicelab/pizza-shop-api/docs" // Import generated docs
	"github.com/slicelab/pizza-shop-api/internal/auth"
	"github.com/slicelab/pizza-shop-api/internal/config"
	"github.com/slicelab/pizza-shop-api/internal/controllers"
	"github.com/slicelab/pizza-shop-api/internal/database"
	"github.com/slicelab/pizza-shop-api/internal/middleware"
	"github.com/slicelab/pizza-shop-api/internal/models"
	"github.com/slicelab/pizza-shop-api/internal/realtime"
	"github.com/slicelab/pizza-shop-api/internal/services"
	"github.com/slicelab/pizza-shop-api/internal/workflows"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	configuration *config.Config

	catalogService  services.CatalogService
	customerService services.CustomerService
	orderService    services.OrderService
	accountService  services.AccountService
	clientService   services.ClientService

	hub          *realtime.Hub
	oauthService *auth.OAuthService

	orderController   *controllers.OrderController
	profileController *controllers.ProfileController
	catalogController *controllers.CatalogController
	authController    *controllers.AuthController
	clientController  *controllers.ClientController
	syncController    *controllers.SyncController
)

// @title Pizza Shop Ordering API
// @version 1.0
// @description Online ordering API for a pizza shop
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Set JWT secret from configuration
	middleware.SetJWTSecret(configuration.JWTSecret)

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services, workflows and controllers
	wireComponents()

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection, migrates the schema and
// seeds the preset catalog
func setupDatabase(conf *config.Config) {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)

	// Migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Pizza{},
		&models.Order{},
		&models.APIClient{},
		&models.APIToken{},
	)
	checkPanicErr(err)

	// Seeding is idempotent by pizza name, so repeated startups never
	// duplicate catalog entries
	log.Info("Seeding preset catalog")
	checkPanicErr(services.NewCatalogService(db).Seed())
}

// wireComponents builds the service, workflow and controller graph
func wireComponents() {
	catalogService = services.NewCatalogService(db)
	customerService = services.NewCustomerService(db)
	orderService = services.NewOrderService(db)
	accountService = services.NewAccountService(db, customerService)
	clientService = services.NewClientService(db)

	hub = realtime.NewHub()
	oauthService = auth.NewOAuthService(db, configuration.JWTSecret)

	orderWorkflow := workflows.NewOrderWorkflow(accountService, customerService, catalogService, orderService, hub)
	profileWorkflow := workflows.NewProfileWorkflow(customerService, hub)

	orderController = controllers.NewOrderController(orderWorkflow)
	profileController = controllers.NewProfileController(profileWorkflow, catalogService, customerService, orderService)
	catalogController = controllers.NewCatalogController(catalogService, customerService, orderService)
	authController = controllers.NewAuthController(accountService, configuration.JWTSecret)
	clientController = controllers.NewClientController(clientService)
	syncController = controllers.NewSyncController(hub)
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	router := gin.Default()

	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Data-sync subscription channel
	router.GET("/ws", middleware.WebSocketAuth(), syncController.Subscribe)

	// OAuth2 token endpoint for machine clients
	router.POST("/oauth/token", oauthService.HandleToken)

	v1 := router.Group("/api/v1")
	{
		publicApi := v1.Group("/public")
		{
			// Guests and members share these endpoints; identity is taken
			// from the token when one is presented
			publicApi.GET("/catalog", middleware.OptionalAuth(), catalogController.GetCatalog)
			publicApi.GET("/pizzas/:id", middleware.OptionalAuth(), catalogController.GetPizzaByID)
			publicApi.POST("/orders", middleware.OptionalAuth(), orderController.PlaceOrder)

			authApi := publicApi.Group("/auth")
			{
				authApi.POST("/register", authController.Register)
				authApi.POST("/login", authController.Login)
			}
		}

		// Protected routes (requires JWT authentication)
		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.JWTAuth())
		{
			protectedApi.GET("/profile", profileController.GetProfile)
			protectedApi.PUT("/customers", profileController.UpdateCustomer)

			adminApi := protectedApi.Group("/admin")
			adminApi.Use(middleware.RequireRole("admin"))
			{
				adminApi.POST("/clients", clientController.CreateClient)
				adminApi.GET("/clients", clientController.ListClients)
				adminApi.DELETE("/clients/:id", clientController.DeleteClient)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizza-shop-api",
	})
}
