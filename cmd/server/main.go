package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/seatlabs/library-layout-backend/internal/config"
	"github.com/seatlabs/library-layout-backend/internal/database"
	"github.com/seatlabs/library-layout-backend/internal/handlers"
	"github.com/seatlabs/library-layout-backend/internal/middleware"
	"github.com/seatlabs/library-layout-backend/internal/queue"
	"github.com/seatlabs/library-layout-backend/internal/services"
	"github.com/seatlabs/library-layout-backend/internal/storage"
	"github.com/seatlabs/library-layout-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting SeatLabs Library Layout Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Redis mirrors saved layouts for the booking side; the API works
	// without it, so a failed connection only degrades, never aborts.
	var snapshotStore services.SnapshotStore
	redisClient, err := storage.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Warnf("Snapshot store unavailable, continuing without it: %v", err)
	} else {
		defer redisClient.Close()
		snapshotStore = storage.NewRedisSnapshotStore(redisClient, cfg.Redis.SnapshotTTL)
		logger.Info("Snapshot store connected")
	}

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	var catalogService *services.CatalogService
	if cfg.Layout.CatalogFile != "" {
		catalogService, err = services.NewCatalogServiceFromFile(cfg.Layout.CatalogFile)
		if err != nil {
			logger.Fatalf("Failed to load pricing catalog from %s: %v", cfg.Layout.CatalogFile, err)
		}
		logger.Infof("Pricing catalog loaded from %s", cfg.Layout.CatalogFile)
	} else {
		catalogService = services.NewCatalogService()
	}

	generatorService := services.NewGeneratorService(catalogService)
	selectionService := services.NewSelectionService(catalogService)
	recommendationService := services.NewRecommendationService()
	layoutRepository := database.NewLayoutRepository(db)

	layoutService := services.NewLayoutService(
		catalogService,
		generatorService,
		selectionService,
		recommendationService,
		layoutRepository,
		snapshotStore,
		logger,
		cfg.Layout.DemoOccupancyRate,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	janitorService := services.NewJanitorService(layoutService, logger, cfg.Layout.DraftTTL)
	if err := janitorService.Start(); err != nil {
		logger.Fatalf("Failed to start janitor: %v", err)
	}
	logger.Info("Services initialized")

	// Root context drives the queue consumer shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seat availability events from the booking service
	if cfg.Queue.Enabled {
		consumer := queue.NewAvailabilityConsumer(cfg.Queue, layoutService, logger)
		go consumer.Run(ctx)
		logger.Infof("Availability consumer started on queue %s", cfg.Queue.AvailabilityName)
	} else {
		logger.Info("Availability consumer disabled")
	}

	// Initialize handlers
	layoutHandler := handlers.NewLayoutHandler(layoutService, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService, generatorService)
	availabilityHandler := handlers.NewAvailabilityHandler(layoutService, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(middleware.RequestLogger(logger))
	}

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Catalog routes (protected, read-only)
		catalog := v1.Group("/catalog")
		catalog.Use(middleware.AuthMiddleware(jwtService))
		{
			catalog.GET("/zones", catalogHandler.GetZones)
			catalog.GET("/amenities", catalogHandler.GetAmenities)
			catalog.GET("/templates", catalogHandler.GetTemplates)
		}

		// Admin routes for operating the background jobs
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole("admin"))
		{
			admin.GET("/janitor/status", func(c *gin.Context) {
				c.JSON(http.StatusOK, janitorService.JobStatus())
			})
			admin.POST("/janitor/evict-drafts", func(c *gin.Context) {
				janitorService.RunEvictionNow()
				c.JSON(http.StatusOK, gin.H{"message": "Draft eviction triggered"})
			})
		}

		// Layout routes (all protected)
		layouts := v1.Group("/layouts")
		layouts.Use(middleware.AuthMiddleware(jwtService))
		{
			// Read side needs only a valid token
			layouts.GET("", layoutHandler.ListLayouts)
			layouts.GET("/:id", layoutHandler.GetLayout)
			layouts.GET("/:id/stats", layoutHandler.GetStats)
			layouts.GET("/:id/price", layoutHandler.GetPrice)
			layouts.GET("/:id/recommendations", layoutHandler.GetRecommendations)

			// Mutations require an owner or admin role
			mutate := layouts.Group("")
			mutate.Use(middleware.RequireRole("library-owner", "admin"))
			{
				mutate.POST("/generate", layoutHandler.GenerateLayout)
				mutate.POST("/from-template", layoutHandler.ApplyTemplate)
				mutate.POST("/:id/save", layoutHandler.SaveLayout)
				mutate.DELETE("/:id", layoutHandler.DeleteLayout)

				mutate.POST("/:id/seats/:seatId/toggle", layoutHandler.ToggleSeat)
				mutate.PUT("/:id/seats/:seatId/status", layoutHandler.SetSeatStatus)
				mutate.DELETE("/:id/seats/:seatId", layoutHandler.DeleteSeat)
				mutate.POST("/:id/zones/assign", layoutHandler.AssignZone)

				mutate.POST("/:id/areas", layoutHandler.AddArea)
				mutate.DELETE("/:id/areas/:areaId", layoutHandler.RemoveArea)
				mutate.POST("/:id/marked-zones", layoutHandler.MarkZone)
				mutate.DELETE("/:id/marked-zones/:overlayId", layoutHandler.UnmarkZone)
				mutate.POST("/:id/amenities/:key/toggle", layoutHandler.ToggleAmenity)

				mutate.POST("/:id/recommendations/:suggestionId/apply", layoutHandler.ApplySuggestion)
			}
		}
	}

	// Internal routes for the booking service (API-key protected)
	internal := router.Group("/internal/v1")
	internal.Use(middleware.InternalAPIKey(cfg.Security.InternalAPIKeyHash))
	{
		internal.POST("/availability", availabilityHandler.UpdateSeatStatus)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Stop the queue consumer first so no seat updates land mid-shutdown
	cancel()
	janitorService.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
