package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"cargo-entry-service/internal/config"
	"cargo-entry-service/internal/events"
	"cargo-entry-service/internal/gateway"
	"cargo-entry-service/internal/handlers"
	"cargo-entry-service/internal/middleware"
	"cargo-entry-service/internal/repository"
	"cargo-entry-service/internal/services"
)

func main() {
	log.Println("Starting Cargo Entry Service...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded successfully")

	// Structured logger shared by all components
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	// Initialize Redis client (optional - graceful degradation if Redis unavailable)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to parse Redis URL: %v", err)
			log.Println("Continuing without Redis caching...")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("Warning: Failed to connect to Redis: %v", err)
				log.Println("Continuing without Redis caching...")
				redisClient = nil
			} else {
				log.Println("✓ Connected to Redis for reference caching")
			}
		}
	} else {
		log.Println("REDIS_URL not configured, caching disabled")
	}

	// Initialize NATS events publisher (optional)
	eventsPublisher, err := events.NewPublisher(logger)
	if err != nil {
		log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
		eventsPublisher = nil
	} else {
		defer eventsPublisher.Close()
		log.Println("✓ NATS events publisher initialized")
	}

	// Initialize backend gateway
	backendClient := gateway.NewClient(cfg.Backend.BaseURL, cfg.Backend.AuthToken, logger)
	log.Println("Backend gateway initialized")

	// Initialize reference cache
	referenceCache := repository.NewReferenceCache(redisClient)

	// Initialize services
	draftService := services.NewDraftService(backendClient, eventsPublisher, cfg.Entry.DefaultVATPercent, logger)
	partyService := services.NewPartyService(
		backendClient,
		referenceCache,
		time.Duration(cfg.Entry.SearchDebounceMS)*time.Millisecond,
		logger,
	)
	defer partyService.Close()
	log.Println("Services initialized")

	// Initialize handlers
	draftHandler := handlers.NewDraftHandler(draftService)
	shipmentHandler := handlers.NewShipmentHandler(backendClient, partyService, eventsPublisher)
	log.Println("Handlers initialized")

	// Setup router
	router := setupRouter(draftHandler, shipmentHandler, cfg, logger)
	log.Printf("Router configured")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Starting server on %s (environment: %s)", addr, cfg.Server.Env)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter configures the Gin router with routes and middleware
func setupRouter(draftHandler *handlers.DraftHandler, shipmentHandler *handlers.ShipmentHandler, cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler(logger))

	// Health check
	router.GET("/health", shipmentHandler.HealthCheck)

	// API routes
	api := router.Group("/api")
	{
		// Draft entry workflow
		api.POST("/drafts", draftHandler.CreateDraft)
		api.GET("/drafts/:id", draftHandler.GetDraft)
		api.DELETE("/drafts/:id", draftHandler.DiscardDraft)
		api.GET("/drafts/:id/totals", draftHandler.GetTotals)
		api.POST("/drafts/:id/submit", draftHandler.SubmitDraft)

		// Packing manifest
		api.POST("/drafts/:id/boxes", draftHandler.AddBox)
		api.DELETE("/drafts/:id/boxes/:index", draftHandler.RemoveBox)
		api.PUT("/drafts/:id/boxes/:index/weight", draftHandler.SetBoxWeight)
		api.POST("/drafts/:id/boxes/:index/items", draftHandler.AddItem)
		api.DELETE("/drafts/:id/boxes/:index/items/:itemIndex", draftHandler.RemoveItem)
		api.PUT("/drafts/:id/boxes/:index/items/:itemIndex", draftHandler.SetItem)

		// Charge matrix
		api.PUT("/drafts/:id/charges/:key", draftHandler.SetCharge)
		api.PUT("/drafts/:id/vat", draftHandler.SetVAT)
		api.PUT("/drafts/:id/details", draftHandler.UpdateDetails)

		// Shipment queries and commands (proxied to the backend)
		api.GET("/shipments", shipmentHandler.ListShipments)
		api.GET("/shipments/:id", shipmentHandler.GetShipment)
		api.PATCH("/cargo/:cargoId/mark-in", shipmentHandler.MarkCargoIn)
		api.PATCH("/cargo/:cargoId/mark-out", shipmentHandler.MarkCargoOut)

		// Party reference data
		api.GET("/parties", shipmentHandler.ListParties)
		api.POST("/collectors/label", shipmentHandler.ResolveCollectorLabel)
	}

	return router
}
