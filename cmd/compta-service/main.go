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

	"github.com/facturio/compta-service/internal/api"
	"github.com/facturio/compta-service/internal/config"
	"github.com/facturio/compta-service/internal/database"
	"github.com/facturio/compta-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Charger la configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Configurer le logging
	logger := setupLogger(cfg)
	logger.Info("Starting Compta Service...")

	// Configurer le mode de Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connexion à la base de données
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	// Créer le schéma s'il n'existe pas
	if err := database.InitSchema(db, logger); err != nil {
		logger.Fatalf("Error initializing schema: %v", err)
	}
	db.LogStats(logger)

	// Connexion à Redis, facultative
	var redis *database.Redis
	if cfg.Redis.Enabled {
		redis, err = database.ConnectRedis(cfg)
		if err != nil {
			logger.Warnf("Error connecting to Redis: %v", err)
			redis = nil
		} else {
			defer redis.Close()
		}
	} else {
		logger.Info("Redis disabled, settings cache will not be available")
	}

	// Stockage des justificatifs
	receiptStorage, err := services.NewReceiptStorageService(cfg.Uploads.Dir, logger)
	if err != nil {
		logger.Fatalf("Error initializing receipt storage: %v", err)
	}

	// Initialiser les services
	quoteService := services.NewQuoteService(db, logger)
	invoiceService := services.NewInvoiceService(db, logger)
	clientService := services.NewClientService(db, logger)
	prestationService := services.NewPrestationService(db, logger)
	expenseService := services.NewExpenseService(db, receiptStorage, logger)
	settingsService := services.NewSettingsService(db, redis, cfg.Redis.CacheTTL, logger)

	// Initialiser l'API
	apiHandler := api.NewAPI(
		quoteService,
		invoiceService,
		clientService,
		prestationService,
		expenseService,
		settingsService,
		logger,
	)

	// Configurer le router
	router := setupRouter(apiHandler, db, cfg)

	// Créer le serveur HTTP
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Canal pour les signaux de terminaison
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Démarrer le serveur dans une goroutine
	go func() {
		logger.Infof("Server starting on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	// Attendre le signal de terminaison
	<-quit
	logger.Info("Shutting down server...")

	// Contexte avec timeout pour le shutdown graceful
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown graceful du serveur
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// setupLogger configure le logger selon la configuration
func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	// Configurer le niveau de log
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Configurer le format
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// setupRouter configure le router principal
func setupRouter(apiHandler *api.API, db *database.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Middleware global
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Middleware de CORS pour le développement
	if cfg.IsDevelopment() {
		router.Use(func(c *gin.Context) {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization")

			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}

			c.Next()
		})
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if err := db.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Justificatifs stockés
	router.Static("/uploads", cfg.Uploads.Dir)

	// Routes de l'API
	apiHandler.RegisterRoutes(router.Group("/api"))

	return router
}
