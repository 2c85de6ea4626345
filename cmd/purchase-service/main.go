package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hypernova-labs/purchase-service/internal/api"
	"github.com/hypernova-labs/purchase-service/internal/config"
	"github.com/hypernova-labs/purchase-service/internal/database"
	"github.com/hypernova-labs/purchase-service/internal/services"
	"github.com/sirupsen/logrus"
)

func main() {
	// Cargar configuración
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := setupLogger(cfg)
	logger.Info("Starting purchase service...")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Conectar a la base de datos
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := db.Migrate(ctx, logger)
		cancel()
		if err != nil {
			logger.Fatalf("Error running migrations: %v", err)
		}
	}

	// Redis es opcional, solo se usa para el rate limit
	var (
		limiter    api.Limiter
		redisStore *database.Redis
	)
	if cfg.Redis.Enabled {
		redis, err := database.ConnectRedis(cfg)
		if err != nil {
			logger.Warnf("Error connecting to Redis, rate limiting disabled: %v", err)
		} else {
			defer redis.Close()
			redisStore = redis
			limiter = database.NewRateLimiter(redis, cfg.RateLimit.Default+cfg.RateLimit.Burst, time.Minute, logger)
			logger.Info("Rate limiting enabled")
		}
	}

	customerService := services.NewCustomerService(db, logger)
	lotService := services.NewLotService(db, logger)

	apiHandler := api.NewAPI(customerService, lotService, db, logger)
	if redisStore != nil {
		apiHandler.SetRateLimitStore(redisStore)
	}
	router := setupRouter(apiHandler, limiter, cfg, logger)

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Canal para señales de terminación
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("Server starting on %s", cfg.GetServerAddr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	// Contexto con timeout para shutdown graceful
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	db.LogStats(logger)
	logger.Info("Server exited")
}

// setupLogger configura el logger según la configuración
func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// setupRouter configura el router principal
func setupRouter(apiHandler *api.API, limiter api.Limiter, cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(api.RequestIDMiddleware())
	router.Use(api.LoggerMiddleware(logger))
	if cfg.IsProduction() {
		for _, origin := range cfg.CORS.AllowedOrigins {
			if origin == "*" {
				logger.Warn("CORS allows any origin in production")
			}
		}
	}
	router.Use(api.CORSMiddleware(cfg.CORS.AllowedOrigins))
	if limiter != nil {
		router.Use(api.RateLimitMiddleware(limiter, logger))
	}

	apiHandler.RegisterRoutes(router)

	return router
}
