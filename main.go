package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caterflow-backend/config"
	"caterflow-backend/controllers"
	"caterflow-backend/routes"
	"caterflow-backend/services"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := config.NewLogger(cfg.Log)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterValidators(v); err != nil {
			logger.Fatal("Failed to register validators", zap.Error(err))
		}
	}

	if err := config.ConnectDB(cfg.Database, logger); err != nil {
		logger.Fatal("Failed to connect database", zap.Error(err))
	}
	if err := config.Migrate(config.DB); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	tokens, err := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		logger.Fatal("Failed to create token manager", zap.Error(err))
	}

	ctx := context.Background()

	var storage services.ContractStorage
	if s, err := services.NewS3ContractStorage(ctx, cfg.Storage, logger); err != nil {
		logger.Warn("Contract storage disabled", zap.Error(err))
	} else {
		storage = s
	}

	var cache services.Cache = services.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		redisCache, err := services.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
		} else {
			defer redisCache.Close()
			cache = redisCache
		}
	}

	var notifier services.Notifier = services.NewLogNotifier(logger)
	if cfg.Twilio.Enabled() {
		notifier = services.NewTwilioNotifier(cfg.Twilio, logger)
	}

	renderer, err := services.NewDocumentRenderer()
	if err != nil {
		logger.Fatal("Failed to parse document templates", zap.Error(err))
	}

	reminders := services.NewReminderService(config.DB, notifier, cfg.Reminders, logger)
	if cfg.Reminders.Enabled {
		if err := reminders.StartScheduler(); err != nil {
			logger.Fatal("Failed to start reminder scheduler", zap.Error(err))
		}
		defer reminders.Stop()
	}

	r := routes.SetupRouter(cfg.CORS, logger, routes.Handlers{
		Tokens:    tokens,
		Auth:      &controllers.AuthController{Tokens: tokens, Notifier: notifier, PublicURL: cfg.App.PublicURL},
		Documents: &controllers.DocumentController{Renderer: renderer},
		Contracts: &controllers.ContractController{Storage: storage, PublicURL: cfg.App.PublicURL},
		Dashboard: &controllers.DashboardController{Weather: services.NewOpenMeteoWeather(cfg.Weather, cache, logger)},
		Tracker:   &controllers.TrackerController{Geocoder: services.NewNominatimGeocoder(cfg.Geocoding)},
		Reminders: &controllers.ReminderController{Service: reminders},
	})
	printRoutes(r, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine, logger *zap.Logger) {
	for _, route := range r.Routes() {
		logger.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}
}
