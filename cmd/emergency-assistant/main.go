package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/emergencyai/emergency-assistant/internal/api/http"
	"github.com/emergencyai/emergency-assistant/internal/config"
	"github.com/emergencyai/emergency-assistant/internal/emergency"
	"github.com/emergencyai/emergency-assistant/internal/emergency/providers"
	"github.com/emergencyai/emergency-assistant/internal/scheduler"
	"github.com/emergencyai/emergency-assistant/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Saved-location store: Redis when configured, in-memory otherwise.
	var locations store.LocationStore
	if cfg.RedisAddr != "" {
		redisStore, err := store.NewRedisLocationStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisStore.Close()
		locations = redisStore
		log.Printf("INFO: saved locations persisted to redis at %s", cfg.RedisAddr)
	} else {
		locations = store.NewMemoryLocationStore(100)
		log.Printf("INFO: no REDIS_ADDR configured; saved locations kept in memory")
	}

	// Category providers and the aggregator service.
	weather := providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey)
	news := providers.NewNewsAPIProvider(httpClient, cfg.NewsAPIKey)
	service := emergency.NewService(
		weather,
		news,
		providers.NewStaticResourceDirectory(),
		providers.NewStaticFirstAidLibrary(),
	)

	// Background alert refresh for the saved location.
	sched := scheduler.New(service, locations, cfg.DefaultLocation, cfg.RefreshInterval, scheduler.LogNotifier{})
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "emergency-assistant",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, service, locations, cfg.DefaultLocation)

	// Static frontend; "/" serves the index document.
	app.Static("/", cfg.PublicDir, fiber.Static{
		Index: "index.html",
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
