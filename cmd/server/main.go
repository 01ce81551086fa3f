// Package main is the entry point for the API server. It initializes
// configuration, logging, storage and the price refresh scheduler, then
// serves HTTP until interrupted.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"khazina/internal/config"
	"khazina/internal/observability"
	"khazina/internal/repositories"
	"khazina/internal/routes"
	"khazina/internal/services/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()
	observability.InitLogger(config.GetEnv("LOG_LEVEL", "info"))

	if err := repositories.InitDB(); err != nil {
		slog.Error("database initialization failed", "error", err)
		os.Exit(1)
	}
	defer closeStores()

	app := fiber.New(fiber.Config{
		AppName:      "Khazina API",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/api/auth/register", "/api/auth/login", "/api/auth/forgot-password"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	services := routes.SetupRoutes(app)

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := services.Catalog.SeedIfEmpty(bootCtx); err != nil {
		slog.Warn("catalog seeding failed", "error", err)
	}
	// Make sure price rows exist before the first request; the fetch
	// degrades to the fallback constant if the market API is down.
	if err := services.Pricing.EnsurePrices(bootCtx); err != nil {
		slog.Error("initial price load failed", "error", err)
	}
	cancel()

	refreshInterval := config.GetDurationEnv("PRICE_REFRESH_INTERVAL", scheduler.DefaultInterval)
	priceScheduler := scheduler.New(services.Pricing, refreshInterval)
	priceScheduler.Start()

	go func() {
		addr := ":" + config.GetEnv("PORT", "3000")
		if err := app.Listen(addr); err != nil {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	priceScheduler.Stop()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}

func closeStores() {
	if repositories.DB != nil {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Warn("failed to close database connection", "error", err)
			}
		}
	}
	if repositories.CacheService != nil {
		if err := repositories.CacheService.Close(); err != nil {
			slog.Warn("failed to close redis connection", "error", err)
		}
	}
}
