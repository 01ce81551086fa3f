package handlers

import (
	"khazina/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

func HealthCheck(c *fiber.Ctx) error {
	services := fiber.Map{
		"database": "connected",
		"redis":    "connected",
	}
	status := "ok"

	if repositories.DB != nil {
		if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.PingContext(c.Context()) != nil {
			services["database"] = "unavailable"
			status = "degraded"
		}
	}
	if repositories.CacheService != nil {
		if err := repositories.CacheService.HealthCheck(c.Context()); err != nil {
			services["redis"] = "unavailable"
			status = "degraded"
		}
	}

	return c.JSON(fiber.Map{
		"status":   status,
		"version":  "1.0.0",
		"services": services,
	})
}
