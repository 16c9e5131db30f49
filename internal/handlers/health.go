package handlers

import (
	"time"

	"nushoplah/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

var startTime = time.Now()

// HealthCheck reports service liveness plus database and cache reachability.
func HealthCheck(c *fiber.Ctx) error {
	status := fiber.Map{
		"status": "ok",
		"uptime": time.Since(startTime).String(),
	}

	dbStatus := "ok"
	if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
		status["status"] = "degraded"
	}
	status["database"] = dbStatus

	cacheStatus := "ok"
	if repositories.CacheService == nil || repositories.CacheService.Ping(c.Context()) != nil {
		cacheStatus = "unreachable"
		status["status"] = "degraded"
	}
	status["cache"] = cacheStatus

	code := fiber.StatusOK
	if status["status"] != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(status)
}
