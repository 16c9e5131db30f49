// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"nushoplah/internal/config"
	"nushoplah/internal/repositories"
	"nushoplah/internal/routes"
	"nushoplah/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	if config.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := repositories.InitDB(); err != nil {
		logrus.WithError(err).Fatal("failed to initialize storage")
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		logrus.WithError(err).Fatal("failed to get database instance")
	}
	if err := sqlDB.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to ping database")
	}
	logrus.Info("connected to database")

	defer func() {
		if err := sqlDB.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close database connection")
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				logrus.WithError(err).Warn("failed to close cache connection")
			}
		}
	}()

	broker := stream.NewBroker()

	app := fiber.New(fiber.Config{
		AppName: "NUShopLah! API",
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, broker)

	// Shut down cleanly on SIGINT/SIGTERM so in-flight redemptions finish.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logrus.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logrus.WithError(err).Error("server shutdown failed")
		}
	}()

	addr := ":" + config.GetEnv("PORT", "3000")
	if err := app.Listen(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
