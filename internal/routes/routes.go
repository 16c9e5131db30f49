// Package routes defines the API routing configuration.
// It wires repositories, services and handlers, then groups routes by
// functionality and applies the appropriate middleware.
package routes

import (
	"time"

	"nushoplah/internal/config"
	"nushoplah/internal/handlers"
	"nushoplah/internal/middleware"
	"nushoplah/internal/models"
	"nushoplah/internal/repositories"
	"nushoplah/internal/services/auth"
	"nushoplah/internal/services/scan"
	"nushoplah/internal/services/transaction"
	"nushoplah/internal/services/user"
	"nushoplah/internal/services/voucher"
	"nushoplah/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, broker *stream.Broker) {
	// Repositories
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	voucherRepo := repositories.NewVoucherRepository(repositories.DB, repositories.CacheService)
	txRepo := repositories.NewTransactionRepository(repositories.DB)
	resetRepo := repositories.NewPasswordResetRepository(repositories.DB)
	redemptionStore := repositories.NewRedemptionStore(repositories.DB, repositories.CacheService)

	// Services
	authService := auth.NewService(userRepo, resetRepo)
	userService := user.NewService(userRepo)
	voucherService := voucher.NewService(voucherRepo, broker)
	txService := transaction.NewService(txRepo)
	scanService := scan.NewService(redemptionStore, broker, scan.Config{
		RequireSufficientPoints: config.GetBoolEnv("REQUIRE_SUFFICIENT_POINTS", false),
	})

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	voucherHandler := handlers.NewVoucherHandler(voucherService, userService)
	scanHandler := handlers.NewScanHandler(scanService, userService)
	activityHandler := handlers.NewActivityHandler(txService)
	streamHandler := handlers.NewStreamHandler(broker)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints, rate limited against credential stuffing.
	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	})
	api.Post("/register", authLimiter, userHandler.Register)
	api.Post("/login", authLimiter, authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)
	api.Post("/password-reset/request", authLimiter, authHandler.RequestPasswordReset)
	api.Post("/password-reset/confirm", authLimiter, authHandler.ResetPassword)

	// Protected routes
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", authHandler.ChangePassword)

	// Account
	protected.Get("/account", middleware.HasPermission(models.PermissionAccountRead), userHandler.Profile)
	protected.Get("/account/stream", streamHandler.Feed)

	setupCustomerRoutes(protected, userHandler, voucherHandler, activityHandler)
	setupSellerRoutes(protected, voucherHandler, scanHandler, activityHandler)
}

func setupCustomerRoutes(router fiber.Router, userHandler *handlers.UserHandler, voucherHandler *handlers.VoucherHandler, activityHandler *handlers.ActivityHandler) {
	customer := router.Group("/customer", middleware.RequireRole(models.RoleCustomer))

	customer.Get("/identity-code", userHandler.IdentityCode)
	customer.Get("/vouchers", middleware.HasPermission(models.PermissionVoucherRead), voucherHandler.Browse)
	customer.Get("/vouchers/:id/redemption-code", voucherHandler.RedemptionCode)
	customer.Get("/activity", middleware.HasPermission(models.PermissionActivityRead), activityHandler.CustomerHistory)
}

func setupSellerRoutes(router fiber.Router, voucherHandler *handlers.VoucherHandler, scanHandler *handlers.ScanHandler, activityHandler *handlers.ActivityHandler) {
	seller := router.Group("/seller", middleware.RequireRole(models.RoleSeller))

	// Voucher lifecycle
	vouchers := seller.Group("/vouchers", middleware.HasPermission(models.PermissionVoucherWrite))
	vouchers.Post("/", voucherHandler.Create)
	vouchers.Get("/", voucherHandler.ListMine)
	vouchers.Delete("/:id", voucherHandler.Cancel)

	// Scanner flows
	scans := seller.Group("/scan", middleware.HasPermission(models.PermissionScanWrite))
	scans.Post("/classify", scanHandler.Classify)
	scans.Post("/points", scanHandler.AwardPoints)
	scans.Post("/voucher", scanHandler.RedeemVoucher)

	seller.Get("/activity", middleware.HasPermission(models.PermissionRevenueRead), activityHandler.SellerHistory)
}
