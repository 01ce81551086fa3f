// Package routes defines the API routing configuration. It wires
// repositories into services, services into handlers, and groups routes by
// authentication requirements.
package routes

import (
	"khazina/internal/config"
	"khazina/internal/handlers"
	"khazina/internal/middleware"
	"khazina/internal/observability"
	"khazina/internal/repositories"
	"khazina/internal/services/admin"
	"khazina/internal/services/alert"
	"khazina/internal/services/auth"
	"khazina/internal/services/cart"
	"khazina/internal/services/catalog"
	"khazina/internal/services/goldprice"
	"khazina/internal/services/notification"
	"khazina/internal/services/order"
	"khazina/internal/services/payment"
	"khazina/internal/services/sharia"
	"khazina/internal/services/voucher"
	"khazina/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
)

// Services bundles the long-lived services the server entry point needs a
// handle on (scheduler wiring, boot-time seeding).
type Services struct {
	Pricing goldprice.Service
	Catalog catalog.Service
}

// SetupRoutes wires the full dependency graph and registers every route.
func SetupRoutes(app *fiber.App) *Services {
	// Repositories
	userRepo := repositories.NewUserRepository(repositories.DB)
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	priceRepo := repositories.NewPriceRepository(repositories.DB)
	alertRepo := repositories.NewAlertRepository(repositories.DB)
	notificationRepo := repositories.NewNotificationRepository(repositories.DB)
	productRepo := repositories.NewProductRepository(repositories.DB)
	merchantRepo := repositories.NewMerchantRepository(repositories.DB)
	designerRepo := repositories.NewDesignerRepository(repositories.DB)
	cartRepo := repositories.NewCartRepository(repositories.DB)
	orderRepo := repositories.NewOrderRepository(repositories.DB)
	voucherRepo := repositories.NewVoucherRepository(repositories.DB)
	shariaRepo := repositories.NewShariaRepository(repositories.DB)

	// Services. The alert evaluator feeds off the pricing pipeline, so it is
	// built first.
	notificationService := notification.NewService(notificationRepo)
	alertService := alert.NewService(alertRepo, notificationService)
	pricingService := goldprice.NewService(
		goldprice.NewHTTPFetcher(config.GetEnv("GOLD_API_URL", "")),
		priceRepo,
		alertService,
		repositories.CacheService,
		goldprice.NewPrometheusCollector(),
	)
	walletService := wallet.NewService(
		walletRepo,
		pricingService,
		repositories.CacheService,
		wallet.NewPrometheusCollector(),
	)
	authService := auth.NewService(userRepo, walletRepo)
	catalogService := catalog.NewService(productRepo, merchantRepo, designerRepo)
	cartService := cart.NewService(cartRepo, productRepo, pricingService)
	paymentService := payment.NewService()
	orderService := order.NewService(orderRepo, productRepo, cartService, paymentService)
	voucherService := voucher.NewService(voucherRepo, walletService)
	shariaService := sharia.NewService(shariaRepo)
	adminService := admin.NewService(userRepo, orderRepo, productRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	priceHandler := handlers.NewGoldPriceHandler(pricingService)
	walletHandler := handlers.NewWalletHandler(walletService)
	alertHandler := handlers.NewAlertHandler(alertService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	voucherHandler := handlers.NewVoucherHandler(voucherService)
	shariaHandler := handlers.NewShariaHandler(shariaService)
	adminHandler := handlers.NewAdminHandler(adminService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Khazina API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api")
	api.Get("/health", handlers.HealthCheck)

	// Public endpoints
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/forgot-password", authHandler.ForgotPassword)
	api.Post("/auth/reset-password", authHandler.ResetPassword)

	api.Get("/gold-prices", priceHandler.GetPrices)
	api.Get("/gold-prices/:karat", priceHandler.GetPriceByKarat)
	api.Post("/gold-prices/refresh", priceHandler.Refresh)

	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.Get)
	api.Get("/merchants", productHandler.ListMerchants)
	api.Get("/designers", productHandler.ListDesigners)

	// Protected routes
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	walletGroup := protected.Group("/wallet")
	walletGroup.Get("/", walletHandler.GetWallet)
	walletGroup.Post("/buy-gold", walletHandler.BuyGold)
	walletGroup.Post("/sell-gold", walletHandler.SellGold)
	protected.Get("/transactions", walletHandler.GetTransactions)

	alerts := protected.Group("/price-alerts")
	alerts.Post("/", alertHandler.Create)
	alerts.Get("/", alertHandler.List)
	alerts.Delete("/:id", alertHandler.Delete)

	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)

	protected.Get("/sharia-acceptance", shariaHandler.Get)
	protected.Post("/sharia-acceptance", shariaHandler.Accept)

	cartGroup := protected.Group("/cart")
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Post("/add", cartHandler.AddProduct)
	cartGroup.Post("/add-gold-investment", cartHandler.AddGoldInvestment)
	cartGroup.Put("/update", cartHandler.UpdateItem)
	cartGroup.Delete("/clear", cartHandler.Clear)
	cartGroup.Delete("/items/:productId", cartHandler.RemoveItem)

	orders := protected.Group("/orders")
	orders.Post("/checkout", orderHandler.Checkout)
	orders.Get("/", orderHandler.List)
	orders.Get("/:orderId", orderHandler.Get)

	gifts := protected.Group("/gifts")
	gifts.Post("/voucher", voucherHandler.Create)
	gifts.Get("/vouchers/sent", voucherHandler.ListSent)
	gifts.Get("/voucher/:code", voucherHandler.GetByCode)
	gifts.Post("/voucher/:code/redeem", voucherHandler.Redeem)

	adminGroup := protected.Group("/admin", middleware.AdminOnly)
	adminGroup.Get("/stats", adminHandler.Stats)

	return &Services{
		Pricing: pricingService,
		Catalog: catalogService,
	}
}
