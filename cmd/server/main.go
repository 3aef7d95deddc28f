package main

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"freshcart-backend/internal/account"
	"freshcart-backend/internal/admin"
	"freshcart-backend/internal/auth"
	"freshcart-backend/internal/cart"
	"freshcart-backend/internal/checkout"
	"freshcart-backend/internal/config"
	"freshcart-backend/internal/database"
	"freshcart-backend/internal/inventory"
	"freshcart-backend/internal/logging"
	"freshcart-backend/internal/models"
	"freshcart-backend/internal/order"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg)
	defer logging.Sync()
	database.Init(cfg)

	checkoutSvc := checkout.NewService(checkout.NewGormRepository(database.DB), logging.L)
	mutationSvc := inventory.NewMutationService(inventory.NewGormMutationRepository(database.DB), logging.L)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logging.L.Error("unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Public catalog and reference data
	api.Get("/products", inventory.ListProductsHandler())
	api.Get("/products/:id", inventory.GetProductHandler())
	api.Get("/regions/provinces", account.ListProvincesHandler())
	api.Get("/regions/cities", account.ListCitiesHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Addresses
	protected.Post("/addresses", account.CreateAddressHandler())
	protected.Get("/addresses", account.ListAddressesHandler())
	protected.Put("/addresses/:id", account.UpdateAddressHandler())
	protected.Delete("/addresses/:id", account.DeleteAddressHandler())

	// Cart
	protected.Post("/cart/items", cart.AddItemHandler())
	protected.Get("/cart", cart.ListItemsHandler())
	protected.Put("/cart/items/:id", cart.UpdateItemHandler())
	protected.Delete("/cart/items/:id", cart.DeleteItemHandler())
	protected.Delete("/cart", cart.ClearHandler())

	// Checkout
	protected.Post("/checkout/store-location", checkout.StoreLocationHandler(checkoutSvc))
	protected.Get("/checkout/vouchers", checkout.ListVouchersHandler(checkoutSvc))
	protected.Get("/checkout/vouchers/:id", checkout.GetVoucherHandler(checkoutSvc))
	protected.Post("/orders/create-order", checkout.CreateOrderHandler(checkoutSvc))

	// Customer orders
	protected.Get("/orders", order.ListMyOrdersHandler())
	protected.Get("/orders/:uid", order.GetMyOrderHandler())

	// Back office (store admins and super admins)
	staff := protected.Group("/manage")
	staff.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleStoreAdmin))

	staff.Get("/stock", inventory.ListStockHandler())
	staff.Post("/stock", inventory.SetStockHandler())
	staff.Post("/stock/import", inventory.ImportStockHandler())
	staff.Get("/stock-adjustments", inventory.ListStockAdjustmentsHandler())
	staff.Get("/mutations", inventory.ListMutationsHandler())
	staff.Post("/mutations/:id/complete", inventory.CompleteMutationHandler(mutationSvc))
	staff.Get("/orders", order.ListStoreOrdersHandler())
	staff.Put("/orders/:id/status", order.UpdateOrderStatusHandler())

	// Super admin only
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	adminRoutes.Post("/stores", admin.CreateStoreHandler())
	adminRoutes.Get("/stores", admin.ListStoresHandler())
	adminRoutes.Get("/stores/:id", admin.GetStoreHandler())
	adminRoutes.Put("/stores/:id", admin.UpdateStoreHandler())
	adminRoutes.Delete("/stores/:id", admin.DeleteStoreHandler())
	adminRoutes.Post("/stores/:id/admin", admin.CreateStoreAdminHandler())
	adminRoutes.Get("/stores/:id/admins", admin.ListStoreAdminsHandler())
	adminRoutes.Post("/store-admins/swap", admin.SwapStoreAdminsHandler())

	adminRoutes.Post("/products", inventory.CreateProductHandler())
	adminRoutes.Put("/products/:id", inventory.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", inventory.DeleteProductHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
