package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/sticker-orders/internal/application/auth"
	"github.com/tu-usuario/sticker-orders/internal/application/catalog"
	"github.com/tu-usuario/sticker-orders/internal/application/orders"
	"github.com/tu-usuario/sticker-orders/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CatalogUC *catalog.CatalogUseCase
	OrderUC   *orders.OrderUseCase
	ReceiptUC *orders.ReceiptUseCase
	Images    ImageStore
	JWTSecret string
}

// Router registra las rutas de la API.
// El orden de registro importa: las rutas fijas de products van antes que las
// rutas con :id para que Fiber no las capture como parámetro.
func Router(app *fiber.App, deps RouterDeps) {
	authRequired := AuthMiddleware(deps.JWTSecret)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Products: vistas públicas en /public y /custom-orders; el resto autenticado
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC, deps.Images)
	products.Get("/public", productHandler.ListPublic)
	products.Get("/public/:id", productHandler.GetByID)
	products.Get("/custom-orders", productHandler.CustomShowcase)
	products.Get("/", authRequired, productHandler.ListMine)
	products.Post("/", authRequired, productHandler.Create)
	products.Put("/:id", authRequired, productHandler.Update)
	products.Delete("/:id", authRequired, productHandler.Delete)

	// Orders (todo protegido)
	ordersGroup := api.Group("/orders", authRequired)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC, deps.Images)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Post("/custom", orderHandler.CreateCustom)
	ordersGroup.Get("/my", orderHandler.ListMine)
	ordersGroup.Get("/review-queue", RequireRole(entity.ReviewerRoles...), orderHandler.ReviewQueue)
	ordersGroup.Put("/:id/review", orderHandler.Review)
	ordersGroup.Put("/:id/user-confirm", orderHandler.Confirm)
	ordersGroup.Put("/:id/send-to-production", orderHandler.SendToProduction)
	ordersGroup.Get("/:id/receipt", orderHandler.Receipt)

	// Imágenes subidas (público)
	uploadsHandler := NewUploadsHandler(deps.Images)
	app.Get("/uploads/:key", uploadsHandler.Serve)
}
