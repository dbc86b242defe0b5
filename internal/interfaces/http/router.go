package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-backoffice/internal/application/auth"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/application/orders"
	"github.com/tu-usuario/retail-backoffice/internal/application/stock"
	"github.com/tu-usuario/retail-backoffice/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderSvc   *orders.Service
	StockUC    *stock.MovementUseCase
	CustomerUC *usecase.CustomerUseCase
	ProductUC  *usecase.ProductUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Orders (protegido)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderSvc)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", RequireRole(entity.RoleAdmin), orderHandler.Delete)

	// Stock movements (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/movements", stockHandler.CreateMovement)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/movements/:id", stockHandler.GetMovement)
	stockGroup.Delete("/movements/:id", RequireRole(entity.RoleAdmin), stockHandler.DeleteMovement)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Put("/:id/balance", RequireRole(entity.RoleAdmin), customerHandler.SetBalance)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
}
